package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/notebook/errs"
)

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestDecodeJSON(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	tests := []struct {
		name string
		req  *http.Request
		is   func(error) bool
	}{
		{"invalid json", httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`)), errs.IsInvalidJSONError},
		{"body too large", httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`"`+strings.Repeat("a", maxRequestBodySize)+`"`)), errs.IsMaxBodySizeExceededError},
		{"unreadable body", httptest.NewRequest(http.MethodPost, "/", failingBody{}), errs.IsMalformedPayloadError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst map[string]any
			err := responder.decodeJSON(httptest.NewRecorder(), tt.req, &dst)
			require.Error(t, err)
			assert.True(t, tt.is(err))
		})
	}

	var dst struct{ Title string }
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Hello"}`))
	require.NoError(t, responder.decodeJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "Hello", dst.Title)
}

func TestWriteError(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	t.Run("api error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errs.NewMissingTokenError())

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, errs.ErrMissingToken.Error(), body.Error)
		assert.Equal(t, "authorization", body.Field)
	})

	t.Run("internal cause stays in the logs", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errs.NewInternalErrorWithCause("sign token", errors.New("bad key")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "bad key")
	})

	t.Run("plain error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		responder.WriteError(rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal Server Error")
	})
}
