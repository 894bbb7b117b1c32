package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendErrorMatching(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		backend      bool
		network      bool
		authRequired bool
	}{
		{"server error", NewBackendError("load posts", http.StatusInternalServerError), true, false, false},
		{"unauthorized", NewBackendError("load posts", http.StatusUnauthorized), true, false, true},
		{"transport failure", NewNetworkError("load posts", errors.New("dial tcp: refused")), true, true, false},
		{"wrapped", fmt.Errorf("refresh: %w", NewBackendError("load posts", http.StatusUnauthorized)), true, false, true},
		{"plain auth sentinel", ErrAuthRequired, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.backend, IsBackend(tt.err))
			assert.Equal(t, tt.network, IsNetwork(tt.err))
			assert.Equal(t, tt.authRequired, IsAuthRequired(tt.err))
		})
	}
}

func TestBackendErrorMessageIsGeneric(t *testing.T) {
	err := NewBackendError("create post", http.StatusBadRequest)
	assert.Equal(t, "Failed to create post.", err.Error())

	err = NewBackendError("delete post", http.StatusForbidden)
	assert.Equal(t, "You are not allowed to delete post.", err.Error())
}
