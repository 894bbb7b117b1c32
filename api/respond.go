package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/notebook/errs"
	"github.com/rs/zerolog"
)

const maxRequestBodySize = 1 << 20 // 1MB

// errorNotifier posts unexpected errors to a webhook. The zero value drops
// every notification.
type errorNotifier struct {
	url    string
	client *http.Client
}

func newErrorNotifier(url string) errorNotifier {
	return errorNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type Responder struct {
	logger   zerolog.Logger
	notifier errorNotifier
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger: logger}
}

func (r Responder) withNotifier(n errorNotifier) Responder {
	r.notifier = n
	return r
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (r Responder) SendErrorNotification(errMsg string) {
	if r.notifier.url == "" {
		return
	}

	jsonData, err := json.Marshal(map[string]string{
		"errorMessage": errMsg,
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("Error marshaling error notification request")
		return
	}

	resp, err := r.notifier.client.Post(r.notifier.url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		r.logger.Error().Err(err).Msg("Error sending error notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.logger.Error().Msgf("Error notification service returned non-2xx status: %d", resp.StatusCode)
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.SendErrorNotification(err.Error())
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		// Keep the cause chain in the logs, not in the response
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("internal error")
		r.SendErrorNotification(apiErr.GetFullError())
	} else if apiErr.Cause != nil {
		response.Cause = apiErr.Cause.Error()
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// decodeJSON reads a size-limited JSON body into dst
func (r Responder) decodeJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxRequestBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewMalformedPayloadError(err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		r.logger.Debug().Err(err).Int("bodyLength", len(body)).Msg("failed to decode request body")
		return errs.NewInvalidJSONError(err)
	}
	return nil
}
