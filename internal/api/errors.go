package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/observability"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error to an HTTP status by its code.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		// client went away; nothing will read the body
		return 499
	case errors.IsValidation(err):
		return http.StatusBadRequest
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeScript, errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error response. Internal errors are
// logged and their details withheld.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	status := statusFor(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	switch status {
	case http.StatusInternalServerError:
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		code, msg = string(errors.ErrCodeInternal), "internal error"
	case http.StatusRequestEntityTooLarge:
		code, msg = "TOO_LARGE", err.Error()
	case http.StatusGatewayTimeout, 499:
		code, msg = "TIMEOUT", err.Error()
	}
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeError(w, r, status, code, msg)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	})
}
