package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/graphsketch/pkg/errors"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorResponse] and returns the status used.
func WriteError(w http.ResponseWriter, err error) int {
	status := Status(err)
	resp := ErrorResponse{Code: errors.GetCode(err), Error: errors.UserMessage(err)}
	if resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
	}
	WriteJSON(w, status, resp)
	return status
}

// Status maps err's code to an HTTP status.
func Status(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidWeight,
		errors.ErrCodeInvalidPath, errors.ErrCodeProtocolMisuse:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRejectedEdit:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeInvalidGraph:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
