// Package handler holds the JSON response plumbing shared by the API
// endpoint handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hearthside/vesta/internal/domain"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.EINTERNAL:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error body. The status comes from the domain
// error code; internal messages are masked by domain.ErrorMessage.
func Error(w http.ResponseWriter, err error) {
	status := ErrorCodeToHTTPStatus(domain.ErrorCode(err))
	JSON(w, status, map[string]string{"message": domain.ErrorMessage(err)})
}
