package errors

import "net/http"

// NotFoundCode is reported by storage backends when a single-row lookup
// matched nothing.
const NotFoundCode = "PGRST116"

// backendStatus maps storage error codes (SQLSTATE and provider codes) to HTTP status
var backendStatus = map[string]int{
	NotFoundCode:          http.StatusNotFound,
	"22P02":               http.StatusBadRequest, // invalid_text_representation
	"23502":               http.StatusBadRequest, // not_null_violation
	"23503":               http.StatusBadRequest, // foreign_key_violation
	"23505":               http.StatusConflict,   // unique_violation
	"23514":               http.StatusUnprocessableEntity,
	"42501":               http.StatusForbidden, // insufficient_privilege
	"PGRST301":            http.StatusForbidden,
	"invalid_grant":       http.StatusUnauthorized,
	"invalid_credentials": http.StatusUnauthorized,
}

// StatusForCode returns the HTTP status for a backend error code. Unknown
// codes map to 500.
func StatusForCode(code string) int {
	if status, ok := backendStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromBackend converts a coded storage failure into an AppError. The code is
// passed through so callers can still tell constraint violations apart.
func FromBackend(code, message string, details any) *AppError {
	if code == "" {
		return &AppError{
			Code:    CodeDatabase,
			Message: message,
			Details: details,
			Status:  http.StatusInternalServerError,
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Status:  StatusForCode(code),
	}
}

var statusText = map[int]string{
	http.StatusOK:                    "OK",
	http.StatusCreated:               "Created",
	http.StatusNoContent:             "No Content",
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusConflict:              "Conflict",
	http.StatusUnprocessableEntity:   "Unprocessable Entity",
	http.StatusInternalServerError:   "Internal Server Error",
	http.StatusServiceUnavailable:    "Service Unavailable",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusRequestEntityTooLarge: "Request Entity Too Large",
	http.StatusGatewayTimeout:        "Gateway Timeout",
}

// StatusText returns the envelope status text for status, "Unknown" when
// the status is outside the envelope's taxonomy.
func StatusText(status int) string {
	if text, ok := statusText[status]; ok {
		return text
	}
	return "Unknown"
}
