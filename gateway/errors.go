package gateway

import (
	"fmt"
	"net/http"

	"github.com/islam174932/EcommerceWeb/core"
)

// APIError is the uniform failure shape returned by every gateway operation.
// Status is the HTTP status code when a response was obtained, 0 for
// transport-level failures. ServerMessage carries the API's own message when
// one was present in the error body.
type APIError struct {
	Op            string // gateway operation, e.g. "gateway.AddToCart"
	Status        int    // HTTP status, 0 when no response was obtained
	ServerMessage string // message extracted from the error body, may be empty
	Err           error  // core sentinel for errors.Is classification
}

// Error returns the string representation of the error
func (e *APIError) Error() string {
	switch {
	case e.ServerMessage != "" && e.Status > 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.ServerMessage, e.Status)
	case e.Status > 0:
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.Err, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the sentinel for use with errors.Is/As
func (e *APIError) Unwrap() error {
	return e.Err
}

// Message returns the best user-facing message available: the server's own
// message when present, otherwise a generic fallback
func (e *APIError) Message() string {
	if e.ServerMessage != "" {
		return e.ServerMessage
	}
	if e.Status == 0 {
		return "could not reach the store, please check your connection"
	}
	return "something went wrong, please try again"
}

// classifyStatus maps an HTTP status code to a core sentinel error
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return core.ErrSessionExpired
	case status == http.StatusNotFound:
		return core.ErrNotFound
	case status >= 400 && status < 500:
		return core.ErrValidationFailed
	default:
		return core.ErrRequestFailed
	}
}

// errorEnvelope matches the API's error body conventions. The API is not
// consistent: validation failures arrive as {"errors": {"msg": ...}} while
// most other failures arrive as {"message": ...}.
type errorEnvelope struct {
	StatusMsg string `json:"statusMsg"`
	Message   string `json:"message"`
	Errors    struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

func (e *errorEnvelope) bestMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Errors.Msg
}
