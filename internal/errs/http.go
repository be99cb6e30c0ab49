package errs

import (
	"net/http"
)

// Client-facing messages. They are part of the API contract.
const (
	MsgInvalidJSON         = "Invalid JSON body"
	MsgExactlyOneKey       = "Request must contain exactly one key"
	MsgInvalidKey          = "Invalid request key"
	MsgInternalServerError = "Internal Server Error"
	MsgRouteNotFound       = "Route not found"
	MsgTooManyRequests     = "Too many requests"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgRequestBodyTooLarge = "Request body too large"
)

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		// http.StatusText(400) => "Bad Request" => "BAD_REQUEST"
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
func NewBadRequestError(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

func NewMethodNotAllowedError() *HTTPError {
	return newHTTPError(http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

func NewRequestEntityTooLargeError() *HTTPError {
	return newHTTPError(http.StatusRequestEntityTooLarge, MsgRequestBodyTooLarge)
}

// NewTooManyRequestsError is returned by the rate limiter.
func NewTooManyRequestsError() *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, MsgTooManyRequests)
}

// NewInternalServerError creates a 500 HTTPError.
//
// The message is always the generic status text; the real cause is only
// logged.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, MsgInternalServerError)
}

// ValidationError converts a validation failure into a 400 Bad Request.
// The error's own text becomes the client message, so validators must
// produce client-safe messages.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError(err.Error())
}
