package errs

import "strings"

// HTTPError is the error type handlers return when the client should see a
// specific status and message.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: text placed in the response envelope.
//   - Status: HTTP status code.
type HTTPError struct {
	Code    string
	Message string
	Status  int
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Envelope returns the failure body for this error.
func (e *HTTPError) Envelope() Envelope {
	return Envelope{IsSuccess: false, Error: e.Message}
}

// Envelope is the JSON body of every failed response.
type Envelope struct {
	IsSuccess bool   `json:"is_success"`
	Error     string `json:"error"`
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
