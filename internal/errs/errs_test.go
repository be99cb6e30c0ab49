package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err     *HTTPError
		status  int
		code    string
		message string
	}{
		{NewBadRequestError(MsgInvalidJSON), http.StatusBadRequest, "BAD_REQUEST", MsgInvalidJSON},
		{NewNotFoundError(MsgRouteNotFound), http.StatusNotFound, "NOT_FOUND", MsgRouteNotFound},
		{NewMethodNotAllowedError(), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", MsgMethodNotAllowed},
		{NewRequestEntityTooLargeError(), http.StatusRequestEntityTooLarge, "REQUEST_ENTITY_TOO_LARGE", MsgRequestBodyTooLarge},
		{NewTooManyRequestsError(), http.StatusTooManyRequests, "TOO_MANY_REQUESTS", MsgTooManyRequests},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, Envelope{IsSuccess: false, Error: tt.message}, tt.err.Envelope())
		})
	}
}

func TestValidationErrorKeepsMessage(t *testing.T) {
	err := ValidationError(errors.New("Prime input must be an array"))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Prime input must be an array", err.Message)
}

func TestHTTPErrorSurvivesWrapping(t *testing.T) {
	wrapped := errors.Wrap(NewTooManyRequestsError(), "limiter")

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Status)
}
