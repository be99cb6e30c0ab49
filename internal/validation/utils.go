package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/bfhl/internal/errs"
)

// validate is shared; validator caches struct metadata and is safe for
// concurrent use.
var validate = validator.New()

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Bind the body into a fresh pointer value
// - Implement Validate() error returning an *errs.HTTPError with a client message
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the request from the incoming body.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) if either step fails.
//
// Any bind failure (malformed JSON, unsupported content type) is reported
// as "Invalid JSON body"; Echo's own message is never shown to clients.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(errs.MsgInvalidJSON)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return errs.ValidationError(err)
	}

	return nil
}

// isJSONKind reports whether raw starts with the given JSON delimiter
// ('{', '[' or '"'), ignoring leading whitespace.
func isJSONKind(raw []byte, delim byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == delim
}

// decodeArray decodes a JSON array into its raw elements. null, objects
// and scalars are rejected.
func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if !isJSONKind(raw, '[') {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	return items, true
}

// decodeString decodes a JSON string. Other JSON kinds are rejected.
func decodeString(raw json.RawMessage) (string, bool) {
	if !isJSONKind(raw, '"') {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, true
}

// isBlank reports whether s is empty once surrounding whitespace is
// removed.
func isBlank(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required") != nil
}
