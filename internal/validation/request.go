package validation

import (
	"encoding/json"
	"fmt"

	"github.com/deppfellow/bfhl/internal/errs"
	"github.com/deppfellow/bfhl/internal/lib/mathx"
	"github.com/deppfellow/bfhl/internal/service"
)

// Client messages for per-operation value checks.
const (
	MsgFibonacciRange = "Fibonacci must be a non-negative integer ≤ 1000"
	MsgPrimeArray     = "Prime input must be an array"
	MsgLCMArray       = "LCM input must be a non-empty array"
	MsgHCFArray       = "HCF input must be a non-empty array"
	MsgAIPrompt       = "AI input must be a non-empty string"
)

// MaxFibonacci is the largest accepted Fibonacci count.
const MaxFibonacci = 1000

var fibonacciRule = fmt.Sprintf("min=0,max=%d", MaxFibonacci)

// OperationRequest is the body of POST /bfhl: a JSON object carrying
// exactly one recognised key.
//
// After a successful Validate, Operation is set and exactly one of the
// typed inputs below is populated for it.
type OperationRequest struct {
	isObject bool
	fields   map[string]json.RawMessage

	Operation service.Operation

	// Count is the fibonacci input.
	Count int
	// Items holds the raw elements for prime, lcm and hcf. Elements are
	// kept raw because non-integers are legal input for prime.
	Items []json.RawMessage
	// Prompt is the AI input, as sent (not trimmed).
	Prompt string
}

// UnmarshalJSON accepts any JSON value and records whether it is an
// object. Rejecting non-objects is left to Validate so the client gets
// the right message.
func (r *OperationRequest) UnmarshalJSON(data []byte) error {
	r.isObject = false
	r.fields = nil

	if !isJSONKind(data, '{') {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.isObject = true
	r.fields = fields
	return nil
}

// Validate checks the key set and then the value for the chosen
// operation. Every failure is a 400 *errs.HTTPError.
func (r *OperationRequest) Validate() error {
	if !r.isObject {
		return errs.NewBadRequestError(errs.MsgInvalidJSON)
	}

	if len(r.fields) != 1 {
		return errs.NewBadRequestError(errs.MsgExactlyOneKey)
	}

	var (
		key string
		raw json.RawMessage
	)
	for k, v := range r.fields {
		key, raw = k, v
	}

	op, ok := service.ParseOperation(key)
	if !ok {
		return errs.NewBadRequestError(errs.MsgInvalidKey)
	}
	r.Operation = op

	switch op {
	case service.OpFibonacci:
		n, err := FibonacciCount(raw)
		if err != nil {
			return err
		}
		r.Count = n

	case service.OpPrime:
		items, err := PrimeCandidates(raw)
		if err != nil {
			return err
		}
		r.Items = items

	case service.OpLCM:
		items, err := ReductionOperands(raw, MsgLCMArray)
		if err != nil {
			return err
		}
		r.Items = items

	case service.OpHCF:
		items, err := ReductionOperands(raw, MsgHCFArray)
		if err != nil {
			return err
		}
		r.Items = items

	case service.OpAI:
		prompt, err := Prompt(raw)
		if err != nil {
			return err
		}
		r.Prompt = prompt

	default:
		return errs.NewBadRequestError(errs.MsgInvalidKey)
	}

	return nil
}

// FibonacciCount accepts an integral JSON number in [0, MaxFibonacci].
// 5.0 is accepted as 5.
func FibonacciCount(raw json.RawMessage) (int, error) {
	n, ok := mathx.IntegerFromJSON(raw)
	if !ok || !n.IsInt64() {
		return 0, errs.NewBadRequestError(MsgFibonacciRange)
	}

	count := n.Int64()
	if err := validate.Var(count, fibonacciRule); err != nil {
		return 0, errs.NewBadRequestError(MsgFibonacciRange)
	}

	return int(count), nil
}

// PrimeCandidates accepts any JSON array, including an empty one.
func PrimeCandidates(raw json.RawMessage) ([]json.RawMessage, error) {
	items, ok := decodeArray(raw)
	if !ok {
		return nil, errs.NewBadRequestError(MsgPrimeArray)
	}
	return items, nil
}

// ReductionOperands accepts a non-empty JSON array. Element types are not
// checked here; message is the operation specific client message.
func ReductionOperands(raw json.RawMessage, message string) ([]json.RawMessage, error) {
	items, ok := decodeArray(raw)
	if !ok || validate.Var(items, "min=1") != nil {
		return nil, errs.NewBadRequestError(message)
	}
	return items, nil
}

// Prompt accepts a JSON string that is not blank.
func Prompt(raw json.RawMessage) (string, error) {
	s, ok := decodeString(raw)
	if !ok || isBlank(s) {
		return "", errs.NewBadRequestError(MsgAIPrompt)
	}
	return s, nil
}
