package service

// Operation is one of the computations selectable through /bfhl. The set
// is closed; the request key must match a value exactly (case sensitive).
type Operation string

const (
	OpFibonacci Operation = "fibonacci"
	OpPrime     Operation = "prime"
	OpLCM       Operation = "lcm"
	OpHCF       Operation = "hcf"
	OpAI        Operation = "AI"
)

// Operations lists every supported operation in documentation order.
var Operations = []Operation{OpFibonacci, OpPrime, OpLCM, OpHCF, OpAI}

// ParseOperation maps a request key to its Operation.
func ParseOperation(key string) (Operation, bool) {
	switch op := Operation(key); op {
	case OpFibonacci, OpPrime, OpLCM, OpHCF, OpAI:
		return op, true
	default:
		return "", false
	}
}

func (o Operation) String() string {
	return string(o)
}
