package service

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"

	"github.com/deppfellow/bfhl/internal/lib/mathx"
	"github.com/deppfellow/bfhl/internal/server"
)

// maxPrimeBits bounds the candidates the prime filter tests. Larger
// values are reported as not prime, which keeps a request of many huge
// primes from running the primality test for seconds.
const maxPrimeBits = 64

// ComputeService runs the four arithmetic operations.
type ComputeService struct {
	server *server.Server
}

func NewComputeService(s *server.Server) *ComputeService {
	return &ComputeService{server: s}
}

// Fibonacci returns the first n Fibonacci numbers.
func (s *ComputeService) Fibonacci(n int) []*big.Int {
	operationsTotal.WithLabelValues(OpFibonacci.String()).Inc()
	return mathx.Fibonacci(n)
}

// Primes keeps the integer, prime elements of candidates in their
// original order. Anything else is dropped silently, as is every value
// wider than 64 bits. The result is never nil.
func (s *ComputeService) Primes(candidates []json.RawMessage) []*big.Int {
	operationsTotal.WithLabelValues(OpPrime.String()).Inc()

	primes := make([]*big.Int, 0, len(candidates))
	for _, raw := range candidates {
		n, ok := mathx.IntegerFromJSON(raw)
		if ok && n.BitLen() <= maxPrimeBits && mathx.IsPrime(n) {
			primes = append(primes, n)
		}
	}

	return primes
}

// LCM folds lcm over operands from the left.
func (s *ComputeService) LCM(operands []json.RawMessage) (*big.Int, error) {
	operationsTotal.WithLabelValues(OpLCM.String()).Inc()
	return reduce(OpLCM, operands, mathx.LCM)
}

// HCF folds gcd over operands from the left.
func (s *ComputeService) HCF(operands []json.RawMessage) (*big.Int, error) {
	operationsTotal.WithLabelValues(OpHCF.String()).Inc()
	return reduce(OpHCF, operands, mathx.GCD)
}

// reduce folds fn over operands. A single operand is returned unchanged.
//
// A non-integer element is not a client validation error: it is returned
// as a plain error and surfaces as a 500. So is a running value that
// leaves the float64 range.
func reduce(op Operation, operands []json.RawMessage, fn func(a, b *big.Int) *big.Int) (*big.Int, error) {
	if len(operands) == 0 {
		return nil, errors.Errorf("%s: no operands", op)
	}

	var acc *big.Int
	for i, raw := range operands {
		n, ok := mathx.IntegerFromJSON(raw)
		if !ok {
			return nil, errors.Errorf("%s: invalid number at index %d: %s", op, i, raw)
		}

		if acc == nil {
			acc = n
			continue
		}
		acc = fn(acc, n)
		if !mathx.InRange(acc) {
			return nil, errors.Errorf("%s: result out of range at index %d", op, i)
		}
	}

	return acc, nil
}
