// Package mathx contains the integer arithmetic used by the compute
// operations: Fibonacci generation, primality, GCD/LCM and coercion of
// JSON numbers into exact integers.
//
// Every value is a *big.Int so results stay exact, but magnitudes are
// capped at math.MaxFloat64: anything larger is not a number to a JSON
// client and would make the arithmetic unbounded.
package mathx

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	// trialDivisionLimit is the largest value tested by plain trial
	// division. Above it IsPrime switches to the Baillie-PSW test of
	// big.Int.ProbablyPrime, which is exact for every value below 2^64.
	trialDivisionLimit = 1 << 24

	// maxExponent bounds the decimal exponent accepted by Integer.
	// Anything larger does not fit a float64 and is not an integer to a
	// JSON client either.
	maxExponent = 400

	// maxExactLen is the longest token parsed exactly. Longer tokens are
	// taken at float64 precision.
	maxExactLen = 1100
)

var two = big.NewInt(2)

// maxMagnitude is math.MaxFloat64 as an integer.
var maxMagnitude, _ = big.NewFloat(math.MaxFloat64).Int(nil)

// InRange reports whether |n| <= math.MaxFloat64.
func InRange(n *big.Int) bool {
	return n != nil && n.CmpAbs(maxMagnitude) <= 0
}

// Fibonacci returns the first n Fibonacci numbers, seeded 0, 1.
// The result is never nil; n <= 0 yields an empty slice.
func Fibonacci(n int) []*big.Int {
	if n < 0 {
		n = 0
	}

	seq := make([]*big.Int, 0, n)
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		seq = append(seq, new(big.Int).Set(a))
		a.Add(a, b)
		a, b = b, a
	}

	return seq
}

// IsPrime reports whether n is a prime number. Values below 2 are not.
func IsPrime(n *big.Int) bool {
	if n == nil || n.Cmp(two) < 0 {
		return false
	}

	if n.IsUint64() && n.Uint64() <= trialDivisionLimit {
		return isPrimeTrial(n.Uint64())
	}

	return n.ProbablyPrime(0)
}

func isPrimeTrial(n uint64) bool {
	if n < 2 {
		return false
	}
	for i := uint64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// GCD returns the greatest common divisor of a and b via the Euclidean
// algorithm. The result is always >= 0; GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}
	return x
}

// LCM returns |a*b| / gcd(a, b). LCM with a zero operand is 0.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}

	product := new(big.Int).Mul(a, b)
	product.Abs(product)
	return product.Quo(product, GCD(a, b))
}

// Integer returns the exact integer denoted by a JSON number token.
// Tokens such as "7", "7.0" and "7e0" all denote 7; "7.5" is not an
// integer, and neither is anything beyond the float64 range.
func Integer(num json.Number) (*big.Int, bool) {
	s := string(num)
	if s == "" {
		return nil, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}

	if len(s) > maxExactLen {
		if f != math.Trunc(f) {
			return nil, false
		}
		i, _ := big.NewFloat(f).Int(nil)
		return i, true
	}

	if i, ok := new(big.Int).SetString(s, 10); ok {
		return inRange(i)
	}

	if idx := strings.IndexAny(s, "eE"); idx >= 0 {
		exp, err := strconv.Atoi(strings.TrimPrefix(s[idx+1:], "+"))
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return nil, false
		}
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() {
		return nil, false
	}

	return inRange(new(big.Int).Set(r.Num()))
}

func inRange(n *big.Int) (*big.Int, bool) {
	if !InRange(n) {
		return nil, false
	}
	return n, true
}

// IntegerFromJSON decodes a single raw JSON value and returns its integer
// value. Non-numbers (strings, booleans, arrays, objects, null) and
// fractional numbers report false.
func IntegerFromJSON(raw json.RawMessage) (*big.Int, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}

	num, ok := v.(json.Number)
	if !ok {
		return nil, false
	}

	return Integer(num)
}
