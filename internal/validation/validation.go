// Package validation contains the logic for validating
// request data.
//
// It binds the /bfhl body, checks that exactly one recognised
// operation key is present and validates the value for that
// operation, using the `validator` library for range and
// emptiness rules. Every failure is a 400 carrying the message
// the client sees
package validation
