// Package errs define custom error types and utilities.
//
// Every failure leaving the API has the same JSON shape:
//
//	{ "is_success": false, "error": "<message>" }
//
// HTTPError carries the status and message, Envelope is what gets written.
package errs
