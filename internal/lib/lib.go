// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains the integer arithmetic behind the compute operations
// (mathx) and the outbound text-generation client (gemini).
package lib
