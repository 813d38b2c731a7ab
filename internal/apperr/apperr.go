// Package apperr defines the error categories shared by the evaluator and
// the history store. Every error returned across a package boundary wraps
// exactly one of the sentinels below, so callers can branch with errors.Is
// and still show the wrapped human-readable message.
package apperr

import "errors"

var (
	// ErrEmptyInput is returned when the formula is empty or whitespace.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidRange is returned when min/max are not numbers or min >= max.
	ErrInvalidRange = errors.New("invalid range")

	// ErrParseFailure is returned when a formula does not parse.
	ErrParseFailure = errors.New("parse failure")

	// ErrEvaluationFailure is returned when evaluating a parsed formula fails.
	ErrEvaluationFailure = errors.New("evaluation failure")

	// ErrNoValidOutput is returned when no sample survives real filtering.
	ErrNoValidOutput = errors.New("no valid output")

	// ErrIndexOutOfRange is returned for history indexes outside the sequence.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCorruptHistory is returned when the durable history cannot be decoded.
	ErrCorruptHistory = errors.New("corrupt history")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrEmptyInput, "EmptyInput"},
	{ErrInvalidRange, "InvalidRange"},
	{ErrParseFailure, "ParseFailure"},
	{ErrEvaluationFailure, "EvaluationFailure"},
	{ErrNoValidOutput, "NoValidOutput"},
	{ErrIndexOutOfRange, "IndexOutOfRange"},
	{ErrCorruptHistory, "CorruptHistory"},
}

// Kind returns the category name of err, or "Internal" for errors outside
// the taxonomy (I/O failures and the like).
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Internal"
}
