// Package cfgerrors defines the typed error taxonomy used across the
// grammar analysis pipeline: load-time errors from the BNF loader,
// parse-time errors from the LL(1)/LR drivers, and a marker for
// internal-consistency violations that should never occur on
// well-formed input.
package cfgerrors

import "fmt"

// loadError describes a failure to tokenize or parse a BNF source into a
// Grammar. It carries the byte offset or nonterminal name relevant to the
// failure so the caller can point a user at the trouble spot.
type loadError struct {
	msg  string
	wrap error
}

func (e *loadError) Error() string {
	return e.msg
}

func (e *loadError) Unwrap() error {
	return e.wrap
}

// Load returns a new load error with the given message.
func Load(msg string) error {
	return &loadError{msg: msg}
}

// Loadf returns a new load error built from a format string.
func Loadf(format string, a ...interface{}) error {
	return &loadError{msg: fmt.Sprintf(format, a...)}
}

// WrapLoad wraps an existing error as a load error with additional context.
func WrapLoad(e error, msg string) error {
	return &loadError{msg: msg, wrap: e}
}

// parseError describes a failure of the LL(1) or LR driver to continue
// parsing a token stream: either no action exists for the current
// (state, lookahead) pair or an expected Goto entry is absent.
type parseError struct {
	msg    string
	wrap   error
	Cursor int
	State  string
}

func (e *parseError) Error() string {
	return e.msg
}

func (e *parseError) Unwrap() error {
	return e.wrap
}

// Parse returns a new parse error reporting the offending cursor position
// and current state.
func Parse(cursor int, state, msg string) error {
	return &parseError{msg: msg, Cursor: cursor, State: state}
}

// Parsef is like Parse but builds msg from a format string.
func Parsef(cursor int, state, format string, a ...interface{}) error {
	return Parse(cursor, state, fmt.Sprintf(format, a...))
}

// internalError marks a violation of a structural invariant that the
// analysis pipeline assumes always holds on a well-formed Grammar (a
// reducing item whose head is absent from the grammar, a state-lookup
// miss during canonical-collection reuse, and the like). These are bugs,
// not user-facing errors, and are always raised via panic so that a
// recover() at the top of the CLI/server can print them distinctly from
// ordinary load/parse errors.
type internalError struct {
	msg string
}

func (e *internalError) Error() string {
	return "internal error: " + e.msg
}

// Internal panics with a recognizable internal-consistency marker.
func Internal(msg string) {
	panic(&internalError{msg: msg})
}

// Internalf is like Internal but builds msg from a format string.
func Internalf(format string, a ...interface{}) {
	panic(&internalError{msg: fmt.Sprintf(format, a...)})
}

// IsInternal reports whether err (typically recovered from a panic) is an
// internal-consistency marker raised by Internal/Internalf.
func IsInternal(v interface{}) (error, bool) {
	if e, ok := v.(*internalError); ok {
		return e, true
	}
	return nil, false
}
