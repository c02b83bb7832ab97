// Package errs holds the error taxonomy shared by the game engines.
//
// Engines wrap one of these sentinels with context, e.g.
//
//	fmt.Errorf("%w: hand index %d", errs.ErrInvalidArgument, i)
//
// and callers classify with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidArgument: malformed index, out-of-range position, unknown keyword.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState: the action is not allowed in the current state.
	// These are expected, frequent outcomes rather than defects.
	ErrIllegalState = errors.New("illegal state")

	// ErrNotFound: unknown room, player or word.
	ErrNotFound = errors.New("not found")
)
