// ABOUTME: Sentinel error kinds shared across the ambient stack
// ABOUTME: Wrapped with fmt.Errorf("%w: ...") so callers can match with errors.Is

// Package errs names the error kinds the run boundary distinguishes:
// malformed input is reported and aborts; BaseMismatch and CounterUnderflow
// are core programming errors and panic at their call site instead (see
// internal/tour and internal/histogram).
package errs

import "errors"

// ErrBadInput covers an invalid CLI value, a malformed TSP file, or a
// missing required argument.
var ErrBadInput = errors.New("eax-ga: bad input")

// ErrCheckpointMismatch is returned when a checkpoint's recorded TSP name
// does not match the instance passed on resume.
var ErrCheckpointMismatch = errors.New("eax-ga: checkpoint does not match tsp instance")
