package generator

import "errors"

// ErrLimitExceeded is returned when the candidate set would grow past the
// configured maximum. No partial result is returned with it.
var ErrLimitExceeded = errors.New("generation aborted: limit exceeded")
