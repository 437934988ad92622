package retry

import (
	"errors"
	"time"
)

// ErrEmpty is returned by an operation whose call succeeded but produced
// nothing usable. It is retried like any transient failure.
var ErrEmpty = errors.New("empty result")

// Policy bounds the number of attempts and the fixed delay between them
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// Outcome is the result of a retried operation. Err is nil on success and
// holds the last failure once the attempts are exhausted.
type Outcome[T any] struct {
	Value    T
	Attempts int
	Err      error
}

// Ok reports whether the operation eventually succeeded
func (o Outcome[T]) Ok() bool {
	return o.Err == nil
}

// Empty reports whether the attempts were exhausted on empty results only
func (o Outcome[T]) Empty() bool {
	return errors.Is(o.Err, ErrEmpty)
}
