package tqueue

import "github.com/pkg/errors"

// Sentinel errors returned by the queue's operations. Callers should
// compare against these with errors.Is rather than string matching;
// wrapped instances still satisfy errors.Is because they are produced
// with github.com/pkg/errors.Wrap, which preserves the chain.
var (
	// ErrInvalidArgument is returned before any side effect, for
	// programming errors: a nil handle, a nil value pointer, a zero
	// capacity, or a partially-specified callback bundle.
	ErrInvalidArgument = errors.New("tqueue: invalid argument")

	// ErrQueueFull means head-tail >= capacity at the time of the
	// attempt. Expected under load; not a fault.
	ErrQueueFull = errors.New("tqueue: queue full")

	// ErrQueueEmpty means head == tail at the time of the attempt.
	// Expected under load; not a fault.
	ErrQueueEmpty = errors.New("tqueue: queue empty")

	// ErrRejected means a supplied predicate declined the
	// head-of-queue value. The destination is left untouched and the
	// value remains at the head of the queue for a future pop.
	ErrRejected = errors.New("tqueue: pop rejected by predicate")

	// ErrResourceExhausted is returned only by Create, when the
	// backing ring cannot be allocated.
	ErrResourceExhausted = errors.New("tqueue: resource exhausted")
)

// wrapf annotates err with a formatted message while preserving
// errors.Is/As compatibility with the sentinel errors above.
func wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}
