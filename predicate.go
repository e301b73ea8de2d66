package tqueue

// Predicate is evaluated by Pop against the candidate head-of-queue
// value after the slot has been claimed (state popping) and before
// tail is advanced. Returning false rejects the pop: Pop returns
// ErrRejected, the destination is left untouched, and the value
// remains at the head of the queue.
//
// A predicate must be side-effect-free or idempotent: if the
// tail-advance CAS loses a race against another consumer, Pop retries
// and may invoke the predicate again, possibly against a different
// value claimed on the retry.
type Predicate[T any, C any] func(context C, predicateContext any, candidate *T) bool

// PredicateAlwaysTrue never rejects a pop.
func PredicateAlwaysTrue[T any, C any](C, any, *T) bool {
	return true
}

// PredicateAlwaysFalse rejects every pop without ever consuming a
// value. Useful for peek-only probing of a queue's head.
func PredicateAlwaysFalse[T any, C any](C, any, *T) bool {
	return false
}

// PredicateEquals builds a predicate that accepts the pop only when
// eq(candidate) reports true, mirroring the original implementation's
// test helper convention of a named "pop_condition_function_<value>"
// comparator, generalized into a reusable constructor.
func PredicateEquals[T any, C any](eq func(*T) bool) Predicate[T, C] {
	return func(_ C, _ any, candidate *T) bool {
		return eq(candidate)
	}
}
