package tqueue

// Export for testing.
//
// These accessors let the test suite assert on slot state and raw
// cursor values without widening the public API, the same purpose
// the teacher's own export_test.go serves for poolDequeue.

func (q *Queue[T, C]) headValue() int64 { return q.head.Load() }
func (q *Queue[T, C]) tailValue() int64 { return q.tail.Load() }

func (q *Queue[T, C]) slotState(i int) slotState {
	return q.slots[i%int(q.capacity)].load()
}

func (q *Queue[T, C]) refs() int32 { return q.refcount.Load() }

const (
	stateNotUsed = notUsed
	statePushing = pushing
	stateUsed    = used
	statePopping = popping
)
