// Package tqueue implements a bounded, lock-free, multi-producer /
// multi-consumer typed queue.
//
// The queue is a fixed-capacity ring of slots, each carrying an
// atomic state tag (not used, pushing, used, popping) alongside one
// element. Producers and consumers claim slots by compare-and-swap on
// the slot's state, then by compare-and-swap on a monotonically
// increasing cursor (head for producers, tail for consumers); losing
// either race reverts the slot and retries. The queue never blocks:
// every operation returns a status immediately.
//
// Ordering is FIFO only with exactly one producer and one consumer.
// With multiple producers or consumers, per-slot transitions are
// linearizable but the global pop order may interleave with push
// order, because head is claimed by CAS rather than by slot-local
// sequencing.
package tqueue

import (
	"sync/atomic"

	"github.com/agilira-labs/tqueue/internal/cpu"
)

// maxCapacity bounds the capacity Create will accept. It is chosen
// far below where capacity*sizeof(slot[T]) could overflow a platform
// int, so the make() below never gets asked to allocate a
// silently-wrapped, wrong-sized backing array; requests beyond it are
// rejected as ErrResourceExhausted rather than risking an
// allocator panic or overflow.
const maxCapacity = 1 << 30

// Queue is a bounded MPMC queue of T, using callback context type C.
// The zero value is not usable; construct with Create.
//
// head and tail are int64, not uint64, per spec: the cursors must be
// able to go transiently "negative" relative to each other when one
// producer reads a stale head concurrently with another producer
// having just advanced it, and that must read back as a small
// negative number a caller can retry on — not wrap around to a huge
// unsigned value that looks like "full" or "empty".
type Queue[T any, C any] struct {
	refcount atomic.Int32

	head atomic.Int64
	_    cpu.CacheLinePad
	tail atomic.Int64
	_    cpu.CacheLinePad

	slots     []slot[T]
	capacity  int64
	callbacks Callbacks[T, C]
	metrics   *Metrics
}

// Create allocates a queue of the given capacity. capacity must be
// positive. callbacks' three function fields must be either all nil
// (the queue performs plain value assignment) or all non-nil;
// anything else is ErrInvalidArgument. The returned queue starts with
// a reference count of 1 — callers own that reference and must
// eventually call Close, directly or via Clone/Close pairing.
//
// Create returns ErrResourceExhausted if capacity is unreasonably
// large or if allocating the backing ring fails.
func Create[T any, C any](capacity int, callbacks Callbacks[T, C]) (*Queue[T, C], error) {
	if capacity <= 0 {
		return nil, wrapf(ErrInvalidArgument, "tqueue: capacity must be positive, got %d", capacity)
	}
	if !callbacks.valid() {
		return nil, wrapf(ErrInvalidArgument, "tqueue: callbacks must be all-present or all-absent")
	}
	if capacity > maxCapacity {
		return nil, wrapf(ErrResourceExhausted, "tqueue: capacity %d exceeds maximum %d", capacity, maxCapacity)
	}

	slots, err := allocSlots[T](capacity)
	if err != nil {
		return nil, err
	}

	q := &Queue[T, C]{
		slots:     slots,
		capacity:  int64(capacity),
		callbacks: callbacks,
	}
	q.refcount.Store(1)
	return q, nil
}

// allocSlots allocates the backing ring, converting a panic raised by
// make (a length whose byte size the runtime refuses to allocate) into
// ErrResourceExhausted instead of letting it crash the caller. A true
// out-of-memory condition is a fatal runtime error in Go and is not
// caught here.
func allocSlots[T any](capacity int) (slots []slot[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			slots = nil
			err = wrapf(ErrResourceExhausted, "tqueue: failed to allocate %d slots: %v", capacity, r)
		}
	}()
	return make([]slot[T], capacity), nil
}

// WithMetrics attaches a *Metrics to the queue, returning the queue
// for chaining. Passing nil detaches instrumentation (the default).
// Not safe to call concurrently with Push/Pop.
func (q *Queue[T, C]) WithMetrics(m *Metrics) *Queue[T, C] {
	q.metrics = m
	return q
}

// Clone increments the queue's reference count and returns the same
// queue, mirroring the original reference-counted handle's clone
// semantics. Every Clone must be matched by a Close.
func (q *Queue[T, C]) Clone() *Queue[T, C] {
	q.refcount.Add(1)
	return q
}

// Close decrements the queue's reference count. When the count
// reaches zero, Close drains any residual used slots through
// DisposeItem (if present) before releasing the ring. Close is safe
// to call from any holder of a reference, but calling it more times
// than the queue was Created or Cloned is a caller bug (the refcount
// going negative is not guarded against, matching the "no other
// component may outlive the last handle" ownership contract).
func (q *Queue[T, C]) Close() {
	if q.refcount.Add(-1) != 0 {
		return
	}
	q.dispose()
}

// dispose walks [tail, head) and invokes DisposeItem once per
// still-occupied slot. Under correct refcount discipline no
// concurrent push or pop can be in flight once this runs.
func (q *Queue[T, C]) dispose() {
	if q.callbacks.DisposeItem == nil {
		return
	}
	h := q.head.Load()
	t := q.tail.Load()
	drained := 0
	for i := t; i < h; i++ {
		s := &q.slots[i%q.capacity]
		if s.load() == used {
			q.callbacks.DisposeItem(q.callbacks.Context, &s.value)
			drained++
		}
	}
	q.metrics.recordDisposed(drained)
}

// Push inserts src at the tail of the queue's claim order (the next
// free head slot). Returns ErrQueueFull if the queue has no free
// slot. pushContext is forwarded to the queue's PushCopy hook, if any.
func (q *Queue[T, C]) Push(src *T, pushContext any) error {
	if q == nil {
		return wrapf(ErrInvalidArgument, "tqueue: Push called on a nil queue")
	}
	if src == nil {
		return wrapf(ErrInvalidArgument, "tqueue: Push requires a non-nil source value")
	}

	for {
		h := q.head.Load()
		t := q.tail.Load()

		// h is read before t (spec §4.2 step 1). With multiple
		// producers, another producer can advance head between the
		// two loads, so t can end up read as larger than this h; the
		// subtraction then goes negative rather than full. That's a
		// safe false negative (retry from the top), never a false
		// positive: h-t only reaches >= capacity when the queue is
		// genuinely full.
		if h >= t && h-t >= q.capacity {
			q.metrics.recordPush("full", h-t)
			return ErrQueueFull
		}

		i := h % q.capacity
		s := &q.slots[i]

		if !s.casState(notUsed, pushing) {
			// Another producer (or a not-yet-reclaimed consumer)
			// holds this slot; retry from a fresh read of the cursors.
			continue
		}

		if !q.head.CompareAndSwap(h, h+1) {
			// Lost the race to advance head: we claimed a slot but
			// are not the producer of record for it. Revert and
			// retry.
			s.store(notUsed)
			continue
		}

		if q.callbacks.PushCopy != nil {
			q.callbacks.PushCopy(q.callbacks.Context, pushContext, &s.value, src)
		} else {
			s.value = *src
		}

		s.store(used)
		q.metrics.recordPush("ok", h+1-t)
		return nil
	}
}

// Pop removes and returns the value at the head of the claim order
// (the oldest unclaimed slot) into dest. Returns ErrQueueEmpty if the
// queue has nothing to pop. If predicate is non-nil, it is evaluated
// against the candidate value after the slot is claimed and before
// tail advances; a false result aborts the pop (ErrRejected, dest
// untouched, value remains queued) without consuming it.
func (q *Queue[T, C]) Pop(dest *T, popContext any, predicate Predicate[T, C], predicateContext any) error {
	if q == nil {
		return wrapf(ErrInvalidArgument, "tqueue: Pop called on a nil queue")
	}
	if dest == nil {
		return wrapf(ErrInvalidArgument, "tqueue: Pop requires a non-nil destination")
	}

	for {
		h := q.head.Load()
		t := q.tail.Load()

		if h == t {
			q.metrics.recordPop("empty", 0)
			return ErrQueueEmpty
		}

		i := t % q.capacity
		s := &q.slots[i]

		if !s.casState(used, popping) {
			continue
		}

		if predicate != nil && !predicate(q.callbacks.Context, predicateContext, &s.value) {
			s.store(used)
			q.metrics.recordPop("rejected", h-t)
			return ErrRejected
		}

		if !q.tail.CompareAndSwap(t, t+1) {
			// Lost the race to advance tail: another consumer beat
			// us to it. Revert and retry; per spec, a fresh
			// predicate call happens on the retry.
			s.store(used)
			continue
		}

		if q.callbacks.PopMove != nil {
			q.callbacks.PopMove(q.callbacks.Context, popContext, dest, &s.value)
		} else {
			*dest = s.value
			var zero T
			s.value = zero
		}

		s.store(notUsed)
		q.metrics.recordPop("ok", h-(t+1))
		return nil
	}
}

// Len returns a best-effort snapshot of the number of claimed slots.
// Like any concurrent size query, it may be stale by the time the
// caller observes it.
func (q *Queue[T, C]) Len() int {
	h := q.head.Load()
	t := q.tail.Load()
	return int(h - t)
}

// Cap returns the queue's fixed capacity.
func (q *Queue[T, C]) Cap() int {
	return int(q.capacity)
}
