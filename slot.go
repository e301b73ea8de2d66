package tqueue

import (
	"sync/atomic"

	"github.com/agilira-labs/tqueue/internal/cpu"
)

// slotState is the per-slot state tag. Transitions are driven solely
// by CAS or, for the unique owner of a claimed slot, by a plain store
// (see the state table in slot.go's doc comment below).
type slotState uint32

const (
	// notUsed is the slot's initial and steady-state empty state.
	notUsed slotState = iota
	// pushing marks a slot claimed by a producer, mid-write.
	pushing
	// used marks a slot holding a published value.
	used
	// popping marks a slot claimed by a consumer, mid-read.
	popping
)

// Transition table (producer/consumer column is the driver):
//
//	notUsed -> pushing   producer CAS (claim for push)
//	pushing -> notUsed   producer revert (cursor CAS lost the race)
//	pushing -> used      producer publish
//	used    -> popping   consumer CAS (claim for pop)
//	popping -> used      consumer revert (predicate rejected, or cursor CAS lost)
//	popping -> notUsed   consumer publish
//
// Only the notUsed->pushing and used->popping transitions are
// contended; every other transition is a plain store by the thread
// that already owns the slot.

// slot is one ring cell: an atomic state tag plus storage for one
// element. value is only meaningful while state is used or popping.
type slot[T any] struct {
	state atomic.Uint32
	value T
	_     cpu.CacheLinePad
}

func (s *slot[T]) load() slotState {
	return slotState(s.state.Load())
}

func (s *slot[T]) casState(from, to slotState) bool {
	return s.state.CompareAndSwap(uint32(from), uint32(to))
}

// store is a plain, unconditional publish/revert by the slot's
// current owner. Never called concurrently by two threads for the
// same slot, because ownership of a slot is established by the CAS
// transitions above before store is ever used.
func (s *slot[T]) store(to slotState) {
	s.state.Store(uint32(to))
}
