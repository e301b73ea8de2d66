package tqueue

// PushCopyFunc initializes *dst as a copy (or move) of *src for a
// value crossing into a slot. It must not fail; if a caller needs
// failure semantics, encode them in the element value itself.
type PushCopyFunc[T any, C any] func(context C, pushContext any, dst *T, src *T)

// PopMoveFunc transfers ownership from *src to *dst, leaving *src in
// a logically empty state (e.g. releasing a reference count it held).
type PopMoveFunc[T any, C any] func(context C, popContext any, dst *T, src *T)

// DisposeItemFunc releases any resources held by *item. Called once
// per still-occupied slot when the queue's last handle is closed.
type DisposeItemFunc[T any, C any] func(context C, item *T)

// Callbacks bundles the three optional hooks a queue uses to move
// values into and out of slots, plus the shared context value passed
// to all three. The three function fields are either all nil or all
// non-nil; Create rejects any other combination with
// ErrInvalidArgument. When all nil, the queue performs plain value
// assignment (Go's assignment is the bitwise-copy analogue from the
// spec this type descends from).
type Callbacks[T any, C any] struct {
	PushCopy    PushCopyFunc[T, C]
	PopMove     PopMoveFunc[T, C]
	DisposeItem DisposeItemFunc[T, C]
	Context     C
}

// present reports whether any of the three function hooks is set.
func (c Callbacks[T, C]) present() bool {
	return c.PushCopy != nil || c.PopMove != nil || c.DisposeItem != nil
}

// complete reports whether all three function hooks are set.
func (c Callbacks[T, C]) complete() bool {
	return c.PushCopy != nil && c.PopMove != nil && c.DisposeItem != nil
}

// valid reports whether the bundle is all-present or all-absent.
func (c Callbacks[T, C]) valid() bool {
	return !c.present() || c.complete()
}
