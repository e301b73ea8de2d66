// Package cpu holds small hardware-layout helpers shared by the queue's
// hot-path types.
package cpu

// CacheLineSize is the assumed CPU cache line size in bytes. Slots and
// cursors carry a pad of this size after their contended field, so
// that field is at least one cache line away from the next one, to
// avoid false sharing between producers and consumers hammering
// adjacent memory.
const CacheLineSize = 64

// CacheLinePad is an opaque byte array used purely to separate two
// fields onto different cache lines. Its size is not meaningful beyond
// "at least one cache line"; the compiler is free to lay out struct
// fields however it likes, but placing one of these between two
// contended fields keeps them a cache line apart in practice.
type CacheLinePad [CacheLineSize]byte
