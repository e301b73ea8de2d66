package tqueue

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestSPSC_FIFOOrder is the single-producer/single-consumer ordering
// property: one pusher pushing 1..K and one popper must observe
// 1,2,3,...,K in order, with QueueFull/QueueEmpty the only non-Ok
// results either side sees.
func TestSPSC_FIFOOrder(t *testing.T) {
	const count = 10_000

	q, err := Create[int](16, noCallbacks{})
	require.NoError(t, err)

	var g errgroup.Group
	g.Go(func() error {
		for i := 1; i <= count; i++ {
			v := i
			for {
				err := q.Push(&v, nil)
				if err == nil {
					break
				}
				if !errors.Is(err, ErrQueueFull) {
					return err
				}
			}
		}
		return nil
	})

	got := make([]int, 0, count)
	g.Go(func() error {
		for len(got) < count {
			var out int
			err := q.Pop(&out, nil, nil, nil)
			if err == nil {
				got = append(got, out)
				continue
			}
			if !errors.Is(err, ErrQueueEmpty) {
				return err
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
	require.Len(t, got, count)
	for i, v := range got {
		require.Equal(t, i+1, v)
	}
}

// TestMPMC_NoDoubleDelivery checks that with several producers and
// several consumers, every pushed value is observed by exactly one
// successful pop.
func TestMPMC_NoDoubleDelivery(t *testing.T) {
	const (
		producers   = 4
		consumers   = 4
		perProducer = 2_000
		total       = producers * perProducer
	)

	q, err := Create[int](64, noCallbacks{})
	require.NoError(t, err)

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		base := p * perProducer
		g.Go(func() error {
			for i := 0; i < perProducer; i++ {
				v := base + i
				for q.Push(&v, nil) != nil {
					// retry until the slot frees up
				}
			}
			return nil
		})
	}

	var (
		mu   sync.Mutex
		seen = make(map[int]int, total)
		done atomic.Int64
	)
	for c := 0; c < consumers; c++ {
		g.Go(func() error {
			for {
				if done.Load() >= total {
					return nil
				}
				var out int
				if err := q.Pop(&out, nil, nil, nil); err != nil {
					continue
				}
				mu.Lock()
				seen[out]++
				mu.Unlock()
				done.Add(1)
			}
		})
	}

	require.NoError(t, g.Wait())
	require.Len(t, seen, total)
	for v, n := range seen {
		require.Equalf(t, 1, n, "value %d delivered %d times", v, n)
	}
}

// TestMPMC_DisposeDrainsToZero runs many goroutines hammering
// push/pop with refcounted callbacks for a short duration, then
// closes the handle and asserts the "alive" counter returns to zero.
func TestMPMC_DisposeDrainsToZero(t *testing.T) {
	const goroutines = 16

	var alive atomic.Int64
	cb := Callbacks[int, struct{}]{
		PushCopy: func(_ struct{}, _ any, dst, src *int) {
			*dst = *src
			alive.Add(1)
		},
		PopMove: func(_ struct{}, _ any, dst, src *int) {
			*dst = *src
			alive.Add(-1)
		},
		DisposeItem: func(_ struct{}, _ *int) {
			alive.Add(-1)
		},
	}

	q, err := Create[int](16, cb)
	require.NoError(t, err)

	stop := make(chan struct{})
	time.AfterFunc(200*time.Millisecond, func() { close(stop) })

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			v := seed
			var out int
			for {
				select {
				case <-stop:
					return
				default:
				}
				if v%2 == 0 {
					_ = q.Push(&v, nil)
				} else {
					_ = q.Pop(&out, nil, nil, nil)
				}
				v++
			}
		}(i)
	}
	wg.Wait()

	q.Close()
	require.EqualValues(t, 0, alive.Load())
}

func TestConservation_PushesPopsRejectsBalance(t *testing.T) {
	q, err := Create[int](8, noCallbacks{})
	require.NoError(t, err)

	var pushed, popped int
	for i := 1; i <= 5; i++ {
		v := i
		require.NoError(t, q.Push(&v, nil))
		pushed++
	}

	var out int
	rejectAll := PredicateAlwaysFalse[int, struct{}]
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, q.Pop(&out, nil, rejectAll, nil), ErrRejected)
	}

	for i := 0; i < 5; i++ {
		if err := q.Pop(&out, nil, nil, nil); err == nil {
			popped++
		}
	}

	require.Equal(t, pushed, popped)
	require.Equal(t, 0, q.Len())
}
