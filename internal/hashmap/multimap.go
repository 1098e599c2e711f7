// Package hashmap implements the lazy multi-map generated hash joins build
// their state in: a mutable, per-shard insert phase followed by a single
// finalize into a sealed, read-only, wait-free-lookup directory.
package hashmap

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Hashable is implemented by the key type a LazyMultiMap is keyed on.
type Hashable interface {
	Hash() uint64
	Equal(other any) bool
}

type entry[K Hashable, V any] struct {
	key  K
	val  V
	next *entry[K, V]
}

// Options configures a LazyMultiMap's finalize phase.
type Options struct {
	// Parallel selects a per-goroutine insert shard; single-shard insert is
	// used when false.
	Parallel bool
	// ParallelFinalize finalizes directory slots across shards
	// concurrently. The original design gated this path off unreachably;
	// here it is a real, tested, opt-in path that defaults to off, so the
	// sequential path remains the specified default behavior.
	ParallelFinalize bool
}

type state int32

const (
	stateInserting state = iota
	stateFinalized
)

// LazyMultiMap maps a key to many values. Insert is append-only and
// unsynchronized within a shard; Finalize seals the structure into an
// immutable directory; EqualRange is then wait-free.
type LazyMultiMap[K Hashable, V any] struct {
	opts   Options
	shards [][]entry[K, V]

	state     atomic.Int32
	directory []atomic.Pointer[entry[K, V]]
	capacity  uint64
}

// New constructs an empty LazyMultiMap ready for concurrent Insert calls
// from up to runtime.GOMAXPROCS(0) goroutines when opts.Parallel is set.
func New[K Hashable, V any](opts Options) *LazyMultiMap[K, V] {
	shardCount := 1
	if opts.Parallel {
		shardCount = runtime.GOMAXPROCS(0)
	}
	return &LazyMultiMap[K, V]{
		opts:   opts,
		shards: make([][]entry[K, V], shardCount),
	}
}

// Insert appends (key, val) to shard. It is a programming error to Insert
// after Finalize.
func (m *LazyMultiMap[K, V]) Insert(shard int, key K, val V) {
	if state(m.state.Load()) == stateFinalized {
		panic("hashmap: Insert after Finalize")
	}
	if shard < 0 || shard >= len(m.shards) {
		shard = 0
	}
	m.shards[shard] = append(m.shards[shard], entry[K, V]{key: key, val: val})
}

// ShardCount reports how many insert shards exist; callers picking a shard
// per worker should reduce their worker index modulo this.
func (m *LazyMultiMap[K, V]) ShardCount() int { return len(m.shards) }

func nextPow2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Finalize allocates a directory sized to the next power of two at or above
// 1.2x the total inserted count, then links every inserted entry into its
// bucket's collision chain via an atomic pointer exchange. After Finalize
// the map is sealed: further Insert calls panic.
func (m *LazyMultiMap[K, V]) Finalize() {
	total := uint64(0)
	for _, s := range m.shards {
		total += uint64(len(s))
	}
	capacity := nextPow2(uint64(float64(total)*1.2 + 0.9999))
	if capacity == 0 {
		capacity = 1
	}
	m.capacity = capacity
	m.directory = make([]atomic.Pointer[entry[K, V]], capacity)

	link := func(e *entry[K, V]) {
		slot := e.key.Hash() % capacity
		for {
			prev := m.directory[slot].Load()
			e.next = prev
			if m.directory[slot].CompareAndSwap(prev, e) {
				return
			}
		}
	}

	if m.opts.ParallelFinalize && len(m.shards) > 1 {
		eg, _ := errgroup.WithContext(context.Background())
		for si := range m.shards {
			shard := m.shards[si]
			eg.Go(func() error {
				for i := range shard {
					link(&shard[i])
				}
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for si := range m.shards {
			shard := m.shards[si]
			for i := range shard {
				link(&shard[i])
			}
		}
	}

	m.state.Store(int32(stateFinalized))
}

// EqualRangeFunc walks the collision chain for key's bucket, invoking fn for
// every entry whose key compares equal to key. Iteration order within a
// chain is insertion-reverse; callers must not depend on it. Looking up
// before Finalize yields no entries.
func (m *LazyMultiMap[K, V]) EqualRangeFunc(key K, fn func(V)) {
	if state(m.state.Load()) != stateFinalized {
		return
	}
	slot := key.Hash() % m.capacity
	for e := m.directory[slot].Load(); e != nil; e = e.next {
		if e.key.Equal(key) {
			fn(e.val)
		}
	}
}

// EqualRange materializes EqualRangeFunc's results into a slice, for
// callers that don't need to stream.
func (m *LazyMultiMap[K, V]) EqualRange(key K) []V {
	var out []V
	m.EqualRangeFunc(key, func(v V) { out = append(out, v) })
	return out
}
