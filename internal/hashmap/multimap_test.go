package hashmap

import (
	"sync"
	"testing"
)

type intKey int64

func (k intKey) Hash() uint64 {
	x := uint64(k)
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

func (k intKey) Equal(other any) bool {
	o, ok := other.(intKey)
	return ok && o == k
}

func TestEqualRangeYieldsExactSubmultiset(t *testing.T) {
	m := New[intKey, int](Options{})
	inserts := map[intKey][]int{
		1: {10, 11, 12},
		2: {20},
		3: {},
	}
	for k, vals := range inserts {
		for _, v := range vals {
			m.Insert(0, k, v)
		}
	}
	m.Finalize()

	for k, want := range inserts {
		got := m.EqualRange(k)
		if len(got) != len(want) {
			t.Fatalf("key %d: got %v, want %v", k, got, want)
		}
		seen := map[int]int{}
		for _, v := range got {
			seen[v]++
		}
		for _, v := range want {
			seen[v]--
		}
		for v, c := range seen {
			if c != 0 {
				t.Fatalf("key %d: mismatch on value %d (delta %d)", k, v, c)
			}
		}
	}
}

func TestLookupBeforeFinalizeIsEmpty(t *testing.T) {
	m := New[intKey, int](Options{})
	m.Insert(0, intKey(1), 42)
	if got := m.EqualRange(intKey(1)); len(got) != 0 {
		t.Fatalf("expected empty lookup before Finalize, got %v", got)
	}
}

func TestInsertAfterFinalizePanics(t *testing.T) {
	m := New[intKey, int](Options{})
	m.Finalize()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Insert after Finalize")
		}
	}()
	m.Insert(0, intKey(1), 1)
}

func TestConcurrentInsertAcrossShardsStressS6(t *testing.T) {
	const total = 100_000
	const keySpace = 1024
	const workers = 8

	m := New[intKey, int](Options{Parallel: true})
	shards := m.ShardCount()

	var wg sync.WaitGroup
	perWorker := total / workers
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			shard := w % shards
			for i := 0; i < perWorker; i++ {
				key := intKey((w*perWorker + i) % keySpace)
				m.Insert(shard, key, 1)
			}
		}()
	}
	wg.Wait()
	m.Finalize()

	sum := 0
	for k := 0; k < keySpace; k++ {
		sum += len(m.EqualRange(intKey(k)))
	}
	if sum != total {
		t.Fatalf("expected total count %d across all keys, got %d", total, sum)
	}
}

func TestParallelFinalizeMatchesSequential(t *testing.T) {
	build := func(opts Options) []int {
		m := New[intKey, int](opts)
		for i := 0; i < 5000; i++ {
			m.Insert(i%4, intKey(i%32), i)
		}
		m.Finalize()
		var total []int
		for k := 0; k < 32; k++ {
			total = append(total, len(m.EqualRange(intKey(k))))
		}
		return total
	}
	seq := build(Options{Parallel: true, ParallelFinalize: false})
	par := build(Options{Parallel: true, ParallelFinalize: true})
	if len(seq) != len(par) {
		t.Fatal("length mismatch")
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("bucket %d: sequential=%d parallel=%d", i, seq[i], par[i])
		}
	}
}
