// Package storage implements imlabdb's column-oriented relation storage:
// per-column typed vectors, a tombstone bit per row, and an ordered
// primary-key index used by generated KeyIterator scans.
package storage

import (
	"fmt"

	"github.com/google/btree"

	"github.com/imlabdb/imlabdb/internal/value"
)

// Tuple is a materialized row: one Value per column, in column declaration
// order.
type Tuple []value.Value

func compareTuples(a, b Tuple) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// pkEntry is the btree.Item stored in a Relation's primary-key index.
type pkEntry struct {
	key Tuple
	tid int
}

func (e pkEntry) Less(than btree.Item) bool {
	return compareTuples(e.key, than.(pkEntry).key) < 0
}

const pkTreeDegree = 32

// Relation owns an ordered sequence of named typed columns, a tombstone bit
// per row, and, if a primary key is declared, an ordered index from the PK
// tuple to row index.
type Relation struct {
	Name        string
	ColumnNames []string
	Columns     []*Column

	tombstones []bool

	pkColumnNames []string
	pkColumnIdx   []int
	pk            *btree.BTree
}

// NewRelation constructs an empty relation with the given columns, in
// declaration order. The primary key, if any, is installed afterwards via
// SetPrimaryKey so schema compilation can attach columns before it knows
// the key.
func NewRelation(name string, columnNames []string, columnTypes []value.Type) *Relation {
	if len(columnNames) != len(columnTypes) {
		panic("storage: column name/type count mismatch")
	}
	r := &Relation{Name: name, ColumnNames: append([]string(nil), columnNames...)}
	for _, t := range columnTypes {
		r.Columns = append(r.Columns, newColumn(t))
	}
	return r
}

func (r *Relation) columnIndex(name string) int {
	for i, n := range r.ColumnNames {
		if n == name {
			return i
		}
	}
	return -1
}

// SetPrimaryKey declares which columns, in the given order, form the
// primary key. It validates the argument against this relation's actual
// columns and then installs it -- the original schema compiler this is
// grounded on instead re-validated whatever primary key was already
// installed, which silently accepted a bad argument; this implementation
// does not reproduce that.
func (r *Relation) SetPrimaryKey(pkColumnNames []string) error {
	idx := make([]int, len(pkColumnNames))
	for i, name := range pkColumnNames {
		ci := r.columnIndex(name)
		if ci < 0 {
			return fmt.Errorf("storage: primary key column %q not declared on relation %q", name, r.Name)
		}
		idx[i] = ci
	}
	r.pkColumnNames = append([]string(nil), pkColumnNames...)
	r.pkColumnIdx = idx
	r.pk = btree.New(pkTreeDegree)
	for tid := range r.tombstones {
		if r.tombstones[tid] {
			r.pk.ReplaceOrInsert(pkEntry{key: r.Assemble(r.Read(tid)), tid: tid})
		}
	}
	return nil
}

func (r *Relation) HasPrimaryKey() bool { return r.pk != nil }

// Assemble extracts a row's primary-key tuple, in the primary key's own
// declaration order (which need not match column declaration order).
func (r *Relation) Assemble(row Tuple) Tuple {
	if r.pk == nil {
		return nil
	}
	key := make(Tuple, len(r.pkColumnIdx))
	for i, ci := range r.pkColumnIdx {
		key[i] = row[ci]
	}
	return key
}

// Size is the number of rows ever appended, including tombstoned ones; row
// indices are stable for the life of the row.
func (r *Relation) Size() int {
	return len(r.tombstones)
}

func (r *Relation) IsLive(tid int) bool {
	return tid >= 0 && tid < len(r.tombstones) && r.tombstones[tid]
}

// Create appends one value per column, in column declaration order, sets
// the new row live, and updates the primary-key index.
func (r *Relation) Create(row Tuple) (int, error) {
	if len(row) != len(r.Columns) {
		return 0, fmt.Errorf("storage: relation %q expects %d columns, got %d", r.Name, len(r.Columns), len(row))
	}
	tid := len(r.tombstones)
	for i, v := range row {
		r.Columns[i].append(v)
	}
	r.tombstones = append(r.tombstones, true)
	if r.pk != nil {
		r.pk.ReplaceOrInsert(pkEntry{key: r.Assemble(row), tid: tid})
	}
	return tid, nil
}

// Read materializes the tuple at tid by reading each column at that row
// index, regardless of tombstone state.
func (r *Relation) Read(tid int) Tuple {
	row := make(Tuple, len(r.Columns))
	for i, c := range r.Columns {
		row[i] = c.get(tid)
	}
	return row
}

// Update rewrites all columns at tid and re-keys the primary-key index.
func (r *Relation) Update(tid int, row Tuple) error {
	if !r.IsLive(tid) {
		return fmt.Errorf("storage: update of dead or out-of-range tid %d on %q", tid, r.Name)
	}
	if len(row) != len(r.Columns) {
		return fmt.Errorf("storage: relation %q expects %d columns, got %d", r.Name, len(r.Columns), len(row))
	}
	if r.pk != nil {
		old := r.Read(tid)
		r.pk.Delete(pkEntry{key: r.Assemble(old), tid: tid})
	}
	for i, v := range row {
		r.Columns[i].set(tid, v)
	}
	if r.pk != nil {
		r.pk.ReplaceOrInsert(pkEntry{key: r.Assemble(row), tid: tid})
	}
	return nil
}

// Delete clears the tombstone and removes the row's primary-key entry.
func (r *Relation) Delete(tid int) error {
	if !r.IsLive(tid) {
		return fmt.Errorf("storage: delete of dead or out-of-range tid %d on %q", tid, r.Name)
	}
	if r.pk != nil {
		r.pk.Delete(pkEntry{key: r.Assemble(r.Read(tid)), tid: tid})
	}
	r.tombstones[tid] = false
	return nil
}

// Lookup resolves a primary-key tuple to its row index.
func (r *Relation) Lookup(key Tuple) (int, bool) {
	if r.pk == nil {
		return 0, false
	}
	item := r.pk.Get(pkEntry{key: key})
	if item == nil {
		return 0, false
	}
	return item.(pkEntry).tid, true
}

// KeyIterator yields tuples in primary-key order for keys k with
// lo <= k <= hi (both endpoints inclusive, matching the original
// lower_bound(lo)/upper_bound(hi) pair this is grounded on).
type KeyIterator struct {
	relation *Relation
	hi       Tuple
	pending  []Tuple
	i        int
}

func (r *Relation) KeyIterator(lo, hi Tuple) *KeyIterator {
	it := &KeyIterator{relation: r, hi: hi}
	if r.pk == nil {
		return it
	}
	r.pk.AscendGreaterOrEqual(pkEntry{key: lo}, func(item btree.Item) bool {
		e := item.(pkEntry)
		if compareTuples(e.key, hi) > 0 {
			return false
		}
		it.pending = append(it.pending, r.Read(e.tid))
		return true
	})
	return it
}

// Next returns the next tuple in primary-key order, or ok=false when
// exhausted.
func (it *KeyIterator) Next() (Tuple, bool) {
	if it.i >= len(it.pending) {
		return nil, false
	}
	t := it.pending[it.i]
	it.i++
	return t, true
}
