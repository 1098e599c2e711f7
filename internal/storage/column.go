package storage

import "github.com/imlabdb/imlabdb/internal/value"

// Column is a contiguous, grow-only vector of one relation column's values.
// Every element is expected to hold the column's logical Type; neither
// Column nor Relation.Create checks a value's type (LoadRows guarantees it
// by casting each field through the column's Type).
type Column struct {
	typ  value.Type
	data []value.Value
}

func newColumn(typ value.Type) *Column {
	return &Column{typ: typ}
}

func (c *Column) Type() value.Type { return c.typ }
func (c *Column) Len() int         { return len(c.data) }

func (c *Column) append(v value.Value) {
	c.data = append(c.data, v)
}

func (c *Column) get(tid int) value.Value {
	return c.data[tid]
}

func (c *Column) set(tid int, v value.Value) {
	c.data[tid] = v
}
