package plan

import (
	"github.com/imlabdb/imlabdb/internal/storage"
)

// TableScan is a leaf operator iterating every live row of one relation.
type TableScan struct {
	Relation *storage.Relation

	ius      []*IU
	opID     int
	required *IUSet
	consumer Operator
}

// NewTableScan synthesizes one IU per declared column of rel, in column
// declaration order.
func NewTableScan(arena *Arena, rel *storage.Relation) *TableScan {
	ius := make([]*IU, len(rel.ColumnNames))
	for i, name := range rel.ColumnNames {
		ius[i] = arena.NewIU(rel.Name, name, rel.Columns[i].Type())
	}
	return &TableScan{Relation: rel, ius: ius, opID: arena.NewOpID()}
}

// IUForColumn resolves a column name to the IU this scan produces for it.
func (s *TableScan) IUForColumn(name string) (*IU, bool) {
	for _, iu := range s.ius {
		if iu.Column == name {
			return iu, true
		}
	}
	return nil, false
}

func (s *TableScan) CollectIUs() []*IU { return s.ius }

func (s *TableScan) Prepare(required *IUSet, consumer Operator) {
	s.required = required
	s.consumer = consumer
}

func (s *TableScan) relVar() string { return varName("rel", s.opID) }
func (s *TableScan) tidVar() string { return varName("tid", s.opID) }
func (s *TableScan) rowVar() string { return varName("row", s.opID) }

func (s *TableScan) Produce(ctx *Context) {
	e := ctx.Emit
	e.Stmt("%s := %s.MustRelation(%q)", s.relVar(), ctx.DBVar, s.Relation.Name)
	closeLoop := e.BeginScope("for %s := 0; %s < %s.Size(); %s++", s.tidVar(), s.tidVar(), s.relVar(), s.tidVar())
	closeIf := e.BeginScope("if !%s.IsLive(%s)", s.relVar(), s.tidVar())
	e.Flow("continue")
	closeIf()
	e.Stmt("%s := %s.Read(%s)", s.rowVar(), s.relVar(), s.tidVar())
	for i, iu := range s.ius {
		if s.required != nil && s.required.Contains(iu) {
			e.Stmt("%s := %s[%d]", iu.VarName(), s.rowVar(), i)
		}
	}
	if s.consumer != nil {
		s.consumer.Consume(ctx, s)
	}
	closeLoop()
}

// Consume is never called on a leaf operator.
func (s *TableScan) Consume(ctx *Context, from Operator) {
	panic("plan: TableScan.Consume called; TableScan has no children")
}
