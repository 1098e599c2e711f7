package plan

import (
	"fmt"
	"strings"
)

// Print is always the plan's root: it projects Columns, in select-list
// order, to the generated query's engine.Printer sink.
type Print struct {
	Child   Operator
	Columns []*IU

	opID       int
	printerVar string
}

func NewPrint(arena *Arena, child Operator, columns []*IU) *Print {
	return &Print{Child: child, Columns: columns, opID: arena.NewOpID()}
}

func (p *Print) CollectIUs() []*IU { return p.Columns }

func (p *Print) Prepare(required *IUSet, consumer Operator) {
	needed := NewIUSet(p.Columns...)
	p.Child.Prepare(needed, p)
}

func (p *Print) Produce(ctx *Context) {
	e := ctx.Emit
	p.printerVar = varName("printer", p.opID)
	names := make([]string, len(p.Columns))
	for i, iu := range p.Columns {
		name := iu.Column
		if name == "" {
			name = fmt.Sprintf("expr%d", iu.ID)
		}
		names[i] = fmt.Sprintf("%q", name)
	}
	e.Stmt("%s := engine.NewPrinter(%s, []string{%s})", p.printerVar, ctx.OutVar, strings.Join(names, ", "))
	p.Child.Produce(ctx)
}

func (p *Print) Consume(ctx *Context, from Operator) {
	ctx.Emit.Stmt("%s.Row(%s)", p.printerVar, varList(p.Columns))
}
