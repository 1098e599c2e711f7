package plan

import (
	"fmt"

	"github.com/imlabdb/imlabdb/internal/codegen"
	"github.com/imlabdb/imlabdb/internal/value"
)

// Expr is one node of an expression tree (a WHERE-clause predicate, or a
// join condition). Every node, like every operator, has its own synthesized
// produced IU; the original design identified that IU by the node's own
// address, here by its own arena-assigned id so two evaluations of the same
// plan name it identically.
type Expr interface {
	IU() *IU
	RequiredIUs() *IUSet
	// Emit writes the statement(s) that compute this node's IU from its
	// children's (already-emitted) IUs.
	Emit(e *codegen.Emitter)
}

// Constant is a literal value folded in at compile time.
type Constant struct {
	Val value.Value
	iu  *IU
}

func NewConstant(arena *Arena, v value.Value) *Constant {
	return &Constant{Val: v, iu: arena.NewIU("", "", v.Type())}
}

func (c *Constant) IU() *IU             { return c.iu }
func (c *Constant) RequiredIUs() *IUSet { return NewIUSet() }

func (c *Constant) Emit(e *codegen.Emitter) {
	lit, err := value.GoLiteral(c.Val)
	if err != nil {
		// Construction already validated the value; this would be a
		// compiler bug, not a user error.
		panic(err)
	}
	e.Stmt("%s := %s", c.iu.VarName(), lit)
}

// IURef refers to an IU produced upstream (a scan column, typically).
type IURef struct {
	Ref *IU
	iu  *IU
}

func NewIURef(arena *Arena, ref *IU) *IURef {
	return &IURef{Ref: ref, iu: arena.NewIU(ref.Relation, ref.Column, ref.Typ)}
}

func (r *IURef) IU() *IU             { return r.iu }
func (r *IURef) RequiredIUs() *IUSet { return NewIUSet(r.Ref) }

func (r *IURef) Emit(e *codegen.Emitter) {
	e.Stmt("%s := %s", r.iu.VarName(), r.Ref.VarName())
}

// Equals is a binary equality test; its operands must share an identical
// type.
type Equals struct {
	L, R Expr
	iu   *IU
}

func NewEquals(arena *Arena, l, r Expr) (*Equals, error) {
	if !l.IU().Typ.Equal(r.IU().Typ) {
		return nil, fmt.Errorf("plan: Equals operands have mismatched types %s and %s", l.IU().Typ, r.IU().Typ)
	}
	return &Equals{L: l, R: r, iu: arena.NewIU("", "", value.Bool())}, nil
}

func (eq *Equals) IU() *IU { return eq.iu }

func (eq *Equals) RequiredIUs() *IUSet {
	return eq.L.RequiredIUs().Union(eq.R.RequiredIUs())
}

func (eq *Equals) Emit(e *codegen.Emitter) {
	eq.L.Emit(e)
	eq.R.Emit(e)
	e.Stmt("%s := value.Value(value.BoolValue(%s.Compare(%s) == 0))", eq.iu.VarName(), eq.L.IU().VarName(), eq.R.IU().VarName())
}

// And is a binary logical conjunction; both operands must be Bool-typed.
type And struct {
	L, R Expr
	iu   *IU
}

func NewAnd(arena *Arena, l, r Expr) (*And, error) {
	if l.IU().Typ.Kind != value.KindBool || r.IU().Typ.Kind != value.KindBool {
		return nil, fmt.Errorf("plan: And operands must be Bool")
	}
	return &And{L: l, R: r, iu: arena.NewIU("", "", value.Bool())}, nil
}

func (a *And) IU() *IU { return a.iu }

func (a *And) RequiredIUs() *IUSet {
	return a.L.RequiredIUs().Union(a.R.RequiredIUs())
}

func (a *And) Emit(e *codegen.Emitter) {
	a.L.Emit(e)
	a.R.Emit(e)
	e.Stmt("%s := value.Value(value.BoolValue(bool(%s.(value.BoolValue)) && bool(%s.(value.BoolValue))))", a.iu.VarName(), a.L.IU().VarName(), a.R.IU().VarName())
}
