package plan

import "github.com/imlabdb/imlabdb/internal/codegen"

// Context carries the state every operator's Produce/Consume needs from the
// enclosing translation unit: where to write source, and the name of the
// variable holding the *storage.Database the generated function receives.
type Context struct {
	Emit   *codegen.Emitter
	DBVar  string
	OutVar string
}

// Operator is one node of the logical plan. The produce/consume protocol is
// the Neumann-style pipelined codegen this whole compiler exists to
// demonstrate: Prepare walks root-to-leaf computing each operator's required
// IU set from its consumer, then Produce also walks root-to-leaf down to the
// scans, which emit the loop headers; each operator then calls
// consumer.Consume(ctx, self) once per tuple it produces, inline, with no
// materialization between operators.
type Operator interface {
	// CollectIUs returns every IU this operator (and its subtree) can
	// produce, without regard to what's actually required downstream.
	CollectIUs() []*IU

	// Prepare records which of CollectIUs's IUs the consumer actually
	// needs and who that consumer is, recursing into children with their
	// own required sets.
	Prepare(required *IUSet, consumer Operator)

	// Produce emits this operator's loop/scan header and, for each tuple,
	// calls its consumer's Consume.
	Produce(ctx *Context)

	// Consume is called by the child operator `from` once per tuple it
	// makes available; the receiver emits whatever it does with that
	// tuple (filter, probe, insert, project) and, if it has its own
	// consumer, calls that consumer's Consume in turn.
	Consume(ctx *Context, from Operator)
}
