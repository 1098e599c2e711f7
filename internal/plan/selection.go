package plan

// Selection filters its child's tuples by a boolean expression -- the
// compiled translation of one or more AND-chained WHERE predicates that the
// semantic analyzer could not push all the way into a TableScan, or chose
// to evaluate after a join.
type Selection struct {
	Child Operator
	Pred  Expr

	required *IUSet
	consumer Operator
}

func NewSelection(child Operator, pred Expr) *Selection {
	return &Selection{Child: child, Pred: pred}
}

func (s *Selection) CollectIUs() []*IU { return s.Child.CollectIUs() }

func (s *Selection) Prepare(required *IUSet, consumer Operator) {
	s.required = required
	s.consumer = consumer
	childRequired := required.Union(s.Pred.RequiredIUs())
	s.Child.Prepare(childRequired, s)
}

func (s *Selection) Produce(ctx *Context) {
	s.Child.Produce(ctx)
}

func (s *Selection) Consume(ctx *Context, from Operator) {
	e := ctx.Emit
	s.Pred.Emit(e)
	closeIf := e.BeginScope("if bool(%s.(value.BoolValue))", s.Pred.IU().VarName())
	if s.consumer != nil {
		s.consumer.Consume(ctx, s)
	}
	closeIf()
}
