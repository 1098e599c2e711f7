package plan

import "strings"

// InnerJoin hash-joins Left (the build side) against Right (the probe
// side): Left is fully produced into a hashmap.LazyMultiMap keyed on
// LeftKeys before Right is produced at all, one EqualRange lookup per probe
// tuple. LeftKeys[i] and RightKeys[i] are the join's i-th equality pair.
type InnerJoin struct {
	Left, Right         Operator
	LeftKeys, RightKeys []*IU

	opID     int
	required *IUSet
	consumer Operator
	valueIUs []*IU // left-side IUs (besides the keys) the probe side needs materialized
}

func NewInnerJoin(arena *Arena, left, right Operator, leftKeys, rightKeys []*IU) *InnerJoin {
	if len(leftKeys) != len(rightKeys) || len(leftKeys) == 0 {
		panic("plan: InnerJoin requires at least one equality pair, same count on both sides")
	}
	return &InnerJoin{Left: left, Right: right, LeftKeys: leftKeys, RightKeys: rightKeys, opID: arena.NewOpID()}
}

func (j *InnerJoin) CollectIUs() []*IU {
	s := NewIUSet(j.Left.CollectIUs()...)
	s.AddAll(NewIUSet(j.Right.CollectIUs()...))
	return s.Ordered()
}

func (j *InnerJoin) Prepare(required *IUSet, consumer Operator) {
	j.required = required
	j.consumer = consumer

	leftSet := NewIUSet(j.Left.CollectIUs()...)
	rightSet := NewIUSet(j.Right.CollectIUs()...)

	leftNeeded := required.Intersect(leftSet)
	for _, k := range j.LeftKeys {
		leftNeeded.Add(k)
	}
	rightNeeded := required.Intersect(rightSet)
	for _, k := range j.RightKeys {
		rightNeeded.Add(k)
	}

	keySet := NewIUSet(j.LeftKeys...)
	valueSet := NewIUSet()
	for _, iu := range leftNeeded.Ordered() {
		if !keySet.Contains(iu) {
			valueSet.Add(iu)
		}
	}
	j.valueIUs = valueSet.Ordered()

	j.Left.Prepare(leftNeeded, j)
	j.Right.Prepare(rightNeeded, j)
}

func (j *InnerJoin) mapVar() string { return varName("mm", j.opID) }

func varList(ius []*IU) string {
	names := make([]string, len(ius))
	for i, iu := range ius {
		names[i] = iu.VarName()
	}
	return strings.Join(names, ", ")
}

func (j *InnerJoin) Produce(ctx *Context) {
	e := ctx.Emit
	e.Stmt("%s := hashmap.New[engine.TupleKey, []value.Value](hashmap.Options{})", j.mapVar())
	j.Left.Produce(ctx)
	e.Stmt("%s.Finalize()", j.mapVar())
	j.Right.Produce(ctx)
}

func (j *InnerJoin) Consume(ctx *Context, from Operator) {
	e := ctx.Emit
	switch from {
	case j.Left:
		keyVar := varName("bkey", j.opID)
		valVar := varName("bval", j.opID)
		e.Stmt("%s := engine.TupleKey{%s}", keyVar, varList(j.LeftKeys))
		e.Stmt("%s := []value.Value{%s}", valVar, varList(j.valueIUs))
		e.Stmt("%s.Insert(0, %s, %s)", j.mapVar(), keyVar, valVar)
	case j.Right:
		keyVar := varName("pkey", j.opID)
		hitsVar := varName("hits", j.opID)
		hVar := varName("h", j.opID)
		e.Stmt("%s := engine.TupleKey{%s}", keyVar, varList(j.RightKeys))
		e.Stmt("%s := %s.EqualRange(%s)", hitsVar, j.mapVar(), keyVar)
		closeLoop := e.BeginScope("for _, %s := range %s", hVar, hitsVar)
		for i, iu := range j.valueIUs {
			e.Stmt("%s := %s[%d]", iu.VarName(), hVar, i)
		}
		if j.consumer != nil {
			j.consumer.Consume(ctx, j)
		}
		closeLoop()
	default:
		panic("plan: InnerJoin.Consume called by an operator that is neither child")
	}
}
