package plan

import (
	"strings"
	"testing"

	"github.com/imlabdb/imlabdb/internal/codegen"
	"github.com/imlabdb/imlabdb/internal/queryast"
	"github.com/imlabdb/imlabdb/internal/storage"
	"github.com/imlabdb/imlabdb/internal/value"
)

func compile(t *testing.T, db *storage.Database, sql string) string {
	t.Helper()
	q, err := queryast.Parse(sql)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := Analyze(NewArena(), db, q)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var sb strings.Builder
	e := codegen.New(&sb)
	ctx := &Context{Emit: e, DBVar: "db", OutVar: "w"}
	root.Produce(ctx)
	return sb.String()
}

func mustAnalyzeErr(t *testing.T, db *storage.Database, sql string) error {
	t.Helper()
	q, err := queryast.Parse(sql)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Analyze(NewArena(), db, q)
	if err == nil {
		t.Fatalf("expected analyze error for %q", sql)
	}
	return err
}

func TestSingleRelationPredicatesPushDown(t *testing.T) {
	db := storage.NewTPCCDatabase()
	out := compile(t, db, "SELECT c_first FROM customer WHERE c_id = 1 AND c_d_id = 1 AND c_w_id = 1;")

	if strings.Count(out, `db.MustRelation("customer")`) != 1 {
		t.Fatalf("expected exactly one customer scan, got:\n%s", out)
	}
	if strings.Contains(out, "hashmap.New") {
		t.Fatalf("single-relation query should not build a join map:\n%s", out)
	}
	if !strings.Contains(out, "printer") || !strings.Contains(out, ".Row(") {
		t.Fatalf("expected a printer row emission:\n%s", out)
	}
	// The pushed-down predicates, folded into one And-chain, are guarded by
	// an if that must appear before the Row call.
	if strings.Index(out, "if bool(") > strings.Index(out, ".Row(") {
		t.Fatalf("predicate filter emitted after projection:\n%s", out)
	}
}

func TestJoinEqualityBecomesKeyNotPostFilter(t *testing.T) {
	db := storage.NewTPCCDatabase()
	out := compile(t, db, "SELECT o_all_local FROM order, orderline WHERE o_w_id = ol_w_id AND o_d_id = ol_d_id AND o_id = ol_o_id;")

	if !strings.Contains(out, "hashmap.New[engine.TupleKey") {
		t.Fatalf("expected a TupleKey hashmap for the join:\n%s", out)
	}
	if !strings.Contains(out, ".Finalize()") {
		t.Fatalf("expected the build side to Finalize:\n%s", out)
	}
	if !strings.Contains(out, ".EqualRange(") {
		t.Fatalf("expected the probe side to EqualRange:\n%s", out)
	}
	// All three join columns are equi-join edges; none should also surface
	// as a standalone post-join boolean filter.
	if strings.Contains(out, "if bool(") {
		t.Fatalf("join-only query should have no post-join Selection filters:\n%s", out)
	}
}

func TestThreeWayJoinChainsInnerJoins(t *testing.T) {
	db := storage.NewTPCCDatabase()
	sql := "SELECT ol_amount FROM customer, order, orderline " +
		"WHERE c_w_id = o_w_id AND c_d_id = o_d_id AND c_id = o_c_id " +
		"AND o_w_id = ol_w_id AND o_d_id = ol_d_id AND o_id = ol_o_id " +
		"AND c_w_id = 1 AND c_d_id = 1 AND c_id = 322;"
	out := compile(t, db, sql)

	if strings.Count(out, "hashmap.New[engine.TupleKey") != 2 {
		t.Fatalf("expected two join maps for a three-relation chain:\n%s", out)
	}
	if strings.Count(out, `db.MustRelation(`) != 3 {
		t.Fatalf("expected three scans:\n%s", out)
	}
}

func TestCrossProductWithoutJoinPredicateIsRejected(t *testing.T) {
	db := storage.NewTPCCDatabase()
	err := mustAnalyzeErr(t, db, "SELECT c_id FROM customer, item;")
	if !strings.Contains(err.Error(), "cross product") {
		t.Fatalf("expected a cross-product error, got: %v", err)
	}
}

func TestSelfJoinIsRejectedByThisGrammar(t *testing.T) {
	db := storage.NewTPCCDatabase()
	err := mustAnalyzeErr(t, db, "SELECT c_id FROM customer, customer WHERE c_id = 1;")
	if !strings.Contains(err.Error(), "self-join") {
		t.Fatalf("expected a self-join error, got: %v", err)
	}
}

func TestAmbiguousColumnIsRejected(t *testing.T) {
	db := storage.NewDatabase()
	a := storage.NewRelation("a", []string{"id", "a_key"}, []value.Type{value.Integer(), value.Integer()})
	b := storage.NewRelation("b", []string{"id", "b_key"}, []value.Type{value.Integer(), value.Integer()})
	db.Register(a)
	db.Register(b)

	err := mustAnalyzeErr(t, db, "SELECT a_key FROM a, b WHERE id = 1 AND a_key = b_key;")
	if !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected an ambiguous-column error, got: %v", err)
	}
}

func TestUnknownRelationIsRejected(t *testing.T) {
	db := storage.NewTPCCDatabase()
	err := mustAnalyzeErr(t, db, "SELECT x FROM nosuchtable;")
	if !strings.Contains(err.Error(), "unknown relation") {
		t.Fatalf("expected unknown-relation error, got: %v", err)
	}
}

func TestIUSetOrderingIsStableById(t *testing.T) {
	arena := NewArena()
	iu3 := arena.NewIU("", "c", value.Integer())
	iu1 := arena.NewIU("", "a", value.Integer())
	iu2 := arena.NewIU("", "b", value.Integer())

	s := NewIUSet(iu3, iu1, iu2)
	ordered := s.Ordered()
	if len(ordered) != 3 || ordered[0] != iu3 || ordered[1] != iu1 || ordered[2] != iu2 {
		t.Fatalf("expected insertion-id order regardless of Add order, got %v", ordered)
	}
}

func TestInnerJoinRequiresMatchedKeyArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for mismatched key arity")
		}
	}()
	db := storage.NewTPCCDatabase()
	arena := NewArena()
	oRel, _ := db.Relation("order")
	olRel, _ := db.Relation("orderline")
	left := NewTableScan(arena, oRel)
	right := NewTableScan(arena, olRel)
	leftIU, _ := left.IUForColumn("o_w_id")
	rightIU, _ := right.IUForColumn("ol_w_id")
	NewInnerJoin(arena, left, right, []*IU{leftIU}, []*IU{rightIU, rightIU})
}
