package queryast

import "testing"

func TestParseScanOnly(t *testing.T) {
	q, err := Parse("SELECT c_id FROM customer;")
	if err != nil {
		t.Fatal(err)
	}
	if len(q.SelectList) != 1 || q.SelectList[0] != "c_id" {
		t.Fatalf("unexpected select list: %v", q.SelectList)
	}
	if len(q.FromList) != 1 || q.FromList[0] != "customer" {
		t.Fatalf("unexpected from list: %v", q.FromList)
	}
	if len(q.Where) != 0 {
		t.Fatalf("expected no predicates, got %v", q.Where)
	}
}

func TestParseFilterPushdown(t *testing.T) {
	q, err := Parse("SELECT c_first FROM customer WHERE c_id = 1 AND c_d_id = 1 AND c_w_id = 1;")
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Where) != 3 {
		t.Fatalf("expected 3 predicates, got %d", len(q.Where))
	}
	for _, p := range q.Where {
		if p.Kind != IntConstant {
			t.Fatalf("expected IntConstant predicates, got %v", p.Kind)
		}
	}
}

func TestParseJoinPredicatesAreColumnRefs(t *testing.T) {
	q, err := Parse("SELECT o_all_local FROM order, orderline WHERE o_w_id = ol_w_id AND o_d_id = ol_d_id AND o_id = ol_o_id;")
	if err != nil {
		t.Fatal(err)
	}
	if len(q.FromList) != 2 {
		t.Fatalf("expected 2 from-list items, got %d", len(q.FromList))
	}
	for _, p := range q.Where {
		if p.Kind != ColumnRef {
			t.Fatalf("expected ColumnRef predicates, got %v", p.Kind)
		}
	}
}

func TestParseStringLiteral(t *testing.T) {
	q, err := Parse("SELECT c_id FROM customer WHERE c_last = 'Smith';")
	if err != nil {
		t.Fatal(err)
	}
	if q.Where[0].Kind != StringConstant || q.Where[0].RHS != "Smith" {
		t.Fatalf("unexpected predicate: %v", q.Where[0])
	}
}

func TestParseReportsLocationOnError(t *testing.T) {
	_, err := Parse("SELECT FROM customer;")
	if err == nil {
		t.Fatal("expected parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Pos == "" {
		t.Fatal("expected a position in the error")
	}
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	_, err := Parse("SELECT c_id FROM customer")
	if err == nil {
		t.Fatal("expected error for missing semicolon")
	}
}

func TestParseUnterminatedString(t *testing.T) {
	_, err := Parse("SELECT c_id FROM customer WHERE c_last = 'Smith;")
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}
