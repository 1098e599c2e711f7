package storage

import (
	"strings"
	"testing"

	"github.com/imlabdb/imlabdb/internal/value"
)

func TestLoadRowsCastsEachField(t *testing.T) {
	r := NewRelation("customer", []string{"c_id", "c_first"}, []value.Type{value.Integer(), value.Varchar(16)})
	data := "1|Alice\n2|Bob\n"
	n, err := LoadRows(r, strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
	if r.Read(1)[1].(value.VarcharValue).Data != "Bob" {
		t.Fatalf("unexpected row 1: %v", r.Read(1))
	}
}

func TestLoadRowsFailsOnWrongFieldCount(t *testing.T) {
	r := NewRelation("t", []string{"a", "b"}, []value.Type{value.Integer(), value.Integer()})
	_, err := LoadRows(r, strings.NewReader("1|2|3\n"))
	if err == nil {
		t.Fatal("expected error for wrong field count")
	}
}

func TestLoadRowsFailsOnCastError(t *testing.T) {
	r := NewRelation("t", []string{"a"}, []value.Type{value.Integer()})
	_, err := LoadRows(r, strings.NewReader("not-a-number\n"))
	if err == nil {
		t.Fatal("expected cast error")
	}
}

func TestNewTPCCDatabaseDeclaresNineRelations(t *testing.T) {
	db := NewTPCCDatabase()
	names := db.RelationNames()
	if len(names) != 9 {
		t.Fatalf("expected 9 relations, got %d: %v", len(names), names)
	}
	if _, ok := db.Relation("customer"); !ok {
		t.Fatal("expected customer relation")
	}
}
