package compiler

import (
	"strings"
	"testing"

	"github.com/imlabdb/imlabdb/internal/plan"
	"github.com/imlabdb/imlabdb/internal/queryast"
	"github.com/imlabdb/imlabdb/internal/storage"
)

func analyzeOrFatal(t *testing.T, db *storage.Database, sql string) *plan.Print {
	t.Helper()
	q, err := queryast.Parse(sql)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := plan.Analyze(plan.NewArena(), db, q)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return root
}

func TestSourceRendersPackageAndImports(t *testing.T) {
	db := storage.NewTPCCDatabase()
	root := analyzeOrFatal(t, db, "SELECT c_first FROM customer WHERE c_id = 1;")

	src, err := Source(root, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(src, "// Code generated for query 7.") {
		t.Fatalf("expected a query-id header comment, got:\n%s", src)
	}
	if !strings.Contains(src, "package main") {
		t.Fatalf("expected package main, got:\n%s", src)
	}
	if !strings.Contains(src, `"github.com/imlabdb/imlabdb/internal/storage"`) {
		t.Fatalf("expected storage import, got:\n%s", src)
	}
	if !strings.Contains(src, "func ExecuteQuery(db *storage.Database, w io.Writer)") {
		t.Fatalf("expected ExecuteQuery signature, got:\n%s", src)
	}
}

func TestNextQueryIDIsMonotonic(t *testing.T) {
	a := NextQueryID()
	b := NextQueryID()
	if b <= a {
		t.Fatalf("expected monotonically increasing ids, got %d then %d", a, b)
	}
}
