package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/imlabdb/imlabdb/internal/compiler"
	"github.com/imlabdb/imlabdb/internal/storage"
)

func TestReplExitsOnExitCommand(t *testing.T) {
	db := storage.NewTPCCDatabase()
	c := compiler.New(t.TempDir(), "go")
	var out, errOut bytes.Buffer

	repl(db, c, false, false, false, strings.NewReader("exit;\n"), &out, &errOut)

	if errOut.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %q", errOut.String())
	}
}

func TestReplReportsParseFailuresWithoutStopping(t *testing.T) {
	db := storage.NewTPCCDatabase()
	c := compiler.New(t.TempDir(), "go")
	var out, errOut bytes.Buffer

	repl(db, c, false, false, false, strings.NewReader("not a query\nexit;\n"), &out, &errOut)

	if !strings.Contains(errOut.String(), "parse failed:") {
		t.Fatalf("expected a parse diagnostic, got %q", errOut.String())
	}
}

func TestReplSkipsBlankLines(t *testing.T) {
	db := storage.NewTPCCDatabase()
	c := compiler.New(t.TempDir(), "go")
	var out, errOut bytes.Buffer

	repl(db, c, false, false, false, strings.NewReader("\n\nexit;\n"), &out, &errOut)

	if errOut.Len() != 0 {
		t.Fatalf("expected blank lines to be ignored, got %q", errOut.String())
	}
}
