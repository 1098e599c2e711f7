// Package compiler realizes spec.md's "compile to a native shared object
// and dynamically load it" step: it renders a plan.Print tree's generated
// Go source, builds it as a Go plugin in a fresh scratch directory, and
// loads the resulting ExecuteQuery symbol as an engine.QueryFunc.
package compiler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/imlabdb/imlabdb/internal/codegen"
	"github.com/imlabdb/imlabdb/internal/engine"
	"github.com/imlabdb/imlabdb/internal/plan"
	"github.com/imlabdb/imlabdb/internal/storage"
)

var queryIDCounter int64

// NextQueryID returns a fresh, monotonically increasing id distinguishing
// one compiled translation unit from another.
func NextQueryID() int {
	return int(atomic.AddInt64(&queryIDCounter, 1))
}

// alwaysImported are the packages every generated ExecuteQuery body needs
// regardless of plan shape: storage.Database/io.Writer appear in its
// signature, and Print (always the plan's root) always constructs an
// engine.Printer.
var alwaysImported = []string{
	"io",
	"github.com/imlabdb/imlabdb/internal/engine",
	"github.com/imlabdb/imlabdb/internal/storage",
}

// Source renders the translation unit a compiled query plugin exports as
// ExecuteQuery.
func Source(root *plan.Print, queryID int) (string, error) {
	var body bytes.Buffer
	e := codegen.New(&body)
	closeFn := e.BeginScope("func ExecuteQuery(db *storage.Database, w io.Writer)")
	root.Produce(&plan.Context{Emit: e, DBVar: "db", OutVar: "w"})
	closeFn()
	if err := e.Err(); err != nil {
		return "", fmt.Errorf("compiler: rendering query %d: %w", queryID, err)
	}

	imports := append([]string(nil), alwaysImported...)
	// hashmap and value only appear in the body when the plan actually
	// has a join (hashmap.New/TupleKey) or a literal/boolean expression
	// (value.Value); Go rejects an unused import, so these two are only
	// pulled in when the rendered body actually references them.
	bodyText := body.String()
	if strings.Contains(bodyText, "hashmap.") {
		imports = append(imports, "github.com/imlabdb/imlabdb/internal/hashmap")
	}
	if strings.Contains(bodyText, "value.") {
		imports = append(imports, "github.com/imlabdb/imlabdb/internal/value")
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated for query %d. DO NOT EDIT.\n\n", queryID)
	out.WriteString("package main\n\n")
	out.WriteString("import (\n")
	for _, imp := range imports {
		fmt.Fprintf(&out, "\t%q\n", imp)
	}
	out.WriteString(")\n\n")
	out.Write(body.Bytes())
	return out.String(), nil
}

// Compiler builds and loads one compiled query at a time, each into its
// own uuid-named scratch subdirectory so concurrently compiled queries
// never collide on disk.
type Compiler struct {
	ScratchDir string
	GoTool     string
}

func New(scratchDir, goTool string) *Compiler {
	if goTool == "" {
		goTool = "go"
	}
	return &Compiler{ScratchDir: scratchDir, GoTool: goTool}
}

// Compile writes root's generated source to a fresh scratch subdirectory,
// builds it as a Go plugin, and resolves its ExecuteQuery symbol.
func (c *Compiler) Compile(root *plan.Print, queryID int) (engine.QueryFunc, error) {
	src, err := Source(root, queryID)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(c.ScratchDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("compiler: creating scratch dir %s: %w", dir, err)
	}

	srcName := fmt.Sprintf("query_%d.go", queryID)
	srcPath := filepath.Join(dir, srcName)
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		return nil, fmt.Errorf("compiler: writing %s: %w", srcPath, err)
	}

	soName := fmt.Sprintf("query_%d.so", queryID)
	soPath := filepath.Join(dir, soName)
	args := []string{"build", "-buildmode=plugin", "-o", soName, srcName}

	cmd := exec.Command(c.GoTool, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		invocation := shellquote.Join(append([]string{c.GoTool}, args...)...)
		return nil, fmt.Errorf("compile failed: %s: %s: %w", invocation, stderr.String(), err)
	}

	return loadQueryFunc(soPath)
}

func loadQueryFunc(soPath string) (engine.QueryFunc, error) {
	p, err := plugin.Open(soPath)
	if err != nil {
		return nil, fmt.Errorf("compiler: loading plugin %s: %w", soPath, err)
	}
	sym, err := p.Lookup("ExecuteQuery")
	if err != nil {
		return nil, fmt.Errorf("compiler: looking up ExecuteQuery in %s: %w", soPath, err)
	}
	fn, ok := sym.(func(*storage.Database, io.Writer))
	if !ok {
		return nil, fmt.Errorf("compiler: ExecuteQuery in %s has unexpected signature %T", soPath, sym)
	}
	return engine.QueryFunc(fn), nil
}
