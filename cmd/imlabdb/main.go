// Command imlabdb is the imlabdb REPL: it loads the nine fixed TPC-C
// relations from --include_dir, then compiles and runs each
// "SELECT ... FROM ... WHERE ...;" statement read from stdin against the
// resulting in-memory database.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/imlabdb/imlabdb/internal/compiler"
	"github.com/imlabdb/imlabdb/internal/engineconfig"
	"github.com/imlabdb/imlabdb/internal/plan"
	"github.com/imlabdb/imlabdb/internal/queryast"
	"github.com/imlabdb/imlabdb/internal/storage"
	"github.com/imlabdb/imlabdb/util"
)

type options struct {
	IncludeDir string `long:"include_dir" description:"directory containing the tpcc_<relation>.tbl fixture files" required:"true"`
	Config     string `long:"config" description:"optional engine configuration YAML file"`
	Explain    bool   `long:"explain" description:"pretty-print the resolved operator tree before compiling each query"`
}

func main() {
	util.InitSlog()

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	cfg, err := engineconfig.Load(opts.Config)
	if err != nil {
		fatal("configuration", err)
	}

	db := storage.NewTPCCDatabase()
	if err := storage.LoadTPCCFixtures(db, opts.IncludeDir); err != nil {
		fatal("fixture load", err)
	}
	slog.Debug("schema loaded", "relations", db.Describe())

	out := colorable.NewColorableStdout()
	errOut := colorable.NewColorableStderr()
	colorize := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	c := compiler.New(cfg.ScratchDir, cfg.GoTool)
	repl(db, c, opts.Explain, interactive, colorize, os.Stdin, out, errOut)
}

func repl(db *storage.Database, c *compiler.Compiler, explain, interactive, colorize bool, in io.Reader, out, errOut io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "imlab> ")
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == queryast.ExitCommand {
			return
		}
		if line == "" {
			continue
		}
		runQuery(db, c, explain, colorize, line, out, errOut)
	}
}

func runQuery(db *storage.Database, c *compiler.Compiler, explain, colorize bool, sql string, out, errOut io.Writer) {
	q, err := queryast.Parse(sql)
	if err != nil {
		diagnose(errOut, colorize, "parse", err)
		return
	}
	root, err := plan.Analyze(plan.NewArena(), db, q)
	if err != nil {
		diagnose(errOut, colorize, "semantic analysis", err)
		return
	}
	if explain {
		pp.Fprintln(errOut, root)
	}
	fn, err := c.Compile(root, compiler.NextQueryID())
	if err != nil {
		diagnose(errOut, colorize, "compile", err)
		return
	}
	fn(db, out)
}

func diagnose(w io.Writer, colorize bool, phase string, err error) {
	msg := fmt.Sprintf("%s failed: %s", phase, err)
	if colorize {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(w, msg)
}

func fatal(phase string, err error) {
	fmt.Fprintf(os.Stderr, "%s failed: %s\n", phase, err)
	os.Exit(1)
}
