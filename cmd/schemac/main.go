// Command schemac compiles a CREATE TABLE DDL file into the Go source
// imlabdb links a fixed schema from: a --out_h file of documentation-only
// tuple/PK structs and a --out_cc file of the storage.Relation
// constructors those structs describe.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/imlabdb/imlabdb/internal/schema"
	"github.com/imlabdb/imlabdb/util"
)

type options struct {
	In      string `long:"in" description:"path to the input DDL file" required:"true"`
	OutH    string `long:"out_h" description:"path to write the generated tuple/PK struct declarations" required:"true"`
	OutCC   string `long:"out_cc" description:"path to write the generated relation constructors" required:"true"`
	Package string `long:"package" description:"package name for both generated files" default:"schema"`
}

func main() {
	util.InitSlog()

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "schemac failed: %s\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	ddl, err := os.ReadFile(opts.In)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.In, err)
	}

	tables, err := schema.ParseDDL(string(ddl))
	if err != nil {
		return err
	}

	hFile, err := os.Create(opts.OutH)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.OutH, err)
	}
	defer hFile.Close()
	if err := schema.GenerateHeader(hFile, opts.Package, tables); err != nil {
		return fmt.Errorf("generating %s: %w", opts.OutH, err)
	}

	ccFile, err := os.Create(opts.OutCC)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.OutCC, err)
	}
	defer ccFile.Close()
	if err := schema.GenerateImpl(ccFile, opts.Package, tables); err != nil {
		return fmt.Errorf("generating %s: %w", opts.OutCC, err)
	}

	return nil
}
