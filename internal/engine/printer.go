package engine

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/imlabdb/imlabdb/internal/value"
)

// Printer is the Print operator's terminal sink: header once, then one
// tab-separated row per call to Row. Mutex-guarded so a parallel TableScan
// feeding several concurrent pipelines can share one sink without
// interleaving a row's columns across goroutines.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	wrote   bool
	columns []string
}

func NewPrinter(w io.Writer, columns []string) *Printer {
	return &Printer{w: w, columns: columns}
}

func (p *Printer) Row(vals ...value.Value) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.wrote {
		fmt.Fprintln(p.w, strings.Join(p.columns, "\t"))
		p.wrote = true
	}
	rendered := make([]string, len(vals))
	for i, v := range vals {
		rendered[i] = v.Render()
	}
	fmt.Fprintln(p.w, strings.Join(rendered, "\t"))
}
