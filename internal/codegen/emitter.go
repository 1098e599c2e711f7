// Package codegen implements the streaming, indentation-tracking source
// writer operators use to emit the pipelined Go translation unit: scoped
// blocks, terminated statements, and un-terminated flow lines. The emitter
// carries no semantic knowledge of what it is writing.
package codegen

import (
	"fmt"
	"io"
	"strings"
)

const indentUnit = "\t"

// Emitter writes indented Go source to an underlying writer.
type Emitter struct {
	w      io.Writer
	indent int
	err    error
}

func New(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Err returns the first write error encountered, if any.
func (e *Emitter) Err() error { return e.err }

func (e *Emitter) writeLine(text string) {
	if e.err != nil {
		return
	}
	_, err := fmt.Fprintf(e.w, "%s%s\n", strings.Repeat(indentUnit, e.indent), text)
	if err != nil {
		e.err = err
	}
}

// Stmt emits one terminated statement at the current indent level. Go
// tolerates an explicit trailing semicolon on a simple statement, so the
// emitter keeps the same statement/flow distinction spec.md 4.6 describes
// even though Go does not require it.
func (e *Emitter) Stmt(format string, args ...any) {
	e.writeLine(fmt.Sprintf(format, args...) + ";")
}

// Flow emits one un-terminated control-flow line (an opening `if`/`for`
// header, a closing brace, ...) at the current indent level.
func (e *Emitter) Flow(format string, args ...any) {
	e.writeLine(fmt.Sprintf(format, args...))
}

// Comment emits a `//` comment line at the current indent level.
func (e *Emitter) Comment(format string, args ...any) {
	e.writeLine("// " + fmt.Sprintf(format, args...))
}

// BeginScope opens a `header {` line and returns a closer that emits the
// matching `}` at the outer indent level. Callers should `defer` the
// returned closer so the closing brace is emitted regardless of how the
// caller's function returns.
func (e *Emitter) BeginScope(header string, args ...any) func() {
	e.writeLine(fmt.Sprintf(header, args...) + " {")
	e.indent++
	return func() {
		e.indent--
		e.writeLine("}")
	}
}
