package engine

import (
	"io"

	"github.com/imlabdb/imlabdb/internal/storage"
)

// QueryFunc is the signature generated by internal/codegen and looked up
// by internal/compiler via plugin.Lookup("ExecuteQuery"). Every compiled
// query, regardless of its plan shape, exposes exactly this symbol; the
// generated body owns constructing its own Printer over w.
type QueryFunc func(db *storage.Database, w io.Writer)
