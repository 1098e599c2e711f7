// Package xvalidate cross-checks a compiled query's output against a real
// SQLite engine loaded with the same fixture rows, so the join/selection
// semantics internal/plan implements can be validated against an
// independent SQL engine rather than only against hand-written
// expectations.
package xvalidate

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/imlabdb/imlabdb/internal/storage"
)

// Oracle wraps an in-memory SQLite database used as a reference engine.
type Oracle struct {
	db *sql.DB
}

func NewOracle() (*Oracle, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("xvalidate: opening sqlite: %w", err)
	}
	return &Oracle{db: db}, nil
}

func (o *Oracle) Close() error { return o.db.Close() }

// LoadRelation creates rel's table in the oracle and copies every live
// row, rendered the same way the column's Value.Render does.
func (o *Oracle) LoadRelation(rel *storage.Relation) error {
	cols := make([]string, len(rel.ColumnNames))
	for i, name := range rel.ColumnNames {
		cols[i] = name + " TEXT"
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", rel.Name, strings.Join(cols, ", "))
	if _, err := o.db.Exec(ddl); err != nil {
		return fmt.Errorf("xvalidate: creating %s: %w", rel.Name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(rel.ColumnNames)), ",")
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", rel.Name, placeholders)
	for tid := 0; tid < rel.Size(); tid++ {
		if !rel.IsLive(tid) {
			continue
		}
		row := rel.Read(tid)
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v.Render()
		}
		if _, err := o.db.Exec(insert, args...); err != nil {
			return fmt.Errorf("xvalidate: inserting into %s: %w", rel.Name, err)
		}
	}
	return nil
}

// Rows runs query against the oracle and returns each result row rendered
// as a tab-joined string, sorted: row order is not a guarantee either side
// makes, so comparisons must be multiset comparisons.
func (o *Oracle) Rows(query string) ([]string, error) {
	rows, err := o.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("xvalidate: querying: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rendered := make([]string, len(vals))
		for i, v := range vals {
			rendered[i] = fmt.Sprintf("%v", v)
		}
		out = append(out, strings.Join(rendered, "\t"))
	}
	sort.Strings(out)
	return out, rows.Err()
}

// CompareMultisets reports whether engine.Printer's output, ignoring its
// header line, is the same multiset of rows as oracleRows.
func CompareMultisets(printerOutput string, oracleRows []string) bool {
	lines := strings.Split(strings.TrimRight(printerOutput, "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[1:] // drop the header Printer writes before the first Row
	}
	var body []string
	for _, l := range lines {
		if l != "" {
			body = append(body, l)
		}
	}
	sort.Strings(body)

	if len(body) != len(oracleRows) {
		return false
	}
	for i := range body {
		if body[i] != oracleRows[i] {
			return false
		}
	}
	return true
}
