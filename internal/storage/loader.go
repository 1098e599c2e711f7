package storage

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoadRows reads line-delimited, '|'-separated records from r into rel,
// casting each field through the corresponding column's text cast. A
// record with the wrong field count, or a field that fails to cast, is
// fatal to the whole load: spec.md 4.2 requires the load to stop, not skip
// the bad record.
func LoadRows(rel *Relation, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	loaded := 0
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		fields := strings.Split(text, "|")
		if len(fields) != len(rel.Columns) {
			return loaded, fmt.Errorf("storage: %s line %d: expected %d fields, got %d", rel.Name, line, len(rel.Columns), len(fields))
		}
		row := make(Tuple, len(fields))
		for i, f := range fields {
			v, err := rel.Columns[i].Type().CastFromText(f)
			if err != nil {
				return loaded, fmt.Errorf("storage: %s line %d field %d: %w", rel.Name, line, i, err)
			}
			row[i] = v
		}
		if _, err := rel.Create(row); err != nil {
			return loaded, fmt.Errorf("storage: %s line %d: %w", rel.Name, line, err)
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return loaded, fmt.Errorf("storage: %s: %w", rel.Name, err)
	}
	return loaded, nil
}

// LoadRelationFile opens path and loads it into rel via LoadRows.
func LoadRelationFile(rel *Relation, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("storage: opening %s: %w", path, err)
	}
	defer f.Close()
	return LoadRows(rel, f)
}

// LoadTPCCFixtures loads each of the nine fixed tpcc_<relation>.tbl files
// from dir into db, in schema declaration order, stopping at the first
// failure.
func LoadTPCCFixtures(db *Database, dir string) error {
	for _, spec := range tpccSchema {
		rel, ok := db.Relation(spec.name)
		if !ok {
			return fmt.Errorf("storage: relation %q not registered", spec.name)
		}
		path := dir + string(os.PathSeparator) + "tpcc_" + spec.name + ".tbl"
		n, err := LoadRelationFile(rel, path)
		if err != nil {
			return err
		}
		slog.Debug("loaded fixture", "relation", spec.name, "rows", n)
	}
	return nil
}
