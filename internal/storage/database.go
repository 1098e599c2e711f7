package storage

import (
	"fmt"
	"strings"

	"github.com/imlabdb/imlabdb/util"
)

// Database is the live, shared, read-mostly collection of relations a
// compiled query runs against. Generated code reaches it only through
// MustRelation() -> Size()/IsLive(tid)/Read(tid).
type Database struct {
	relations map[string]*Relation
	order     []string
}

func NewDatabase() *Database {
	return &Database{relations: make(map[string]*Relation)}
}

// Register attaches a relation under its own name; schemac-generated
// construction and the fixed TPC-C schema both go through this.
func (db *Database) Register(r *Relation) {
	if _, exists := db.relations[r.Name]; !exists {
		db.order = append(db.order, r.Name)
	}
	db.relations[r.Name] = r
}

// Relation resolves a declared relation by name, or reports ok=false.
func (db *Database) Relation(name string) (*Relation, bool) {
	r, ok := db.relations[name]
	return r, ok
}

// RelationNames lists every declared relation, in registration order.
func (db *Database) RelationNames() []string {
	return append([]string(nil), db.order...)
}

// MustRelation resolves a relation by name, panicking if it was not
// declared; used only by generated query code, which schema validation
// guarantees can never miss.
func (db *Database) MustRelation(name string) *Relation {
	r, ok := db.relations[name]
	if !ok {
		panic(fmt.Sprintf("storage: relation %q not registered", name))
	}
	return r
}

// Describe renders one line per declared relation, in alphabetical order
// regardless of registration order, for startup logging and --explain
// diagnostics.
func (db *Database) Describe() string {
	var lines []string
	for name, r := range util.CanonicalMapIter(db.relations) {
		lines = append(lines, fmt.Sprintf("%s(%s)", name, strings.Join(r.ColumnNames, ", ")))
	}
	return strings.Join(lines, "\n")
}
