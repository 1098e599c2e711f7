package schema

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/imlabdb/imlabdb/internal/codegen"
	"github.com/imlabdb/imlabdb/internal/value"
	"github.com/imlabdb/imlabdb/util"
)

// GenerateHeader writes the --out_h file: one documentation-only TupleType
// and PKType struct per table, a Go-native mirror of the original
// compiler's generated C++ tuple structs. Nothing in the engine reads
// these structs; internal/storage stays column-oriented. They exist so a
// human (or a test) has a typed, named view of a compiled schema.
func GenerateHeader(w io.Writer, pkg string, tables []Table) error {
	e := codegen.New(w)
	e.Comment("Code generated by schemac. DO NOT EDIT.")
	e.Flow("package %s", pkg)
	e.Flow("")

	for _, t := range tables {
		name := exportedName(t.Name)
		e.Comment("%sTuple mirrors the %s table's columns in declaration order.", name, t.Name)
		closeTuple := e.BeginScope("type %sTuple struct", name)
		for _, c := range t.Columns {
			e.Stmt("%s %s", exportedName(c.Name), goFieldType(c.Type))
		}
		closeTuple()
		e.Flow("")

		if len(t.PrimaryKey) > 0 {
			e.Comment("%sPK is the %s table's primary key, in its declared column order.", name, t.Name)
			closePK := e.BeginScope("type %sPK struct", name)
			for _, pkCol := range t.PrimaryKey {
				e.Stmt("%s %s", exportedName(pkCol), goFieldType(columnType(t, pkCol)))
			}
			closePK()
			e.Flow("")
		}
	}
	return e.Err()
}

// GenerateImpl writes the --out_cc file: one New<Table>Relation
// constructor per table, building the storage.Relation the header's
// structs describe, and a Register entry point that builds and
// registers every table from one DDL file onto a storage.Database.
func GenerateImpl(w io.Writer, pkg string, tables []Table) error {
	e := codegen.New(w)
	e.Comment("Code generated by schemac. DO NOT EDIT.")
	e.Flow("package %s", pkg)
	e.Flow("")
	e.Flow("import (")
	e.Flow("\t%q", "github.com/imlabdb/imlabdb/internal/storage")
	e.Flow("\t%q", "github.com/imlabdb/imlabdb/internal/value")
	e.Flow(")")
	e.Flow("")

	for _, t := range tables {
		name := exportedName(t.Name)
		closeFn := e.BeginScope("func New%sRelation() *storage.Relation", name)
		e.Stmt("columns := []string{%s}", quotedList(columnNames(t)))
		e.Stmt("types := []value.Type{%s}", typeList(t.Columns))
		e.Stmt("rel := storage.NewRelation(%q, columns, types)", t.Name)
		if len(t.PrimaryKey) > 0 {
			e.Stmt("if err := rel.SetPrimaryKey([]string{%s}); err != nil { panic(err) }", quotedList(t.PrimaryKey))
		}
		e.Stmt("return rel")
		closeFn()
		e.Flow("")
	}

	closeRegister := e.BeginScope("func Register(db *storage.Database)")
	for _, t := range tables {
		e.Stmt("db.Register(New%sRelation())", exportedName(t.Name))
	}
	closeRegister()
	return e.Err()
}

func columnNames(t Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func columnType(t Table, name string) value.Type {
	for _, c := range t.Columns {
		if c.Name == name {
			return c.Type
		}
	}
	return value.Type{}
}

func typeList(cols []Column) string {
	return strings.Join(util.TransformSlice(cols, func(c Column) string { return typeLiteral(c.Type) }), ", ")
}

func quotedList(names []string) string {
	return strings.Join(util.TransformSlice(names, func(n string) string { return fmt.Sprintf("%q", n) }), ", ")
}

func typeLiteral(t value.Type) string {
	switch t.Kind {
	case value.KindInteger:
		return "value.Integer()"
	case value.KindNumeric:
		return fmt.Sprintf("value.Numeric(%d, %d)", t.L, t.P)
	case value.KindChar:
		return fmt.Sprintf("value.Char(%d)", t.N)
	case value.KindVarchar:
		return fmt.Sprintf("value.Varchar(%d)", t.N)
	case value.KindTimestamp:
		return "value.Timestamp()"
	case value.KindBool:
		return "value.Bool()"
	default:
		return "value.Type{}"
	}
}

func goFieldType(t value.Type) string {
	switch t.Kind {
	case value.KindInteger:
		return "int32"
	case value.KindNumeric:
		return "int64"
	case value.KindChar, value.KindVarchar:
		return "string"
	case value.KindTimestamp:
		return "int64"
	case value.KindBool:
		return "bool"
	default:
		return "any"
	}
}

// exportedName turns a snake_case column/table name into an exported Go
// identifier: c_w_id -> CWId.
func exportedName(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
