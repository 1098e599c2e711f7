// Package schema implements schemac's DDL-to-Go compilation: parsing
// CREATE TABLE DDL text via pg_query_go into imlabdb's closed value.Type
// system, and emitting the generated relation-construction Go source
// schemac writes to its --out_h/--out_cc outputs.
package schema

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v2"

	"github.com/imlabdb/imlabdb/internal/value"
)

// Column is one parsed column declaration.
type Column struct {
	Name string
	Type value.Type
}

// Table is one parsed CREATE TABLE statement: columns in declaration
// order, and the primary key columns in the order the PRIMARY KEY
// constraint itself declares them (table-level or, lacking one, the
// single inline-constrained column).
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
}

// ParseDDL parses one or more CREATE TABLE statements into Tables, in the
// order they appear in ddl. Any other statement kind is rejected: schemac
// compiles a fixed schema once, it does not diff or migrate one.
func ParseDDL(ddl string) ([]Table, error) {
	result, err := pg_query.Parse(ddl)
	if err != nil {
		return nil, fmt.Errorf("schema: parsing DDL: %w", err)
	}

	var tables []Table
	for _, raw := range result.GetStmts() {
		createStmt := raw.GetStmt().GetCreateStmt()
		if createStmt == nil {
			return nil, fmt.Errorf("schema: only CREATE TABLE statements are supported")
		}
		table, err := parseCreateStmt(createStmt)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("schema: DDL declares no tables")
	}
	return tables, nil
}

func parseCreateStmt(stmt *pg_query.CreateStmt) (Table, error) {
	table := Table{Name: stmt.GetRelation().GetRelname()}

	var inlinePK []string
	for _, elt := range stmt.GetTableElts() {
		switch {
		case elt.GetColumnDef() != nil:
			col, isPK, err := parseColumnDef(elt.GetColumnDef())
			if err != nil {
				return Table{}, fmt.Errorf("schema: table %q: %w", table.Name, err)
			}
			table.Columns = append(table.Columns, col)
			if isPK {
				inlinePK = append(inlinePK, col.Name)
			}
		case elt.GetConstraint() != nil:
			c := elt.GetConstraint()
			if c.GetContype() == pg_query.ConstrType_CONSTR_PRIMARY {
				table.PrimaryKey = primaryKeyColumns(c)
			}
		}
	}
	if len(table.PrimaryKey) == 0 {
		table.PrimaryKey = inlinePK
	}

	if len(table.Columns) == 0 {
		return Table{}, fmt.Errorf("schema: table %q declares no columns", table.Name)
	}
	return table, nil
}

func primaryKeyColumns(c *pg_query.Constraint) []string {
	var cols []string
	for _, k := range c.GetKeys() {
		if s := k.GetString_(); s != nil {
			cols = append(cols, s.GetStr())
		}
	}
	return cols
}

func parseColumnDef(col *pg_query.ColumnDef) (Column, bool, error) {
	typeName := col.GetTypeName()
	if typeName == nil {
		return Column{}, false, fmt.Errorf("column %q has no declared type", col.GetColname())
	}

	t, err := resolveType(typeNames(typeName), typeMods(typeName))
	if err != nil {
		return Column{}, false, fmt.Errorf("column %q: %w", col.GetColname(), err)
	}

	isPK := false
	for _, c := range col.GetConstraints() {
		if c.GetContype() == pg_query.ConstrType_CONSTR_PRIMARY {
			isPK = true
		}
	}
	return Column{Name: col.GetColname(), Type: t}, isPK, nil
}

func typeNames(t *pg_query.TypeName) []string {
	var names []string
	for _, n := range t.GetNames() {
		if s := n.GetString_(); s != nil && s.GetStr() != "pg_catalog" {
			names = append(names, s.GetStr())
		}
	}
	return names
}

func typeMods(t *pg_query.TypeName) []int64 {
	var mods []int64
	for _, n := range t.GetTypmods() {
		if ac := n.GetAConst(); ac != nil {
			if iv := ac.GetIval(); iv != nil {
				mods = append(mods, iv.GetIval())
			}
		}
	}
	return mods
}

func resolveType(names []string, typmods []int64) (value.Type, error) {
	if len(names) == 0 {
		return value.Type{}, fmt.Errorf("type has no name")
	}
	name := names[len(names)-1]
	switch name {
	case "int4", "integer", "int":
		return value.Integer(), nil
	case "numeric", "decimal":
		if len(typmods) != 2 {
			return value.Type{}, fmt.Errorf("numeric requires an explicit (precision, scale)")
		}
		return value.Numeric(int(typmods[0]), int(typmods[1])), nil
	case "bpchar", "char":
		if len(typmods) != 1 {
			return value.Type{}, fmt.Errorf("char requires an explicit length")
		}
		return value.Char(int(typmods[0])), nil
	case "varchar":
		if len(typmods) != 1 {
			return value.Type{}, fmt.Errorf("varchar requires an explicit length")
		}
		return value.Varchar(int(typmods[0])), nil
	case "timestamp", "timestamptz":
		return value.Timestamp(), nil
	case "bool", "boolean":
		return value.Bool(), nil
	default:
		return value.Type{}, fmt.Errorf("unsupported column type %q", name)
	}
}
