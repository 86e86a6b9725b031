// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package schemafile decodes YAML table descriptions into CREATE TABLE
// statements. Identifiers are normalized the way the SQL lexer does:
// unquoted names fold to lower case, double-quoted names keep theirs.
//
// A file holds a list of tables:
//
//	tables:
//	  - name: shop.orders
//	    columns:
//	      - {name: id, type: SERIAL}
//	      - {name: customer_id, type: INT}
//	    foreign_keys:
//	      - {columns: [customer_id], references: shop.customers, grouping: true}
package schemafile

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/lex"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"gopkg.in/yaml.v3"
)

// File is the top-level document.
type File struct {
	Tables []Table `yaml:"tables"`
}

// Table describes one CREATE TABLE statement.
type Table struct {
	Name        string       `yaml:"name"`
	IfNotExists bool         `yaml:"if_not_exists"`
	As          string       `yaml:"as"`
	Columns     []Column     `yaml:"columns"`
	PrimaryKey  *Constraint  `yaml:"primary_key"`
	Unique      []Constraint `yaml:"unique"`
	Indexes     []Index      `yaml:"indexes"`
	ForeignKeys []ForeignKey `yaml:"foreign_keys"`
	Checks      []string     `yaml:"checks"`
}

// Column describes a column definition.
type Column struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Nullable  *bool  `yaml:"nullable"`
	Charset   string `yaml:"charset"`
	Collation string `yaml:"collation"`
	// PrimaryKey and Unique are inline constraints.
	PrimaryKey bool `yaml:"primary_key"`
	Unique     bool `yaml:"unique"`
	// At most one of the default forms may be given.
	Default         *string   `yaml:"default"`
	DefaultNull     bool      `yaml:"default_null"`
	DefaultFunction string    `yaml:"default_function"`
	DefaultExpr     string    `yaml:"default_expr"`
	Identity        *Identity `yaml:"identity"`
}

// Identity is a GENERATED ... AS IDENTITY clause.
type Identity struct {
	// Mode is "always" or "by default".
	Mode      string `yaml:"mode"`
	Start     *int64 `yaml:"start"`
	Increment *int64 `yaml:"increment"`
}

// Constraint is a PRIMARY KEY or UNIQUE constraint.
type Constraint struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// Index is an index definition. Columns of other tables of the group are
// written table.column or schema.table.column.
type Index struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	// Function is "full_text" or "z_order_lat_lon".
	Function string `yaml:"function"`
	First    int    `yaml:"first"`
	Count    int    `yaml:"count"`
}

// ForeignKey is a foreign key constraint.
type ForeignKey struct {
	Name       string   `yaml:"name"`
	Columns    []string `yaml:"columns"`
	References string   `yaml:"references"`
	RefColumns []string `yaml:"ref_columns"`
	Grouping   bool     `yaml:"grouping"`
}

// Parse decodes a file into CREATE TABLE statements, in file order.
func Parse(data []byte) ([]*tree.CreateTable, error) {
	var f File
	if err := decode(data, &f); err != nil {
		return nil, pgerror.Wrap(err, pgcode.Syntax, "decoding schema file")
	}
	out := make([]*tree.CreateTable, len(f.Tables))
	for i := range f.Tables {
		ct, err := f.Tables[i].CreateTable()
		if err != nil {
			return nil, errors.Wrapf(err, "table %d", errors.Safe(i+1))
		}
		out[i] = ct
	}
	return out, nil
}

// ParseTable decodes a single table description.
func ParseTable(data []byte) (*tree.CreateTable, error) {
	var t Table
	if err := decode(data, &t); err != nil {
		return nil, pgerror.Wrap(err, pgcode.Syntax, "decoding table")
	}
	return t.CreateTable()
}

// decode rejects keys that name no field, so a misspelled option is an
// error instead of being ignored. An empty document decodes to v's zero
// value.
func decode(data []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// CreateTable converts the description into a statement.
func (t *Table) CreateTable() (*tree.CreateTable, error) {
	name, err := ParseTableName(t.Name)
	if err != nil {
		return nil, err
	}
	ct := &tree.CreateTable{Table: name, AsSource: t.As}
	if t.IfNotExists {
		ct.ExistenceCheck = tree.IfNotExists
	}
	for i := range t.Columns {
		def, err := t.Columns[i].def()
		if err != nil {
			return nil, err
		}
		ct.Defs = append(ct.Defs, def)
	}
	if pk := t.PrimaryKey; pk != nil {
		ct.Defs = append(ct.Defs, &tree.PrimaryKeyConstraintDef{
			Name: normalizeOpt(pk.Name), Columns: normalizeAll(pk.Columns),
		})
	}
	for _, u := range t.Unique {
		ct.Defs = append(ct.Defs, &tree.UniqueConstraintDef{
			Name: normalizeOpt(u.Name), Columns: normalizeAll(u.Columns),
		})
	}
	for i := range t.Indexes {
		def, err := t.Indexes[i].def()
		if err != nil {
			return nil, err
		}
		ct.Defs = append(ct.Defs, def)
	}
	for _, fk := range t.ForeignKeys {
		ref, err := ParseTableName(fk.References)
		if err != nil {
			return nil, err
		}
		ct.Defs = append(ct.Defs, &tree.ForeignKeyConstraintDef{
			Name:     normalizeOpt(fk.Name),
			Table:    ref,
			FromCols: normalizeAll(fk.Columns),
			ToCols:   normalizeAll(fk.RefColumns),
			Grouping: fk.Grouping,
		})
	}
	for _, c := range t.Checks {
		ct.Defs = append(ct.Defs, &tree.CheckConstraintDef{Expr: c})
	}
	return ct, nil
}

func (c *Column) def() (*tree.ColumnTableDef, error) {
	if c.Name == "" {
		return nil, pgerror.New(pgcode.Syntax, "column without a name")
	}
	dt, err := tree.ParseDataType(c.Type)
	if err != nil {
		return nil, err
	}
	dt.Charset, dt.Collation = c.Charset, c.Collation
	d := &tree.ColumnTableDef{
		Name:       lex.NormalizeName(c.Name),
		Type:       dt,
		PrimaryKey: c.PrimaryKey,
		Unique:     c.Unique,
	}
	if c.Nullable != nil {
		d.Nullable = tree.NotNull
		if *c.Nullable {
			d.Nullable = tree.Null
		}
	}
	defaults := 0
	if c.Default != nil {
		defaults++
		d.DefaultExpr = &tree.Constant{Value: *c.Default}
	}
	if c.DefaultNull {
		defaults++
		d.DefaultExpr = &tree.Constant{IsNull: true}
	}
	if c.DefaultFunction != "" {
		defaults++
		d.DefaultExpr = defaultFunction(c.DefaultFunction)
	}
	if c.DefaultExpr != "" {
		defaults++
		d.DefaultExpr = &tree.UnresolvedExpr{SQL: c.DefaultExpr}
	}
	if defaults > 1 {
		return nil, pgerror.Newf(pgcode.Syntax,
			"multiple default values specified for column %q", d.Name)
	}
	if id := c.Identity; id != nil {
		gi := &tree.GeneratedIdentity{Start: 1, Increment: 1}
		switch strings.ToLower(strings.Join(strings.Fields(id.Mode), " ")) {
		case "always":
			gi.Mode = tree.GeneratedAlways
		case "by default", "":
			gi.Mode = tree.GeneratedByDefault
		default:
			return nil, pgerror.Newf(pgcode.Syntax, "unknown identity mode %q", id.Mode)
		}
		if id.Start != nil {
			gi.Start = *id.Start
		}
		if id.Increment != nil {
			gi.Increment = *id.Increment
		}
		d.Identity = gi
	}
	return d, nil
}

func defaultFunction(name string) tree.Expr {
	upper := strings.ToUpper(name)
	if field := strings.TrimPrefix(upper, "CURRENT_"); field != upper {
		switch field {
		case "DATE", "TIME", "TIMESTAMP":
			return &tree.CurrentDatetime{Field: strings.ToLower(field)}
		}
	}
	return &tree.SpecialFunction{Name: upper}
}

func (ix *Index) def() (*tree.IndexTableDef, error) {
	def := &tree.IndexTableDef{Name: normalizeOpt(ix.Name)}
	for _, c := range ix.Columns {
		parts := splitName(c)
		ic := tree.IndexColumn{Column: lex.NormalizeName(parts[len(parts)-1])}
		switch len(parts) {
		case 1:
		case 2:
			ic.Table = tree.MakeUnqualifiedTableName(lex.NormalizeName(parts[0]))
		case 3:
			ic.Table = tree.MakeTableName(lex.NormalizeName(parts[0]), lex.NormalizeName(parts[1]))
		default:
			return nil, pgerror.Newf(pgcode.Syntax, "invalid index column %q", c)
		}
		def.Columns.Columns = append(def.Columns.Columns, ic)
	}
	switch strings.ToLower(ix.Function) {
	case "":
	case "full_text":
		def.Columns.Function = tree.IndexFunctionFullText
	case "z_order_lat_lon":
		def.Columns.Function = tree.IndexFunctionZOrderLatLon
	default:
		return nil, pgerror.Newf(pgcode.Syntax, "unknown index function %q", ix.Function)
	}
	if def.Columns.Function != tree.IndexFunctionNone {
		def.Columns.FirstFunctionArg, def.Columns.FunctionArgCount = ix.First, ix.Count
		if ix.Count == 0 {
			def.Columns.FunctionArgCount = len(def.Columns.Columns) - ix.First
		}
	}
	return def, nil
}

// ParseTableName parses "table" or "schema.table".
func ParseTableName(s string) (tree.TableName, error) {
	parts := splitName(s)
	switch {
	case len(parts) == 1 && parts[0] != "":
		return tree.MakeUnqualifiedTableName(lex.NormalizeName(parts[0])), nil
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return tree.MakeTableName(lex.NormalizeName(parts[0]), lex.NormalizeName(parts[1])), nil
	}
	return tree.TableName{}, pgerror.Newf(pgcode.Syntax, "invalid table name %q", s)
}

// splitName splits a dotted name. Dots inside double quotes do not
// separate parts.
func splitName(s string) []string {
	var parts []string
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case '.':
			if !quoted {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

func normalizeOpt(name string) string {
	if name == "" {
		return ""
	}
	return lex.NormalizeName(name)
}

func normalizeAll(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = lex.NormalizeName(n)
	}
	return out
}
