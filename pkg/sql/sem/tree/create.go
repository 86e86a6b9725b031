// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

// ExistenceCheck is the IF [NOT] EXISTS clause of a DDL statement.
type ExistenceCheck int

const (
	// NoExistenceCheck fails the statement on a duplicate or missing object.
	NoExistenceCheck ExistenceCheck = iota
	// IfNotExists turns a duplicate object into a notice.
	IfNotExists
	// IfExists turns a missing object into a notice.
	IfExists
)

func (e ExistenceCheck) String() string {
	switch e {
	case IfNotExists:
		return "IF NOT EXISTS"
	case IfExists:
		return "IF EXISTS"
	default:
		return ""
	}
}

// CreateTable represents a CREATE TABLE statement.
type CreateTable struct {
	Table          TableName
	ExistenceCheck ExistenceCheck
	Defs           TableDefs
	// AsSource is the query of a CREATE TABLE ... AS statement.
	AsSource string
}

// As returns true if this table was declared with an AS clause.
func (n *CreateTable) As() bool {
	return n.AsSource != ""
}

// TableDefs represents a list of table definitions.
type TableDefs []TableDef

// TableDef is a single element of a CREATE TABLE statement. The set of
// implementations is closed: every definition dispatches to exactly one
// TableDefVisitor method.
type TableDef interface {
	tableDef()
	// Accept calls the visitor method matching the definition's kind.
	Accept(v TableDefVisitor) error
}

// TableDefVisitor handles every kind of table element. Adding a kind
// requires a method here, so every compiler over table elements must be
// extended along with it.
type TableDefVisitor interface {
	VisitColumn(*ColumnTableDef) error
	VisitPrimaryKey(*PrimaryKeyConstraintDef) error
	VisitUnique(*UniqueConstraintDef) error
	VisitIndex(*IndexTableDef) error
	VisitForeignKey(*ForeignKeyConstraintDef) error
	VisitCheck(*CheckConstraintDef) error
}

func (*ColumnTableDef) tableDef()          {}
func (*PrimaryKeyConstraintDef) tableDef() {}
func (*UniqueConstraintDef) tableDef()     {}
func (*IndexTableDef) tableDef()           {}
func (*ForeignKeyConstraintDef) tableDef() {}
func (*CheckConstraintDef) tableDef()      {}

// Accept implements the TableDef interface.
func (n *ColumnTableDef) Accept(v TableDefVisitor) error { return v.VisitColumn(n) }

// Accept implements the TableDef interface.
func (n *PrimaryKeyConstraintDef) Accept(v TableDefVisitor) error { return v.VisitPrimaryKey(n) }

// Accept implements the TableDef interface.
func (n *UniqueConstraintDef) Accept(v TableDefVisitor) error { return v.VisitUnique(n) }

// Accept implements the TableDef interface.
func (n *IndexTableDef) Accept(v TableDefVisitor) error { return v.VisitIndex(n) }

// Accept implements the TableDef interface.
func (n *ForeignKeyConstraintDef) Accept(v TableDefVisitor) error { return v.VisitForeignKey(n) }

// Accept implements the TableDef interface.
func (n *CheckConstraintDef) Accept(v TableDefVisitor) error { return v.VisitCheck(n) }

// Nullability represents either NULL, NOT NULL or an unspecified value.
type Nullability int

const (
	// SilentNull means the column was declared without NULL or NOT NULL.
	SilentNull Nullability = iota
	// Null means NULL was specified.
	Null
	// NotNull means NOT NULL was specified.
	NotNull
)

// IdentityMode is the GENERATED clause of an identity column.
type IdentityMode int

const (
	// GeneratedAlways ignores values supplied by the user.
	GeneratedAlways IdentityMode = iota
	// GeneratedByDefault only generates a value when the user supplied NULL.
	GeneratedByDefault
)

func (m IdentityMode) String() string {
	if m == GeneratedByDefault {
		return "BY DEFAULT"
	}
	return "ALWAYS"
}

// GeneratedIdentity is a GENERATED ... AS IDENTITY clause.
type GeneratedIdentity struct {
	Mode      IdentityMode
	Start     int64
	Increment int64
}

// ColumnTableDef represents a column definition within a CREATE TABLE
// statement.
type ColumnTableDef struct {
	Name     string
	Type     *DataType
	Nullable Nullability
	// PrimaryKey and Unique are inline column constraints.
	PrimaryKey  bool
	Unique      bool
	DefaultExpr Expr
	Identity    *GeneratedIdentity
}

// HasDefaultExpr returns if the ColumnTableDef has a default expression.
func (n *ColumnTableDef) HasDefaultExpr() bool {
	return n.DefaultExpr != nil
}

// IsSerial returns whether the column was declared with the SERIAL
// pseudo-type.
func (n *ColumnTableDef) IsSerial() bool {
	return n.Type != nil && n.Type.ID == SerialTypeID
}

// IndexColumn is one key column of an index. Table is empty for columns of
// the indexed table itself; group indexes name columns of other tables in
// the same group.
type IndexColumn struct {
	Table  TableName
	Column string
}

// IndexFunction is the function applied over the columns of an index.
type IndexFunction int

const (
	// IndexFunctionNone is a plain index.
	IndexFunctionNone IndexFunction = iota
	// IndexFunctionFullText builds a full text index.
	IndexFunctionFullText
	// IndexFunctionZOrderLatLon composes a latitude/longitude pair into a
	// single spatial key.
	IndexFunctionZOrderLatLon
)

func (f IndexFunction) String() string {
	switch f {
	case IndexFunctionFullText:
		return "FULL_TEXT"
	case IndexFunctionZOrderLatLon:
		return "Z_ORDER_LAT_LON"
	default:
		return "NONE"
	}
}

// IndexColumnList is the column list of an index definition together with
// the function applied to a range of those columns.
type IndexColumnList struct {
	Columns  []IndexColumn
	Function IndexFunction
	// FirstFunctionArg is the position of the first column the function is
	// applied to.
	FirstFunctionArg int
	// FunctionArgCount is the number of columns the function is applied to.
	FunctionArgCount int
}

// PrimaryKeyConstraintDef is a PRIMARY KEY table constraint.
type PrimaryKeyConstraintDef struct {
	Name    string
	Columns []string
}

// UniqueConstraintDef is a UNIQUE table constraint.
type UniqueConstraintDef struct {
	Name    string
	Columns []string
}

// IndexTableDef represents an index definition within a CREATE TABLE
// statement.
type IndexTableDef struct {
	Name    string
	Columns IndexColumnList
}

// ForeignKeyConstraintDef represents a FOREIGN KEY constraint. Only
// grouping foreign keys are supported.
type ForeignKeyConstraintDef struct {
	Name     string
	Table    TableName
	FromCols []string
	ToCols   []string
	Grouping bool
}

// CheckConstraintDef represents a CHECK constraint.
type CheckConstraintDef struct {
	Name string
	Expr string
}
