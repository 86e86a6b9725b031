// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package sqlerrors exports errors which can occur in the sql package.
package sqlerrors

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
)

// NewRelationAlreadyExistsError creates an error for a preexisting relation.
func NewRelationAlreadyExistsError(name tree.TableName) error {
	return pgerror.Newf(pgcode.DuplicateRelation, "relation %s already exists", name)
}

// NewUndefinedRelationError creates an error that represents a missing
// database table or view.
func NewUndefinedRelationError(name tree.TableName) error {
	return pgerror.Newf(pgcode.UndefinedTable, "relation %s does not exist", name)
}

// IsUndefinedRelationError checks whether this is an undefined relation
// error.
func IsUndefinedRelationError(err error) bool {
	return errHasCode(err, pgcode.UndefinedTable)
}

// NewUndefinedColumnError creates an error that represents a missing
// column of a table.
func NewUndefinedColumnError(table tree.TableName, column string) error {
	return pgerror.Newf(pgcode.UndefinedColumn,
		"column %q of relation %s does not exist", column, table)
}

// IsUndefinedColumnError checks whether this is an undefined column error.
func IsUndefinedColumnError(err error) bool {
	return errHasCode(err, pgcode.UndefinedColumn)
}

// NewUndefinedSequenceError creates an error for a missing sequence.
func NewUndefinedSequenceError(name tree.TableName) error {
	return pgerror.Newf(pgcode.UndefinedTable, "sequence %s does not exist", name)
}

// NewJoinToUnknownTableError is returned when a grouping foreign key
// references a table that does not exist.
func NewJoinToUnknownTableError(child, parent tree.TableName) error {
	return pgerror.Newf(pgcode.UndefinedTable,
		"table %s has a grouping foreign key to undefined table %s", child, parent)
}

// NewJoinToSelfError is returned for a grouping foreign key from a table
// to itself.
func NewJoinToSelfError(table tree.TableName) error {
	return errors.WithHint(
		pgerror.Newf(pgcode.InvalidForeignKey,
			"table %s cannot have a grouping foreign key to itself", table),
		"a group is a tree of distinct tables")
}

// NewJoinColumnMismatchError is returned when the column count of a
// grouping foreign key differs from the parent's primary key.
func NewJoinColumnMismatchError(
	fkColumns int, child, parent tree.TableName, pkColumns int,
) error {
	return errors.WithDetailf(
		pgerror.Newf(pgcode.InvalidForeignKey,
			"grouping foreign key from %s to %s has %d columns, but the parent primary key has %d",
			child, parent, fkColumns, pkColumns),
		"the parent primary key includes any columns it inherits from its own parent")
}

// NewJoinToWrongColumnsError is returned when a grouping foreign key
// references a parent column that does not exist.
func NewJoinToWrongColumnsError(
	child tree.TableName, childColumn string, parent tree.TableName, parentColumn string,
) error {
	return pgerror.Newf(pgcode.InvalidForeignKey,
		"grouping foreign key column %s.%q references undefined column %s.%q",
		child, childColumn, parent, parentColumn)
}

// NewUnsupportedDataTypeError is returned for a column type that has no
// catalog representation.
func NewUnsupportedDataTypeError(table tree.TableName, column, typeName string) error {
	return pgerror.Newf(pgcode.FeatureNotSupported,
		"type %s of column %q of relation %s is not supported", typeName, column, table)
}

// NewNoCastError is returned when no cast exists between two type classes.
func NewNoCastError(from, to string) error {
	return pgerror.Newf(pgcode.CannotCoerce, "no cast from %s to %s", from, to)
}

// NewUndefinedFunctionError is returned when no overload of a function
// accepts the given argument types.
func NewUndefinedFunctionError(name string, argTypes []string) error {
	return errors.WithHint(
		pgerror.Newf(pgcode.UndefinedFunction,
			"unknown signature: %s(%s)", errors.Safe(name), strings.Join(argTypes, ", ")),
		"no function matches the given name and argument types")
}

// NewUnsupportedCheckConstraintError is returned for CHECK constraints.
func NewUnsupportedCheckConstraintError() error {
	return pgerror.New(pgcode.FeatureNotSupported, "CHECK constraints are not supported")
}

// NewUnsupportedFKIndexError is returned for non-grouping foreign keys.
func NewUnsupportedFKIndexError() error {
	return errors.WithHint(
		pgerror.New(pgcode.FeatureNotSupported, "non-grouping foreign keys are not supported"),
		"declare the foreign key with GROUPING to place the table in the parent's group")
}

// NewBadColumnDefaultError is returned for a DEFAULT expression that is
// neither a constant nor a niladic function.
func NewBadColumnDefaultError(table tree.TableName, column, text string) error {
	return pgerror.Newf(pgcode.InvalidColumnDefinition,
		"invalid default %s for column %q of relation %s", text, column, table)
}

// NewBadSpatialIndexError is returned when the columns of a spatial index
// cannot be composed into a spatial key.
func NewBadSpatialIndexError(table tree.TableName, index string) error {
	return errors.WithHint(
		pgerror.Newf(pgcode.InvalidObjectDefinition,
			"index %q on %s is not a valid spatial index", index, table),
		"a spatial function must cover exactly two adjacent numeric columns")
}

// NewBadGroupIndexError is returned when a group index references columns
// outside of the indexed table's ancestry.
func NewBadGroupIndexError(table tree.TableName, index string, other tree.TableName) error {
	return pgerror.Newf(pgcode.InvalidObjectDefinition,
		"group index %q on %s references %s, which is not an ancestor in its group",
		index, table, other)
}

// NewUnsupportedCreateSelectError is returned for CREATE TABLE ... AS.
func NewUnsupportedCreateSelectError() error {
	return pgerror.New(pgcode.FeatureNotSupported, "CREATE TABLE ... AS is not supported")
}

// NewDuplicateIndexError is returned when an index name is used twice on
// a table.
func NewDuplicateIndexError(table tree.TableName, index string) error {
	return pgerror.Newf(pgcode.DuplicateRelation,
		"index %q already exists on relation %s", index, table)
}

// NewMultiplePrimaryKeysError is returned when a table declares more than
// one primary key.
func NewMultiplePrimaryKeysError(table tree.TableName) error {
	return pgerror.Newf(pgcode.InvalidTableDefinition,
		"multiple primary keys for table %s are not allowed", table)
}

// NewDropGroupNotRootError is returned by DROP GROUP on a table that is
// not the root of its group.
func NewDropGroupNotRootError(table tree.TableName) error {
	return errors.WithHint(
		pgerror.Newf(pgcode.WrongObjectType, "table %s is not the root of its group", table),
		"name the root table of the group to drop it")
}

// NewDependentObjectsError is returned when dropping a table that still
// has grouping children.
func NewDependentObjectsError(table, child tree.TableName) error {
	return pgerror.Newf(pgcode.DependentObjectsStillExist,
		"cannot drop table %s because table %s is grouped under it", table, child)
}

// NewDefaultNotCastableError is returned when a textual default cannot be
// converted to the type of its column.
func NewDefaultNotCastableError(table tree.TableName, column, typeName string) error {
	return errors.WithHint(
		pgerror.Newf(pgcode.DatatypeMismatch,
			"default value of column %q of relation %s cannot be converted to %s",
			column, table, typeName),
		"lenient defaults keep the default text as is")
}

// NewSequenceAlreadyExistsError is returned when a sequence name is taken.
func NewSequenceAlreadyExistsError(name tree.TableName) error {
	return pgerror.Newf(pgcode.DuplicateRelation, "sequence %s already exists", name)
}

// NewColumnAlreadyExistsError is returned when a column name is declared
// twice in one table.
func NewColumnAlreadyExistsError(table tree.TableName, column string) error {
	return pgerror.Newf(pgcode.DuplicateColumn,
		"column %q specified more than once in relation %s", column, table)
}

// NewConcurrentSchemaChangeError is returned when the catalog changed
// between the start of a DDL statement and its commit.
func NewConcurrentSchemaChangeError() error {
	return errors.WithHint(
		pgerror.New(pgcode.SerializationFailure,
			"the catalog was modified by a concurrent schema change"),
		"retry the statement")
}

// NewMultipleGroupingParentsError is returned when a table declares more
// than one grouping foreign key.
func NewMultipleGroupingParentsError(table tree.TableName) error {
	return pgerror.Newf(pgcode.InvalidTableDefinition,
		"table %s cannot have more than one grouping foreign key", table)
}

// NewRenameAcrossSchemasError is returned when a rename would move a table
// to another schema.
func NewRenameAcrossSchemasError(from, to tree.TableName) error {
	return pgerror.Newf(pgcode.FeatureNotSupported,
		"cannot rename %s to %s: tables cannot change schema", from, to)
}

// NewZeroIncrementError is returned for an identity whose increment is
// zero.
func NewZeroIncrementError(table tree.TableName, column string) error {
	return pgerror.Newf(pgcode.InvalidParameterValue,
		"identity increment of column %q of relation %s must not be zero", column, table)
}

func errHasCode(err error, code pgcode.Code) bool {
	return pgerror.HasCode(err, code)
}
