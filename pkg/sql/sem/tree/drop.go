// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

// DropTable represents a DROP TABLE statement.
type DropTable struct {
	Name           TableName
	ExistenceCheck ExistenceCheck
}

// DropGroup represents a DROP GROUP statement, naming the root table of
// the group to drop.
type DropGroup struct {
	Name           TableName
	ExistenceCheck ExistenceCheck
}

// RenameTable represents an ALTER TABLE ... RENAME TO statement.
type RenameTable struct {
	Name    TableName
	NewName TableName
}
