// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
)

// DropTable stages the removal of a committed table together with its
// identity sequences and, for a group root, its group. Tables with
// grouping children cannot be dropped.
func (b *Builder) DropTable(name tree.TableName) error {
	t, ok := b.next.Table(name)
	if !ok {
		return sqlerrors.NewUndefinedRelationError(name)
	}
	if children := b.next.Children(name); len(children) > 0 {
		return sqlerrors.NewDependentObjectsError(name, children[0].Name)
	}
	b.removeTable(t)
	if t.IsRoot() {
		b.next.deleteGroup(t.Group)
	}
	return nil
}

// DropGroup stages the removal of every table of the group rooted at
// root, children before their parents. It returns the dropped tables in
// that order.
func (b *Builder) DropGroup(root tree.TableName) ([]tree.TableName, error) {
	t, ok := b.next.Table(root)
	if !ok {
		return nil, sqlerrors.NewUndefinedRelationError(root)
	}
	if !t.IsRoot() {
		return nil, sqlerrors.NewDropGroupNotRootError(root)
	}
	members := b.next.GroupTables(t.Group)
	dropped := make([]tree.TableName, 0, len(members))
	for i := len(members) - 1; i >= 0; i-- {
		b.removeTable(members[i])
		dropped = append(dropped, members[i].Name)
	}
	b.next.deleteGroup(t.Group)
	return dropped, nil
}

func (b *Builder) removeTable(t *Table) {
	b.next.deleteTable(t.Name)
	for _, c := range t.Columns {
		if c.Identity != nil {
			b.next.deleteSequence(c.Identity.Sequence)
		}
	}
}

// RenameTable stages renaming a committed table within its schema. Every
// table of its group is rewritten so that joins, group index columns and
// hierarchical keys follow the new name.
func (b *Builder) RenameTable(from, to tree.TableName) error {
	t, ok := b.next.Table(from)
	if !ok {
		return sqlerrors.NewUndefinedRelationError(from)
	}
	if from.Schema() != to.Schema() {
		return sqlerrors.NewRenameAcrossSchemasError(from, to)
	}
	if from == to {
		return nil
	}
	if b.nameInUse(to) {
		return sqlerrors.NewRelationAlreadyExistsError(to)
	}
	rename := func(n tree.TableName) tree.TableName {
		if n == from {
			return to
		}
		return n
	}
	members := b.next.GroupTables(t.Group)
	found := false
	for _, member := range members {
		found = found || member == t
	}
	if !found {
		return errors.AssertionFailedf("table %s is not reachable from its group %s", from, t.Group)
	}
	for _, member := range members {
		b.next.deleteTable(member.Name)
	}
	for _, member := range members {
		c := member.clone()
		renameRefs(c, rename)
		if err := b.next.putTable(c); err != nil {
			return err
		}
	}
	// A group is named after its root and follows it.
	if g, ok := b.next.Group(t.Group); ok && g.Root == from {
		b.next.deleteGroup(g.Name)
		b.next.putGroup(&Group{Name: rename(g.Name), Root: to})
	}
	return nil
}

func renameRefs(t *Table, rename func(tree.TableName) tree.TableName) {
	t.Name = rename(t.Name)
	t.Group = rename(t.Group)
	if j := t.ParentJoin; j != nil {
		j.Parent, j.Child = rename(j.Parent), rename(j.Child)
		j.Name = JoinName(j.Parent, j.Child)
	}
	for _, ix := range t.Indexes {
		for i := range ix.Columns {
			ix.Columns[i].Table = rename(ix.Columns[i].Table)
		}
	}
	for i := range t.HKey.Segments {
		t.HKey.Segments[i].Table = rename(t.HKey.Segments[i].Table)
	}
}
