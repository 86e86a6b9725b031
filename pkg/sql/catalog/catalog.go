// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package catalog holds the schema objects of the database: tables with
// their columns, indexes and grouping joins, groups and sequences.
//
// A Catalog is an immutable snapshot. Schema changes are staged in a
// Builder, which produces a new Catalog on Commit and leaves the snapshot
// it started from untouched. Snapshots share structure through
// copy-on-write B-trees, so a commit costs a clone of the tree roots plus
// the changed objects.
package catalog

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/google/btree"
)

const btreeDegree = 8

// nameItem is a btree item ordered by object name.
type nameItem struct {
	name  tree.TableName
	value interface{}
}

// Less implements btree.Item.
func (a nameItem) Less(b btree.Item) bool {
	return a.name.Less(b.(nameItem).name)
}

// Catalog is an immutable snapshot of the schema.
type Catalog struct {
	tables    *btree.BTree
	sequences *btree.BTree
	groups    *btree.BTree
	// nextID is the next ID assigned by a commit.
	nextID ID
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		tables:    btree.New(btreeDegree),
		sequences: btree.New(btreeDegree),
		groups:    btree.New(btreeDegree),
		nextID:    1,
	}
}

// clone returns a catalog that shares all objects with c and that can be
// modified without affecting c.
func (c *Catalog) clone() *Catalog {
	return &Catalog{
		tables:    c.tables.Clone(),
		sequences: c.sequences.Clone(),
		groups:    c.groups.Clone(),
		nextID:    c.nextID,
	}
}

func get(t *btree.BTree, name tree.TableName) (interface{}, bool) {
	it := t.Get(nameItem{name: name})
	if it == nil {
		return nil, false
	}
	return it.(nameItem).value, true
}

// Table looks up a table.
func (c *Catalog) Table(name tree.TableName) (*Table, bool) {
	v, ok := get(c.tables, name)
	if !ok {
		return nil, false
	}
	return v.(*Table), true
}

// Sequence looks up a sequence.
func (c *Catalog) Sequence(name tree.TableName) (*Sequence, bool) {
	v, ok := get(c.sequences, name)
	if !ok {
		return nil, false
	}
	return v.(*Sequence), true
}

// Group looks up a group.
func (c *Catalog) Group(name tree.TableName) (*Group, bool) {
	v, ok := get(c.groups, name)
	if !ok {
		return nil, false
	}
	return v.(*Group), true
}

// Tables returns every table ordered by name.
func (c *Catalog) Tables() []*Table {
	out := make([]*Table, 0, c.tables.Len())
	c.tables.Ascend(func(it btree.Item) bool {
		out = append(out, it.(nameItem).value.(*Table))
		return true
	})
	return out
}

// Sequences returns every sequence ordered by name.
func (c *Catalog) Sequences() []*Sequence {
	out := make([]*Sequence, 0, c.sequences.Len())
	c.sequences.Ascend(func(it btree.Item) bool {
		out = append(out, it.(nameItem).value.(*Sequence))
		return true
	})
	return out
}

// Groups returns every group ordered by name.
func (c *Catalog) Groups() []*Group {
	out := make([]*Group, 0, c.groups.Len())
	c.groups.Ascend(func(it btree.Item) bool {
		out = append(out, it.(nameItem).value.(*Group))
		return true
	})
	return out
}

// Children returns the tables joined directly under parent, ordered by
// name.
func (c *Catalog) Children(parent tree.TableName) []*Table {
	var out []*Table
	for _, t := range c.Tables() {
		if t.ParentJoin != nil && t.ParentJoin.Parent == parent {
			out = append(out, t)
		}
	}
	return out
}

// GroupTables returns the tables of a group, parents before children.
func (c *Catalog) GroupTables(group tree.TableName) []*Table {
	g, ok := c.Group(group)
	if !ok {
		return nil
	}
	root, ok := c.Table(g.Root)
	if !ok {
		return nil
	}
	out := []*Table{root}
	for i := 0; i < len(out); i++ {
		out = append(out, c.Children(out[i].Name)...)
	}
	return out
}

// nameInUse returns whether a table or sequence has the name.
func (c *Catalog) nameInUse(name tree.TableName) bool {
	if _, ok := c.Table(name); ok {
		return true
	}
	_, ok := c.Sequence(name)
	return ok
}

func (c *Catalog) putTable(t *Table) error {
	if t.ID == InvalidID {
		return errors.AssertionFailedf("table %s has no ID", t.Name)
	}
	c.tables.ReplaceOrInsert(nameItem{name: t.Name, value: t})
	return nil
}

func (c *Catalog) putSequence(s *Sequence) error {
	if s.ID == InvalidID {
		return errors.AssertionFailedf("sequence %s has no ID", s.Name)
	}
	c.sequences.ReplaceOrInsert(nameItem{name: s.Name, value: s})
	return nil
}

func (c *Catalog) putGroup(g *Group) {
	c.groups.ReplaceOrInsert(nameItem{name: g.Name, value: g})
}

func (c *Catalog) deleteTable(name tree.TableName) {
	c.tables.Delete(nameItem{name: name})
}

func (c *Catalog) deleteSequence(name tree.TableName) {
	c.sequences.Delete(nameItem{name: name})
}

func (c *Catalog) deleteGroup(name tree.TableName) {
	c.groups.Delete(nameItem{name: name})
}

func (c *Catalog) allocateID() ID {
	id := c.nextID
	c.nextID++
	return id
}
