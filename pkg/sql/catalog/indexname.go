// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import "strconv"

// IndexNameGenerator synthesizes index names that are unique within one
// table.
type IndexNameGenerator struct {
	taken map[string]struct{}
}

// NewIndexNameGenerator returns a generator that avoids the names of t's
// indexes.
func NewIndexNameGenerator(t *Table) *IndexNameGenerator {
	g := &IndexNameGenerator{taken: make(map[string]struct{})}
	for _, ix := range t.Indexes {
		g.Reserve(ix.Name)
	}
	return g
}

// Reserve marks name as used.
func (g *IndexNameGenerator) Reserve(name string) {
	g.taken[name] = struct{}{}
}

// Generate returns an unused name derived from the first key column and
// the index kind, and reserves it. Primary indexes are named PRIMARY;
// full text indexes get a _fulltext suffix. Taken names are suffixed with
// _2, _3 and so on.
func (g *IndexNameGenerator) Generate(firstColumn string, kind IndexKind) string {
	switch kind {
	case PrimaryIndex:
		g.Reserve(PrimaryIndexName)
		return PrimaryIndexName
	case FullTextIndex:
		firstColumn += "_fulltext"
	}
	if firstColumn == "" {
		firstColumn = "index"
	}
	name := firstColumn
	for i := 2; ; i++ {
		if _, ok := g.taken[name]; !ok {
			break
		}
		name = firstColumn + "_" + strconv.Itoa(i)
	}
	g.Reserve(name)
	return name
}
