// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import (
	"context"

	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/util/log"
	"github.com/cockroachdb/groupsql/pkg/util/syncutil"
)

// Manager owns the current catalog. Readers take a snapshot with Catalog
// and see it unchanged for as long as they hold it; schema changes are
// published atomically with Commit.
type Manager struct {
	mu struct {
		syncutil.RWMutex
		current *Catalog
	}
}

// NewManager returns a manager holding an empty catalog.
func NewManager() *Manager {
	m := &Manager{}
	m.mu.current = NewCatalog()
	return m
}

// Catalog returns the current snapshot.
func (m *Manager) Catalog() *Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mu.current
}

// Commit publishes next if the current snapshot is still base.
func (m *Manager) Commit(ctx context.Context, base, next *Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mu.current != base {
		return sqlerrors.NewConcurrentSchemaChangeError()
	}
	m.mu.current = next
	log.VEventf(ctx, 1, "catalog committed: %d tables, %d sequences",
		next.tables.Len(), next.sequences.Len())
	return nil
}

// Sequence looks up a sequence in the current snapshot.
func (m *Manager) Sequence(name tree.TableName) (*Sequence, bool) {
	return m.Catalog().Sequence(name)
}
