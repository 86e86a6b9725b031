// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package ddl compiles schema statements into catalog changes. Every
// statement is staged against a catalog.Builder over one snapshot and
// published with a single commit; a failing statement leaves the catalog
// as it was.
package ddl

import (
	"context"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgnotice"
	"github.com/cockroachdb/groupsql/pkg/util/log"
)

// NoticeSender receives the notices a statement produces instead of
// failing, e.g. for IF NOT EXISTS.
type NoticeSender interface {
	BufferClientNotice(ctx context.Context, notice pgnotice.Notice)
}

// Functions is the catalog owner the compiler reads from and commits to.
type Functions interface {
	// Catalog returns the current snapshot.
	Catalog() *catalog.Catalog
	// Commit replaces base by next, failing if base is no longer current.
	Commit(ctx context.Context, base, next *catalog.Catalog) error
}

var _ Functions = (*catalog.Manager)(nil)

// Options configures a statement.
type Options struct {
	// DefaultSchema qualifies unqualified names.
	DefaultSchema string
	// Notices may be nil, in which case notices are only logged.
	Notices NoticeSender
}

func (o Options) notify(ctx context.Context, n pgnotice.Notice) {
	log.Infof(ctx, "%v", n)
	if o.Notices != nil {
		o.Notices.BufferClientNotice(ctx, n)
	}
}

// apply stages changes with fn and commits them.
func apply(ctx context.Context, fns Functions, fn func(b *catalog.Builder) error) error {
	base := fns.Catalog()
	b := catalog.NewBuilder(base)
	if err := fn(b); err != nil {
		return err
	}
	next, err := b.Commit()
	if err != nil {
		return err
	}
	return fns.Commit(ctx, base, next)
}
