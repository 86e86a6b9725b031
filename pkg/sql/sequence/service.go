// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package sequence hands out sequence values at row-processing time.
package sequence

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/util/log"
	"github.com/cockroachdb/groupsql/pkg/util/syncutil"
)

// Source resolves sequence definitions. Both *catalog.Catalog and
// *catalog.Manager implement it.
type Source interface {
	Sequence(name tree.TableName) (*catalog.Sequence, bool)
}

var _ Source = (*catalog.Catalog)(nil)
var _ Source = (*catalog.Manager)(nil)

// Service keeps one counter per sequence. Values handed out for a
// sequence are distinct across all callers; callers of one goroutine see
// them in increasing order of start + n*increment.
type Service struct {
	source Source

	mu struct {
		syncutil.Mutex
		// counters is keyed by sequence ID, so a dropped and recreated
		// sequence starts over.
		counters map[catalog.ID]*counter
	}
}

type counter struct {
	seq   *catalog.Sequence
	calls atomic.Int64
}

// NewService returns a service reading sequence definitions from source.
func NewService(source Source) *Service {
	s := &Service{source: source}
	s.mu.counters = make(map[catalog.ID]*counter)
	return s
}

func (s *Service) counter(seq *catalog.Sequence) *counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.mu.counters[seq.ID]
	if !ok {
		c = &counter{seq: seq}
		s.mu.counters[seq.ID] = c
	}
	return c
}

// NextVal returns the next value of the sequence schema.name.
func (s *Service) NextVal(ctx context.Context, schema, name string) (int64, error) {
	tn := tree.MakeTableName(schema, name)
	seq, ok := s.source.Sequence(tn)
	if !ok {
		return 0, sqlerrors.NewUndefinedSequenceError(tn)
	}
	c := s.counter(seq)
	n := c.calls.Add(1) - 1
	v, ok := step(seq.Start, seq.Increment, n)
	if !ok {
		return 0, pgerror.Newf(pgcode.NumericValueOutOfRange,
			"nextval: reached limit of sequence %s", tn)
	}
	log.VEventf(ctx, 3, "nextval(%s) = %d", tn, v)
	return v, nil
}

// step computes start + n*increment, reporting false on overflow.
func step(start, increment, n int64) (int64, bool) {
	if n == 0 {
		return start, true
	}
	d := n * increment
	if d/n != increment {
		return 0, false
	}
	v := start + d
	if (d > 0 && v < start) || (d < 0 && v > start) {
		return 0, false
	}
	return v, true
}
