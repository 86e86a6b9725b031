// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package builtins holds the casts and functions known to the compilers.
package builtins

import (
	"sort"
	"strings"

	"github.com/cockroachdb/groupsql/pkg/sql/sem/overload"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

type castKey struct {
	source, target *types.Class
}

// Registry is an immutable set of casts and functions. It implements
// overload.Resolver.
type Registry struct {
	casts map[castKey]*overload.Cast
	funcs map[string][]*overload.Overload
}

var _ overload.Resolver = (*Registry)(nil)

// Option customizes a Registry.
type Option func(*Registry)

// WithoutCast removes the cast from source to target.
func WithoutCast(source, target *types.Class) Option {
	return func(r *Registry) {
		delete(r.casts, castKey{source, target})
	}
}

// WithoutFunction removes every overload of the named function.
func WithoutFunction(name string) Option {
	return func(r *Registry) {
		delete(r.funcs, strings.ToUpper(name))
	}
}

// WithFunction adds an overload. The overload's Name selects the function
// it is added to.
func WithFunction(o overload.Overload) Option {
	return func(r *Registry) {
		name := strings.ToUpper(o.Name)
		o.Name = name
		r.funcs[name] = append(r.funcs[name][:len(r.funcs[name]):len(r.funcs[name])], &o)
	}
}

// NewRegistry builds a registry holding every cast between castable
// classes and all built-in functions, modified by opts.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		casts: make(map[castKey]*overload.Cast, len(types.Classes)*len(types.Classes)),
		funcs: make(map[string][]*overload.Overload, len(defaultBuiltins)),
	}
	for _, source := range types.Classes {
		for _, target := range types.Classes {
			if castable(source.Family(), target.Family()) {
				r.casts[castKey{source, target}] = makeCast(source, target)
			}
		}
	}
	for name, overloads := range defaultBuiltins {
		r.funcs[name] = overloads
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the registry with every cast and built-in function.
func Default() *Registry {
	return defaultRegistry
}

// ResolveCast implements overload.Resolver.
func (r *Registry) ResolveCast(source, target *types.Class) (*overload.Cast, bool) {
	c, ok := r.casts[castKey{source, target}]
	return c, ok
}

// ResolveOverload implements overload.Resolver. The first overload whose
// parameters match and whose return typer accepts the arguments wins.
func (r *Registry) ResolveOverload(
	name string, args []overload.PreptimeValue,
) (overload.Result, bool) {
	for _, o := range r.funcs[strings.ToUpper(name)] {
		if !o.Types.Match(args) {
			continue
		}
		if t := o.ReturnType(args); t != nil {
			return overload.Result{Overload: o, Type: t}, true
		}
	}
	return overload.Result{}, false
}

// FunctionNames returns the names of all functions, sorted.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Overloads returns the overloads of the named function.
func (r *Registry) Overloads(name string) []*overload.Overload {
	return r.funcs[strings.ToUpper(name)]
}
