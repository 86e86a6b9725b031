// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package sqltelemetry counts uses of compiler features. Counters are
// registered with a prometheus registry and named with dotted feature
// names, e.g. "sql.schema.serial", exported with underscores.
package sqltelemetry

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/util/syncutil"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Counter is a feature counter.
type Counter = prometheus.Counter

var registry = struct {
	syncutil.Mutex
	reg      *prometheus.Registry
	counters map[string]Counter
}{
	reg:      prometheus.NewRegistry(),
	counters: make(map[string]Counter),
}

// GetCounter returns the counter for a feature, registering it on first
// use.
func GetCounter(feature string) Counter {
	registry.Lock()
	defer registry.Unlock()
	if c, ok := registry.counters[feature]; ok {
		return c
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricName(feature),
		Help: "Number of uses of " + feature + ".",
	})
	registry.reg.MustRegister(c)
	registry.counters[feature] = c
	return c
}

func metricName(feature string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(feature)
}

// Inc increments a counter.
func Inc(c Counter) {
	c.Inc()
}

// Value returns the current value of a feature counter, or zero if the
// feature was never used.
func Value(feature string) float64 {
	registry.Lock()
	c, ok := registry.counters[feature]
	registry.Unlock()
	if !ok {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// Gatherer exposes the registry to metric exporters.
func Gatherer() prometheus.Gatherer {
	return registry.reg
}

// Dump writes every counter in the prometheus text format.
func Dump(w io.Writer) error {
	families, err := registry.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "writing %s", mf.GetName())
		}
	}
	return nil
}
