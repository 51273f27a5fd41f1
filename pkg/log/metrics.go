// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the prometheus namespace of the log counters.
const Namespace = "epexport"

var _ Hook = (*Metrics)(nil)

// Metrics groups counters of emitted messages per severity level.
// Register it with WithHooks to count every emitted message.
type Metrics struct {
	ErrorCount prometheus.Counter
	WarnCount  prometheus.Counter
	InfoCount  prometheus.Counter
	DebugCount prometheus.Counter
}

// Fire implements Hook interface.
func (m *Metrics) Fire(v Level) error {
	switch v {
	case LevelError:
		m.ErrorCount.Inc()
	case LevelWarn:
		m.WarnCount.Inc()
	case LevelInfo:
		m.InfoCount.Inc()
	case LevelDebug:
		m.DebugCount.Inc()
	}
	return nil
}

// Metrics returns the counters for registration.
func (m *Metrics) Metrics() []prometheus.Collector {
	return []prometheus.Collector{
		m.ErrorCount,
		m.WarnCount,
		m.InfoCount,
		m.DebugCount,
	}
}

// NewMetrics returns pointer to a new metrics instance ready to use.
func NewMetrics() *Metrics {
	const subsystem = "log"

	return &Metrics{
		ErrorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "error_count",
			Help:      "Number ERROR log messages.",
		}),
		WarnCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "warn_count",
			Help:      "Number WARN log messages.",
		}),
		InfoCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "info_count",
			Help:      "Number INFO log messages.",
		}),
		DebugCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "debug_count",
			Help:      "Number DEBUG log messages.",
		}),
	}
}
