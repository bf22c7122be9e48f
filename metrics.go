// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates traffic counters across any number of channels.
// A nil *Metrics records nothing.
type Metrics struct {
	BytesWritten  prometheus.Counter
	BytesRead     prometheus.Counter
	Suspensions   *prometheus.CounterVec
	ConcurrentUse prometheus.Counter
	Closes        *prometheus.CounterVec

	readParks  prometheus.Counter
	writeParks prometheus.Counter
	clean      prometheus.Counter
	failed     prometheus.Counter
}

// NewMetrics creates the channel counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bytechan",
			Name:      "written_bytes_total",
			Help:      "Bytes accepted by channel writers.",
		}),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bytechan",
			Name:      "read_bytes_total",
			Help:      "Bytes delivered to channel readers.",
		}),
		Suspensions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bytechan",
			Name:      "suspensions_total",
			Help:      "Times a reader or writer parked waiting for progress.",
		}, []string{"role"}),
		ConcurrentUse: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bytechan",
			Name:      "concurrent_use_total",
			Help:      "Concurrent same-role operations detected.",
		}),
		Closes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bytechan",
			Name:      "closes_total",
			Help:      "Channels closed, by outcome.",
		}, []string{"outcome"}),
	}
	m.readParks = m.Suspensions.WithLabelValues(opRead)
	m.writeParks = m.Suspensions.WithLabelValues(opWrite)
	m.clean = m.Closes.WithLabelValues("clean")
	m.failed = m.Closes.WithLabelValues("failed")
	if reg != nil {
		reg.MustRegister(m.BytesWritten, m.BytesRead, m.Suspensions, m.ConcurrentUse, m.Closes)
	}
	return m
}

func (m *Metrics) wrote(n int) {
	if m != nil && n > 0 {
		m.BytesWritten.Add(float64(n))
	}
}

func (m *Metrics) read(n int) {
	if m != nil && n > 0 {
		m.BytesRead.Add(float64(n))
	}
}

func (m *Metrics) parked(r role) {
	if m == nil {
		return
	}
	if r == roleRead {
		m.readParks.Inc()
	} else {
		m.writeParks.Inc()
	}
}

func (m *Metrics) concurrent() {
	if m != nil {
		m.ConcurrentUse.Inc()
	}
}

func (m *Metrics) closed(failed bool) {
	if m == nil {
		return
	}
	if failed {
		m.failed.Inc()
	} else {
		m.clean.Inc()
	}
}
