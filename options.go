// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"io"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultCapacity is the backpressure threshold: writers park while this
	// many flushed bytes are waiting for the reader.
	DefaultCapacity = 1024 * 1024

	// DefaultSegmentSize is the size of one buffer segment.
	DefaultSegmentSize = 4096

	// DefaultSegmentPool is the number of drained segments kept for reuse.
	DefaultSegmentPool = 16
)

type options struct {
	capacity    int
	segmentSize int
	poolSize    int
	autoFlush   bool
	logger      logrus.FieldLogger
	metrics     *Metrics
}

func defaultOptions() options {
	return options{
		capacity:    DefaultCapacity,
		segmentSize: DefaultSegmentSize,
		poolSize:    DefaultSegmentPool,
		logger:      discardLogger,
	}
}

// Option configures a Channel.
type Option func(*options)

// WithCapacity sets the backpressure threshold in bytes. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithAutoFlush makes every write flush immediately.
func WithAutoFlush(on bool) Option {
	return func(o *options) { o.autoFlush = on }
}

// WithSegmentSize sets the size of buffer segments. Values below 1 are ignored.
func WithSegmentSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.segmentSize = n
		}
	}
}

// WithSegmentPool sets how many drained segments are kept for reuse.
// Zero disables recycling.
func WithSegmentPool(n int) Option {
	return func(o *options) { o.poolSize = max(n, 0) }
}

// WithLogger routes channel lifecycle events to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records channel traffic into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
