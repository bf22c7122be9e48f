// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"bytes"
	"context"
	"io"
)

// Delimiter is a byte sequence prepared for repeated scanning.
// The partial match table is computed once by NewDelimiter.
type Delimiter struct {
	seq   []byte
	table []int
}

// NewDelimiter copies b and builds its partial match table.
func NewDelimiter(b []byte) *Delimiter {
	d := &Delimiter{
		seq:   bytes.Clone(b),
		table: make([]int, len(b)),
	}
	// table[i] is the length of the longest proper prefix of seq[:i+1]
	// that is also its suffix.
	k := 0
	for i := 1; i < len(d.seq); i++ {
		for k > 0 && d.seq[i] != d.seq[k] {
			k = d.table[k-1]
		}
		if d.seq[i] == d.seq[k] {
			k++
		}
		d.table[i] = k
	}
	return d
}

// Bytes returns the delimiter sequence. The caller must not modify it.
func (d *Delimiter) Bytes() []byte { return d.seq }

// ReadUntil forwards bytes from c to sink until delim is read.
// See [Delimiter.ReadUntil].
func (c *Channel) ReadUntil(ctx context.Context, delim []byte, sink io.Writer, limit int64, ignoreMissing bool) (int64, error) {
	return NewDelimiter(delim).ReadUntil(ctx, c, sink, limit, ignoreMissing)
}

// ReadUntil forwards bytes from c to sink until the delimiter is read and
// returns the number of bytes forwarded. The delimiter is consumed but not
// forwarded. A nil sink discards.
//
// A negative limit means unlimited. If more than limit bytes precede the
// delimiter, exactly limit bytes are forwarded and ErrLimitExceeded is
// returned. After ErrLimitExceeded or a sink error the channel resumes right
// after the last forwarded byte; a partial delimiter match pending at that
// point is dropped. If the channel ends first, ErrDelimiterNotFound is returned
// unless ignoreMissing is set, in which case every remaining byte is
// forwarded and the error is nil.
func (d *Delimiter) ReadUntil(ctx context.Context, c *Channel, sink io.Writer, limit int64, ignoreMissing bool) (int64, error) {
	n, found, err := d.scan(ctx, c, sink, limit, ignoreMissing)
	if err != nil || found {
		return n, err
	}
	if !ignoreMissing {
		return n, ErrDelimiterNotFound
	}
	return n, nil
}

// scan runs the matcher and reports whether the delimiter was found.
// With tail set, a partial match left at end of stream is forwarded.
func (d *Delimiter) scan(ctx context.Context, c *Channel, sink io.Writer, limit int64, tail bool) (int64, bool, error) {
	if len(d.seq) == 0 {
		return 0, false, ErrEmptyDelimiter
	}
	if sink == nil {
		sink = io.Discard
	}
	e := emitter{w: sink, limit: limit}
	seq, first := d.seq, d.seq[0]
	// k bytes of the delimiter are matched. They have been consumed from the
	// channel but not forwarded, and always equal seq[:k].
	k := 0
	for {
		ok, err := c.AwaitContent(ctx, 1)
		if err != nil {
			return e.n, false, err
		}
		if !ok {
			if tail {
				_, err = e.emit(seq[:k])
			}
			return e.n, false, err
		}
		buf := c.Peek()
		i := 0
		for i < len(buf) {
			if k == 0 {
				j := bytes.IndexByte(buf[i:], first)
				if j < 0 {
					j = len(buf) - i
				}
				if m, err := e.emit(buf[i : i+j]); err != nil {
					c.Consume(i + m)
					return e.n, false, err
				}
				i += j
				if i == len(buf) {
					break
				}
			}
			b := buf[i]
			for k > 0 && b != seq[k] {
				// The retained bytes lie before i or in earlier chunks.
				if _, err := e.emit(seq[:k-d.table[k-1]]); err != nil {
					c.Consume(i)
					return e.n, false, err
				}
				k = d.table[k-1]
			}
			if b == seq[k] {
				k++
				i++
				if k == len(seq) {
					c.Consume(i)
					return e.n, true, nil
				}
				continue
			}
			if m, err := e.emit(buf[i : i+1]); err != nil {
				c.Consume(i + m)
				return e.n, false, err
			}
			i++
		}
		c.Consume(len(buf))
	}
}

// emitter forwards scanned bytes to a sink and enforces the limit.
type emitter struct {
	w     io.Writer
	n     int64
	limit int64
}

// emit forwards p, truncated to the limit, and returns how many bytes of p
// reached the sink.
func (e *emitter) emit(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	over := false
	if e.limit >= 0 && e.n+int64(len(p)) > e.limit {
		p = p[:e.limit-e.n]
		over = true
	}
	n := 0
	if len(p) > 0 {
		var err error
		n, err = e.w.Write(p)
		e.n += int64(n)
		if err != nil {
			return n, err
		}
		if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	if over {
		return n, ErrLimitExceeded
	}
	return n, nil
}
