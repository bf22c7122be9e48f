// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"context"
	"io"
)

var (
	_ io.Reader       = (*Channel)(nil)
	_ io.Writer       = (*Channel)(nil)
	_ io.Closer       = (*Channel)(nil)
	_ io.ByteReader   = (*Channel)(nil)
	_ io.ByteWriter   = (*Channel)(nil)
	_ io.StringWriter = (*Channel)(nil)
	_ io.WriterTo     = (*Channel)(nil)
	_ io.ReaderFrom   = (*Channel)(nil)
)

// WriteTo drains the channel into w segment by segment without an
// intermediate copy. It returns nil once the channel is cleanly closed and
// drained. Reader side.
func (c *Channel) WriteTo(w io.Writer) (int64, error) {
	ctx := context.Background()
	var total int64
	for {
		ok, err := c.AwaitContent(ctx, 1)
		if err != nil {
			return total, err
		}
		if !ok {
			return total, nil
		}
		p := c.Peek()
		n, err := w.Write(p)
		if n > 0 {
			c.Consume(n)
			total += int64(n)
		}
		if err != nil {
			return total, err
		}
		if n < len(p) {
			return total, io.ErrShortWrite
		}
	}
}

// ReadFrom fills the channel from r until r reports io.EOF, reading
// directly into buffer segments. Everything read is flushed before it
// returns. Writer side.
func (c *Channel) ReadFrom(r io.Reader) (int64, error) {
	if err := c.writeErr(); err != nil {
		return 0, err
	}
	ctx := context.Background()
	var total int64
	for {
		if err := c.AwaitFreeSpace(ctx); err != nil {
			return total, err
		}
		room := c.capacity - c.wbuf.size
		if room <= 0 {
			c.flush()
			continue
		}
		buf := c.wbuf.space(&c.pool)
		if len(buf) > room {
			buf = buf[:room]
		}
		n, err := r.Read(buf)
		if n > 0 {
			c.wbuf.commit(n)
			total += int64(n)
			c.account(n)
			c.flushIfNeeded()
		}
		if err == io.EOF {
			return total, c.Flush()
		}
		if err != nil {
			c.flush()
			return total, err
		}
	}
}
