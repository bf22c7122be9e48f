// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

// segment is a fixed-size block of a buffer chain.
// Readable bytes are buf[r:w]; free space is buf[w:].
type segment struct {
	buf  []byte
	r, w int
	next *segment
}

func (s *segment) readable() []byte { return s.buf[s.r:s.w] }

func (s *segment) free() int { return len(s.buf) - s.w }

// chain is a FIFO byte queue built from segments.
// A chain is owned by exactly one role, except the flush chain
// which is only touched under Channel.mu.
type chain struct {
	head *segment
	tail *segment
	size int
}

// write appends all of p, taking new segments from pool as needed.
func (c *chain) write(p []byte, pool *segmentPool) {
	for len(p) > 0 {
		if c.tail == nil || c.tail.free() == 0 {
			c.push(pool.get())
		}
		n := copy(c.tail.buf[c.tail.w:], p)
		c.tail.w += n
		c.size += n
		p = p[n:]
	}
}

func (c *chain) writeByte(b byte, pool *segmentPool) {
	if c.tail == nil || c.tail.free() == 0 {
		c.push(pool.get())
	}
	c.tail.buf[c.tail.w] = b
	c.tail.w++
	c.size++
}

// space returns the free tail of the last segment, growing the chain
// when it is full. The caller reports how much it filled via commit.
func (c *chain) space(pool *segmentPool) []byte {
	if c.tail == nil || c.tail.free() == 0 {
		c.push(pool.get())
	}
	return c.tail.buf[c.tail.w:]
}

func (c *chain) commit(n int) {
	c.tail.w += n
	c.size += n
}

func (c *chain) push(s *segment) {
	if c.tail == nil {
		c.head, c.tail = s, s
		return
	}
	c.tail.next = s
	c.tail = s
}

// read copies up to len(p) bytes out of the chain and hands drained
// segments back to pool. A drained last segment stays linked after its
// rewind, so the loop is bounded by size, not by head.
func (c *chain) read(p []byte, pool *segmentPool) int {
	n := 0
	for n < len(p) && c.size > 0 {
		k := copy(p[n:], c.head.readable())
		c.head.r += k
		c.size -= k
		n += k
		c.dropDrained(pool)
	}
	return n
}

// peek returns the readable bytes of the first non-empty segment.
func (c *chain) peek(pool *segmentPool) []byte {
	c.dropDrained(pool)
	if c.head == nil {
		return nil
	}
	return c.head.readable()
}

// consume advances past n readable bytes. n must not exceed c.size.
func (c *chain) consume(n int, pool *segmentPool) {
	for n > 0 {
		k := min(n, c.head.w-c.head.r)
		c.head.r += k
		c.size -= k
		n -= k
		c.dropDrained(pool)
	}
}

func (c *chain) dropDrained(pool *segmentPool) {
	for c.head != nil && c.head.r == c.head.w {
		if c.head == c.tail && c.head.free() > 0 {
			// Last segment still has room: rewind it in place.
			c.head.r, c.head.w = 0, 0
			return
		}
		s := c.head
		c.head = s.next
		if c.head == nil {
			c.tail = nil
		}
		s.next = nil
		pool.put(s)
	}
}

// transfer moves every byte of src to the end of c and leaves src empty.
// Small single-segment sources are copied into the free tail of c so the
// source keeps its segment; everything else is spliced without copying.
func (c *chain) transfer(src *chain) {
	if src.size == 0 {
		return
	}
	if src.head == src.tail && c.tail != nil && c.tail.free() >= src.size {
		n := copy(c.tail.buf[c.tail.w:], src.head.readable())
		c.tail.w += n
		c.size += n
		src.head.r, src.head.w = 0, 0
		src.size = 0
		return
	}
	c.splice(src)
}

// splice links the segments of src after c. src is left empty.
func (c *chain) splice(src *chain) {
	if src.head == nil {
		return
	}
	if c.tail == nil {
		c.head = src.head
	} else {
		c.tail.next = src.head
	}
	c.tail = src.tail
	c.size += src.size
	src.head, src.tail, src.size = nil, nil, 0
}

// reset drops every segment without returning it to a pool.
// It is safe for any goroutine holding the chain's owner lock.
func (c *chain) reset() {
	c.head, c.tail, c.size = nil, nil, 0
}
