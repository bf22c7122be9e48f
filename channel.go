// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/sirupsen/logrus"
)

// Channel is a single-reader, single-writer byte stream.
//
// One goroutine at a time may act as the reader (Read*, AwaitContent, Peek,
// Consume, ReadUntil, WriteTo) and one at a time as the writer (Write*,
// Flush, AwaitFreeSpace, Close, ReadFrom). Cancel, Err, IsClosedForWrite and
// the byte totals may be called from any goroutine.
//
// Bytes move writer buffer → flush buffer → reader buffer. Only the flush
// buffer is shared, and only its hand-off takes a lock.
type Channel struct {
	// writer-owned
	wbuf chain

	// reader-owned
	rbuf chain

	// shared hand-off, guarded by mu; flushed mirrors fbuf.size for
	// lock-free readiness checks
	mu      sync.Mutex
	fbuf    chain
	flushed atomix.Int64

	closed atomic.Pointer[closeToken]
	slot   slot
	reader suspension
	writer suspension
	pool   segmentPool

	written   atomix.Int64
	delivered atomix.Int64

	capacity  int
	autoFlush bool
	serial    Serial
	log       logrus.FieldLogger
	metrics   *Metrics
}

// New creates an open channel.
func New(opts ...Option) *Channel {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Channel{
		capacity:  o.capacity,
		autoFlush: o.autoFlush,
		serial:    nextSerial(),
		metrics:   o.metrics,
	}
	c.log = o.logger.WithField("channel", c.serial)
	c.reader.init()
	c.writer.init()
	c.pool.init(o.segmentSize, o.poolSize)
	return c
}

// Serial returns the identifier assigned to this channel.
func (c *Channel) Serial() Serial { return c.serial }

// ---- read side ----

// Read implements io.Reader. It parks until at least one byte is available
// and returns io.EOF once the channel is cleanly closed and drained.
func (c *Channel) Read(p []byte) (int, error) {
	return c.ReadContext(context.Background(), p)
}

// ReadContext is Read with cancellation. A canceled ctx leaves the channel usable.
func (c *Channel) ReadContext(ctx context.Context, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	ok, err := c.AwaitContent(ctx, 1)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, io.EOF
	}
	return c.readBuffered(p), nil
}

// TryRead reads whatever is available without parking.
// It returns iox.ErrWouldBlock when the channel is open and empty.
func (c *Channel) TryRead(p []byte) (int, error) {
	ok, err := c.tryAwaitContent(1)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, io.EOF
	}
	return c.readBuffered(p), nil
}

// ReadFull reads exactly len(p) bytes. Unlike io.ReadFull, a stream that
// ends before len(p) bytes arrive always reports io.ErrUnexpectedEOF.
func (c *Channel) ReadFull(ctx context.Context, p []byte) error {
	for len(p) > 0 {
		n, err := c.ReadContext(ctx, p)
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// ReadByte implements io.ByteReader.
func (c *Channel) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := c.ReadContext(context.Background(), b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// AwaitContent parks until at least want bytes can be read without parking.
// It reports false when the channel was cleanly closed with fewer bytes left.
func (c *Channel) AwaitContent(ctx context.Context, want int) (bool, error) {
	for {
		ok, err := c.tryAwaitContent(want)
		if err == nil || !iox.IsWouldBlock(err) {
			return ok, err
		}
		if err := c.await(ctx, roleRead, want); err != nil {
			return false, err
		}
	}
}

// tryAwaitContent is the non-parking half of AwaitContent.
func (c *Channel) tryAwaitContent(want int) (bool, error) {
	want = max(want, 1)
	if t := c.closed.Load(); t != nil && t.failed() {
		c.rbuf.reset()
		return false, t.err(opRead)
	}
	if c.readable(want) {
		return true, nil
	}
	if t := c.closed.Load(); t != nil {
		// Clean close: everything flushed before the close is visible now.
		if t.failed() {
			c.rbuf.reset()
			return false, t.err(opRead)
		}
		return c.readable(want), nil
	}
	return false, iox.ErrWouldBlock
}

// AvailableForRead returns the number of bytes that can be read without
// parking. Reader side only.
func (c *Channel) AvailableForRead() int {
	return c.rbuf.size + int(c.flushed.LoadAcquire())
}

// IsClosedForRead reports whether no further bytes will ever be readable.
// Reader side only.
func (c *Channel) IsClosedForRead() bool {
	t := c.closed.Load()
	if t == nil {
		return false
	}
	return t.failed() || c.AvailableForRead() == 0
}

// Peek returns the next contiguous run of readable bytes without consuming
// them. The slice is valid until the next read-side call. It never parks.
func (c *Channel) Peek() []byte {
	if t := c.closed.Load(); t != nil && t.failed() {
		return nil
	}
	if c.rbuf.size == 0 {
		c.moveFlushToReadBuffer()
	}
	return c.rbuf.peek(&c.pool)
}

// Consume discards n bytes previously observed through Peek or AwaitContent.
func (c *Channel) Consume(n int) {
	if n < 0 || n > c.rbuf.size {
		panic("bytechan: consume beyond buffered data")
	}
	c.rbuf.consume(n, &c.pool)
	c.delivered.Add(int64(n))
	c.metrics.read(n)
}

// TotalBytesRead returns the number of bytes delivered to the reader.
func (c *Channel) TotalBytesRead() int64 { return c.delivered.Load() }

func (c *Channel) readBuffered(p []byte) int {
	n := c.rbuf.read(p, &c.pool)
	c.delivered.Add(int64(n))
	c.metrics.read(n)
	return n
}

// readable reports whether want bytes are in the read buffer, pulling the
// flush buffer in first when needed.
func (c *Channel) readable(want int) bool {
	if c.rbuf.size >= want {
		return true
	}
	c.moveFlushToReadBuffer()
	return c.rbuf.size >= want
}

// moveFlushToReadBuffer hands the whole flush buffer to the reader and
// wakes a writer waiting for space.
func (c *Channel) moveFlushToReadBuffer() {
	if c.flushed.LoadAcquire() == 0 {
		return
	}
	c.mu.Lock()
	c.rbuf.splice(&c.fbuf)
	c.flushed.StoreRelease(0)
	c.mu.Unlock()
	c.resumeWaiter(roleWrite)
}

// ---- write side ----

// Write implements io.Writer. Bytes become visible to the reader on the
// next flush, which happens implicitly under auto-flush or when the write
// buffer reaches the channel capacity.
func (c *Channel) Write(p []byte) (int, error) {
	return c.WriteContext(context.Background(), p)
}

// WriteContext is Write with cancellation. It parks while the flushed but
// unread bytes are at or above the channel capacity.
func (c *Channel) WriteContext(ctx context.Context, p []byte) (int, error) {
	if err := c.writeErr(); err != nil {
		return 0, err
	}
	n := 0
	for len(p) > 0 {
		if err := c.AwaitFreeSpace(ctx); err != nil {
			c.account(n)
			return n, err
		}
		room := c.capacity - c.wbuf.size
		if room <= 0 {
			c.flush()
			continue
		}
		k := min(room, len(p))
		c.wbuf.write(p[:k], &c.pool)
		p = p[k:]
		n += k
		c.flushIfNeeded()
	}
	c.account(n)
	return n, nil
}

// WriteString implements io.StringWriter.
func (c *Channel) WriteString(s string) (int, error) {
	return c.WriteContext(context.Background(), []byte(s))
}

// WriteByte implements io.ByteWriter.
func (c *Channel) WriteByte(b byte) error {
	if err := c.writeErr(); err != nil {
		return err
	}
	if err := c.AwaitFreeSpace(context.Background()); err != nil {
		return err
	}
	c.wbuf.writeByte(b, &c.pool)
	c.flushIfNeeded()
	c.account(1)
	return nil
}

// TryWrite appends all of p without parking. It returns iox.ErrWouldBlock,
// writing nothing, while the channel is at capacity.
func (c *Channel) TryWrite(p []byte) (int, error) {
	if err := c.writeErr(); err != nil {
		return 0, err
	}
	if c.flushed.LoadAcquire() >= int64(c.capacity) {
		return 0, iox.ErrWouldBlock
	}
	for rest := p; len(rest) > 0; {
		k := min(max(c.capacity-c.wbuf.size, 1), len(rest))
		c.wbuf.write(rest[:k], &c.pool)
		rest = rest[k:]
		c.flushIfNeeded()
	}
	c.account(len(p))
	return len(p), nil
}

// Flush makes every written byte visible to the reader. It never parks,
// and it is a no-op when nothing is buffered.
func (c *Channel) Flush() error {
	if t := c.closed.Load(); t != nil && t.failed() {
		c.wbuf.reset()
		return t.err(opWrite)
	}
	c.flush()
	return nil
}

// AwaitFreeSpace parks until the flushed but unread bytes drop below the
// channel capacity.
func (c *Channel) AwaitFreeSpace(ctx context.Context) error {
	for {
		if err := c.writeErr(); err != nil {
			return err
		}
		if c.hasSpace() {
			return nil
		}
		if err := c.await(ctx, roleWrite, 0); err != nil {
			return err
		}
	}
}

// IsClosedForWrite reports whether the channel no longer accepts writes.
func (c *Channel) IsClosedForWrite() bool { return c.closed.Load() != nil }

// TotalBytesWritten returns the number of bytes accepted from the writer.
func (c *Channel) TotalBytesWritten() int64 { return c.written.Load() }

func (c *Channel) hasSpace() bool {
	return c.flushed.LoadAcquire() < int64(c.capacity)
}

func (c *Channel) writeErr() error {
	if t := c.closed.Load(); t != nil {
		c.wbuf.reset()
		return t.err(opWrite)
	}
	return nil
}

func (c *Channel) account(n int) {
	if n > 0 {
		c.written.Add(int64(n))
		c.metrics.wrote(n)
	}
}

func (c *Channel) flushIfNeeded() {
	if c.autoFlush || c.wbuf.size >= c.capacity {
		c.flush()
	}
}

// flush hands the write buffer to the flush buffer and wakes a parked reader.
func (c *Channel) flush() {
	if c.wbuf.size == 0 {
		return
	}
	c.mu.Lock()
	if t := c.closed.Load(); t != nil && t.failed() {
		c.mu.Unlock()
		c.wbuf.reset()
		return
	}
	c.fbuf.transfer(&c.wbuf)
	c.flushed.StoreRelease(int64(c.fbuf.size))
	c.mu.Unlock()
	c.resumeWaiter(roleRead)
}

// ---- termination ----

// Close implements io.Closer: it flushes buffered writes and closes the
// channel cleanly. The reader drains remaining bytes and then sees io.EOF.
// Closing a closed channel is a no-op.
func (c *Channel) Close() error {
	c.CloseWithError(nil)
	return nil
}

// CloseWithError closes the channel. A nil cause flushes pending writes
// first; a non-nil cause discards every unread byte and is reported by all
// later operations on both sides. It returns false if the channel was
// already closed.
func (c *Channel) CloseWithError(cause error) bool {
	t := cleanClose
	if cause != nil {
		t = &closeToken{cause: cause}
	} else {
		c.flush()
	}
	if !c.closed.CompareAndSwap(nil, t) {
		return false
	}
	if t.failed() {
		c.mu.Lock()
		c.fbuf.reset()
		c.flushed.StoreRelease(0)
		c.mu.Unlock()
	}
	c.slot.close()
	c.reader.close(t.wakeErr(opRead))
	c.writer.close(t.wakeErr(opWrite))
	c.metrics.closed(t.failed())
	if t.failed() {
		c.log.WithError(cause).Debug("bytechan: channel closed with cause")
	} else {
		c.log.Debug("bytechan: channel closed")
	}
	return true
}

// Cancel fails the channel with cause, or ErrCanceled when cause is nil.
// Parked readers and writers resume immediately with the cause.
func (c *Channel) Cancel(cause error) bool {
	if cause == nil {
		cause = ErrCanceled
	}
	return c.CloseWithError(cause)
}

// Err returns the close cause, or nil while open or after a clean close.
func (c *Channel) Err() error {
	if t := c.closed.Load(); t != nil {
		return t.cause
	}
	return nil
}

// ---- suspension protocol ----

func (c *Channel) waiter(r role) *suspension {
	if r == roleRead {
		return &c.reader
	}
	return &c.writer
}

func (c *Channel) ready(r role, want int) bool {
	if r == roleRead {
		return c.readable(max(want, 1))
	}
	return c.hasSpace()
}

// recheck is the readiness test made after role r published itself in the
// slot. It reads the flush buffer under mu: either the other role's hand-off
// unlocked mu before this lock and its bytes or space are seen here, or this
// role's slot update happened before that hand-off, which then finds the
// waiter through resumeWaiter.
func (c *Channel) recheck(r role, want int) bool {
	c.mu.Lock()
	flushed := c.fbuf.size
	c.mu.Unlock()
	if r == roleRead {
		return c.rbuf.size+flushed >= max(want, 1)
	}
	return flushed < c.capacity
}

// resumeWaiter wakes role r if it is the registered waiter.
func (c *Channel) resumeWaiter(r role) {
	if c.slot.cas(r.waiting(), slotEmpty) {
		c.waiter(r).resume()
	}
}

// await parks role r until its readiness condition may have changed.
// A nil return means "check again"; callers loop.
func (c *Channel) await(ctx context.Context, r role, want int) error {
	s := c.waiter(r)
	waiting := r.waiting()
	var bo iox.Backoff
	for {
		if c.ready(r, want) || c.closed.Load() != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		prev := c.slot.load()
		switch prev {
		case slotClosed:
			return nil
		case waiting:
			if s.isWaiting() {
				// Two operations of the same role are active. Fail the one
				// that was parked first.
				c.metrics.concurrent()
				c.log.WithField("role", r).Warn("bytechan: concurrent use detected")
				s.resumeWithError(&ConcurrentIOError{Op: r.op()})
			}
			// Otherwise the slot is stale: its waiter was resumed by a
			// cancellation that has not cleared the slot yet.
			c.slot.cas(waiting, slotEmpty)
			continue
		case slotEmpty, r.opposite().waiting():
		default:
			panic("bytechan: corrupted slot state")
		}
		if !s.register() {
			// The previous cycle has not consumed its wake yet.
			bo.Wait()
			continue
		}
		if !c.slot.cas(prev, waiting) {
			if err := s.withdraw(); err != nil {
				return err
			}
			continue
		}
		bo.Reset()
		if prev != slotEmpty {
			// The other side was parked; let it re-evaluate.
			c.waiter(r.opposite()).resume()
		}
		if c.recheck(r, want) || c.closed.Load() != nil {
			c.slot.cas(waiting, slotEmpty)
			return s.withdraw()
		}
		c.metrics.parked(r)
		if err := c.sleep(ctx, r); err != nil {
			return err
		}
	}
}

// sleep parks the registered suspension of role r. After a failed park the
// slot is cleared before the suspension is released: once released, another
// operation of the same role may register and publish itself in the slot.
func (c *Channel) sleep(ctx context.Context, r role) error {
	s := c.waiter(r)
	err := s.park(ctx)
	if err != nil {
		c.slot.cas(r.waiting(), slotEmpty)
	}
	s.release()
	return err
}
