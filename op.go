// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"context"
	"io"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// channelDispatcher is the structural interface for channel operations.
// DispatchChannel is non-blocking: it returns iox.ErrWouldBlock at the
// boundary where the plain method would park. awaitChannel parks until the
// operation may succeed on retry.
type channelDispatcher interface {
	DispatchChannel(c *Channel) (kont.Resumed, error)
	awaitChannel(ctx context.Context, c *Channel) error
}

// Read is the effect operation for reading into Buf.
// Perform(Read{Buf: p}) resumes with the number of bytes read; 0 means the
// channel was cleanly closed and drained. Buf must not be empty.
type Read struct {
	kont.Phantom[int]
	Buf []byte
}

// DispatchChannel handles Read on the channel.
// Non-blocking: returns iox.ErrWouldBlock while the channel is open and empty.
func (o Read) DispatchChannel(c *Channel) (kont.Resumed, error) {
	n, err := c.TryRead(o.Buf)
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (Read) awaitChannel(ctx context.Context, c *Channel) error {
	return c.await(ctx, roleRead, 1)
}

// Write is the effect operation for writing Data.
// Perform(Write{Data: p}) appends all of p; it is visible to the reader
// after the next flush.
type Write struct {
	kont.Phantom[struct{}]
	Data []byte
}

// DispatchChannel handles Write on the channel.
// Non-blocking: returns iox.ErrWouldBlock while the channel is at capacity.
func (o Write) DispatchChannel(c *Channel) (kont.Resumed, error) {
	if _, err := c.TryWrite(o.Data); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (Write) awaitChannel(ctx context.Context, c *Channel) error {
	return c.await(ctx, roleWrite, 0)
}

// Flush is the effect operation for publishing buffered writes.
// Never blocks.
type Flush struct {
	kont.Phantom[struct{}]
}

// DispatchChannel handles Flush on the channel.
func (Flush) DispatchChannel(c *Channel) (kont.Resumed, error) {
	if err := c.Flush(); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (Flush) awaitChannel(context.Context, *Channel) error { return nil }

// Close is the effect operation for closing the channel cleanly.
// Pending writes are flushed first. Never blocks.
type Close struct {
	kont.Phantom[struct{}]
}

// DispatchChannel handles Close on the channel.
func (Close) DispatchChannel(c *Channel) (kont.Resumed, error) {
	c.CloseWithError(nil)
	return struct{}{}, nil
}

func (Close) awaitChannel(context.Context, *Channel) error { return nil }

// AwaitContent is the effect operation for waiting until Min bytes are
// readable. It resumes with false when the channel was cleanly closed with
// fewer bytes left.
type AwaitContent struct {
	kont.Phantom[bool]
	Min int
}

// DispatchChannel handles AwaitContent on the channel.
// Non-blocking: returns iox.ErrWouldBlock while fewer than Min bytes are
// readable and the channel is open.
func (o AwaitContent) DispatchChannel(c *Channel) (kont.Resumed, error) {
	ok, err := c.tryAwaitContent(o.Min)
	if err != nil {
		return nil, err
	}
	return ok, nil
}

func (o AwaitContent) awaitChannel(ctx context.Context, c *Channel) error {
	return c.await(ctx, roleRead, o.Min)
}

// dispatchWait retries op until it stops reporting iox.ErrWouldBlock,
// parking on the channel in between. Any other error is terminal.
func dispatchWait(ctx context.Context, c *Channel, op channelDispatcher) (kont.Resumed, error) {
	for {
		v, err := op.DispatchChannel(c)
		if err == nil {
			return v, nil
		}
		if !iox.IsWouldBlock(err) {
			return nil, err
		}
		if err := op.awaitChannel(ctx, c); err != nil {
			return nil, err
		}
	}
}
