// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"errors"
)

var (
	// ErrClosedRead is matched by errors returned from read operations on a
	// channel that was closed with a cause.
	ErrClosedRead = errors.New("bytechan: channel closed for read")

	// ErrClosedWrite is matched by errors returned from write operations on a
	// closed channel.
	ErrClosedWrite = errors.New("bytechan: channel closed for write")

	// ErrConcurrentIO is matched by errors delivered to a parked reader
	// (or writer) when a second read (or write) registers concurrently.
	ErrConcurrentIO = errors.New("bytechan: concurrent io")

	// ErrCanceled is the cause recorded by Cancel(nil).
	ErrCanceled = errors.New("bytechan: channel canceled")

	// ErrDelimiterNotFound reports that the stream ended before the delimiter.
	ErrDelimiterNotFound = errors.New("bytechan: delimiter not found")

	// ErrLimitExceeded reports that more than the allowed number of bytes
	// preceded the delimiter.
	ErrLimitExceeded = errors.New("bytechan: limit exceeded before delimiter")

	// ErrEmptyDelimiter is returned when scanning for a zero-length delimiter.
	ErrEmptyDelimiter = errors.New("bytechan: empty delimiter")
)

const (
	opRead  = "read"
	opWrite = "write"
)

// ClosedError is returned by operations on a closed channel.
// It matches ErrClosedRead or ErrClosedWrite by side, and the close cause
// when there is one.
type ClosedError struct {
	Op    string
	Cause error
}

func (e *ClosedError) Error() string {
	if e.Cause == nil {
		return "bytechan: " + e.Op + " on closed channel"
	}
	return "bytechan: " + e.Op + " on closed channel: " + e.Cause.Error()
}

// Unwrap exposes the side sentinel and the cause to errors.Is and errors.As.
func (e *ClosedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{closedSide(e.Op)}
	}
	return []error{closedSide(e.Op), e.Cause}
}

func closedSide(op string) error {
	if op == opWrite {
		return ErrClosedWrite
	}
	return ErrClosedRead
}

// copiedCause is the per-site copy of a CopyableError close cause. It reads
// exactly as the copy and additionally matches the side sentinel.
type copiedCause struct {
	err  error
	side error
}

func (e *copiedCause) Error() string { return e.err.Error() }

func (e *copiedCause) Unwrap() []error { return []error{e.err, e.side} }

// ConcurrentIOError is delivered to the waiter that was already parked when
// another operation of the same role tried to park.
type ConcurrentIOError struct {
	Op string
}

func (e *ConcurrentIOError) Error() string {
	return "bytechan: concurrent " + e.Op + " while waiting"
}

func (e *ConcurrentIOError) Unwrap() error { return ErrConcurrentIO }

// CopyableError is implemented by close causes that must be re-derived for
// every site observing them, for example errors carrying per-call context.
// The channel calls CopyError once per failed operation instead of handing
// the same value to every caller, and returns the copy without wrapping it
// in ClosedError; errors.Is still matches ErrClosedRead or ErrClosedWrite.
type CopyableError interface {
	error
	CopyError() error
}
