// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

// closeToken is the terminal state of a channel. It is published once via
// compare-and-swap and never mutated afterwards.
type closeToken struct {
	cause error
}

// cleanClose is shared by every channel closed without a cause.
var cleanClose = &closeToken{}

func (t *closeToken) failed() bool { return t.cause != nil }

// err derives the error observed by one operation of the given side.
func (t *closeToken) err(op string) error {
	if c, ok := t.cause.(CopyableError); ok {
		if fresh := c.CopyError(); fresh != nil {
			return &copiedCause{err: fresh, side: closedSide(op)}
		}
	}
	return &ClosedError{Op: op, Cause: t.cause}
}

// wakeErr is the value delivered to a parked waiter when the channel closes.
// A clean close wakes waiters without error so they drain remaining data.
func (t *closeToken) wakeErr(op string) error {
	if !t.failed() {
		return nil
	}
	return t.err(op)
}
