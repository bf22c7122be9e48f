// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"code.hybscloud.com/bytechan"
	"code.hybscloud.com/kont"
)

// newTestChannel creates a channel with race-safe defaults.
func newTestChannel(tb testing.TB, opts ...bytechan.Option) *bytechan.Channel {
	tb.Helper()
	ch := bytechan.New(append(raceOptions(), opts...)...)
	tb.Cleanup(func() { ch.Cancel(nil) })
	return ch
}

func testContext(tb testing.TB) context.Context {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	tb.Cleanup(cancel)
	return ctx
}

func mustWrite(tb testing.TB, ch *bytechan.Channel, s string) {
	tb.Helper()
	n, err := ch.Write([]byte(s))
	if err != nil {
		tb.Fatalf("Write(%q): %v", s, err)
	}
	if n != len(s) {
		tb.Fatalf("Write(%q) = %d, want %d", s, n, len(s))
	}
}

func mustFlush(tb testing.TB, ch *bytechan.Channel) {
	tb.Helper()
	if err := ch.Flush(); err != nil {
		tb.Fatalf("Flush: %v", err)
	}
}

func expectError(tb testing.TB, err, target error) {
	tb.Helper()
	if !errors.Is(err, target) {
		tb.Fatalf("got error %v, want %v", err, target)
	}
}

// readAll drains ch until a clean close.
func readAll(tb testing.TB, ch *bytechan.Channel) string {
	tb.Helper()
	b, err := io.ReadAll(ch)
	if err != nil {
		tb.Fatalf("ReadAll: %v", err)
	}
	return string(b)
}

// stepExpr drives a protocol to completion on ch via the Step+Advance loop,
// retrying on iox.ErrWouldBlock until the other side makes progress.
func stepExpr[R any](ch *bytechan.Channel, protocol kont.Expr[R]) kont.Either[error, R] {
	result, susp := bytechan.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = bytechan.Advance[R](ch, susp)
		if err != nil {
			time.Sleep(time.Millisecond)
		}
	}
	return result
}

func rightOf[R any](tb testing.TB, e kont.Either[error, R]) R {
	tb.Helper()
	if err, ok := e.GetLeft(); ok {
		tb.Fatalf("expected Right, got Left(%v)", err)
	}
	v, _ := e.GetRight()
	return v
}

func leftOf[R any](tb testing.TB, e kont.Either[error, R]) error {
	tb.Helper()
	err, ok := e.GetLeft()
	if !ok {
		tb.Fatalf("expected Left, got Right")
	}
	return err
}
