// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/bytechan"
)

func TestReadLoopCountsChunks(t *testing.T) {
	ch := newTestChannel(t)
	mustWrite(t, ch, "abcdefghij")
	ch.Close()

	type stats struct{ chunks, bytes int }
	protocol := bytechan.ReadLoop(make([]byte, 3), stats{}, func(s stats, p []byte) stats {
		return stats{s.chunks + 1, s.bytes + len(p)}
	})
	got := rightOf(t, bytechan.Exec(testContext(t), ch, protocol))
	if got.bytes != 10 || got.chunks != 4 {
		t.Fatalf("got %+v, want 4 chunks of 10 bytes", got)
	}
}

func TestExprReadLoopLong(t *testing.T) {
	// One byte per iteration.
	payload := bytes.Repeat([]byte{'z'}, 1<<12)
	ch := newTestChannel(t)
	mustWrite(t, ch, string(payload))
	ch.Close()

	protocol := bytechan.ExprReadLoop(make([]byte, 1), 0, func(n int, p []byte) int {
		return n + len(p)
	})
	if got := rightOf(t, bytechan.ExecExpr(testContext(t), ch, protocol)); got != len(payload) {
		t.Fatalf("got %d, want %d", got, len(payload))
	}
}

func TestWriteAllEmpty(t *testing.T) {
	ch := newTestChannel(t)
	rightOf(t, bytechan.Exec(testContext(t), ch, bytechan.WriteAll()))
	if data := readAll(t, ch); data != "" {
		t.Fatalf("got %q, want empty", data)
	}
}
