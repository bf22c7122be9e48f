// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/bytechan"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

func TestStepInspectOperations(t *testing.T) {
	// susp.Op() returns the concrete Write, Flush, Close
	protocol := bytechan.ExprWriteThen([]byte("hi"),
		bytechan.ExprFlushThen(bytechan.ExprCloseDone(7)),
	)

	_, susp := bytechan.Step[int](protocol)
	if susp == nil {
		t.Fatal("expected suspension for Write")
	}
	w, ok := susp.Op().(bytechan.Write)
	if !ok {
		t.Fatalf("expected Write, got %T", susp.Op())
	}
	if string(w.Data) != "hi" {
		t.Fatalf("Write data got %q, want hi", w.Data)
	}

	ch := newTestChannel(t)
	_, susp, err := bytechan.Advance(ch, susp)
	if err != nil {
		t.Fatalf("Advance Write: %v", err)
	}
	if _, ok := susp.Op().(bytechan.Flush); !ok {
		t.Fatalf("expected Flush, got %T", susp.Op())
	}
	_, susp, err = bytechan.Advance(ch, susp)
	if err != nil {
		t.Fatalf("Advance Flush: %v", err)
	}
	if _, ok := susp.Op().(bytechan.Close); !ok {
		t.Fatalf("expected Close, got %T", susp.Op())
	}
	result, susp, err := bytechan.Advance(ch, susp)
	if err != nil {
		t.Fatalf("Advance Close: %v", err)
	}
	if susp != nil {
		t.Fatal("expected nil suspension after Close")
	}
	if got := rightOf(t, result); got != 7 {
		t.Fatalf("result got %d, want 7", got)
	}
	if data := readAll(t, ch); data != "hi" {
		t.Fatalf("channel carried %q, want hi", data)
	}
}

func TestAdvanceWouldBlock(t *testing.T) {
	protocol := bytechan.ExprReadBind(make([]byte, 8), func(n int) kont.Expr[int] {
		return kont.ExprReturn(n)
	})
	_, susp := bytechan.Step[int](protocol)
	if susp == nil {
		t.Fatal("expected suspension for Read")
	}

	ch := newTestChannel(t)
	_, retry, err := bytechan.Advance(ch, susp)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	if retry != susp {
		t.Fatal("suspension should be returned unconsumed on ErrWouldBlock")
	}

	mustWrite(t, ch, "abc")
	mustFlush(t, ch)
	result, next, err := bytechan.Advance(ch, retry)
	if err != nil {
		t.Fatalf("Advance after flush: %v", err)
	}
	if next != nil {
		t.Fatal("expected completion")
	}
	if got := rightOf(t, result); got != 3 {
		t.Fatalf("read %d bytes, want 3", got)
	}
}

func TestAdvanceWriteWouldBlock(t *testing.T) {
	ch := newTestChannel(t, bytechan.WithCapacity(2))
	mustWrite(t, ch, "ab")

	_, susp := bytechan.Step[struct{}](bytechan.ExprWriteAll([]byte("c")))
	_, retry, err := bytechan.Advance(ch, susp)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock at capacity, got %v", err)
	}
	if _, err := ch.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if _, _, err := bytechan.Advance(ch, retry); err != nil {
		t.Fatalf("Advance after read: %v", err)
	}
}

func TestAdvanceTerminalError(t *testing.T) {
	ch := newTestChannel(t)
	cause := errors.New("reset")
	ch.Cancel(cause)

	_, susp := bytechan.Step[struct{}](bytechan.ExprWriteAll([]byte("x")))
	result, next, err := bytechan.Advance(ch, susp)
	if err != nil {
		t.Fatalf("terminal error surfaced as Advance error: %v", err)
	}
	if next != nil {
		t.Fatal("expected suspension to be discarded")
	}
	expectError(t, leftOf(t, result), cause)
}

func TestAdvanceThrow(t *testing.T) {
	boom := errors.New("step-boom")
	protocol := bytechan.ExprFlushThen(kont.ExprThrowError[error, int](boom))

	ch := newTestChannel(t)
	result := stepExpr(ch, protocol)
	if err := leftOf(t, result); err != boom {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestStepCompletionWithoutEffects(t *testing.T) {
	result, susp := bytechan.Step[string](kont.ExprReturn("pure"))
	if susp != nil {
		t.Fatal("expected no suspension")
	}
	if got := rightOf(t, result); got != "pure" {
		t.Fatalf("got %q, want pure", got)
	}
}

func TestStepAdvanceConcurrent(t *testing.T) {
	ch := newTestChannel(t, bytechan.WithCapacity(4))

	var writeResult kont.Either[error, struct{}]
	done := make(chan struct{})
	go func() {
		writeResult = stepExpr(ch, bytechan.ExprWriteAll([]byte("step"), []byte("ped "), []byte("stream")))
		close(done)
	}()
	readResult := stepExpr(ch, bytechan.ExprReadLoop(make([]byte, 3), "", concat))
	<-done

	rightOf(t, writeResult)
	if got := rightOf(t, readResult); got != "stepped stream" {
		t.Fatalf("got %q, want %q", got, "stepped stream")
	}
}
