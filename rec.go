// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"code.hybscloud.com/kont"
)

// ReadLoop reads chunks into buf until the channel is drained and folds
// each chunk into the state with f. The chunk passed to f aliases buf and
// is only valid during the call.
func ReadLoop[S any](buf []byte, initial S, f func(S, []byte) S) kont.Eff[S] {
	return ReadBind(buf, func(n int) kont.Eff[S] {
		if n == 0 {
			return kont.Pure(initial)
		}
		return ReadLoop(buf, f(initial, buf[:n]), f)
	})
}

// ExprReadLoop is the Expr-world ReadLoop.
func ExprReadLoop[S any](buf []byte, initial S, f func(S, []byte) S) kont.Expr[S] {
	return ExprReadBind(buf, func(n int) kont.Expr[S] {
		if n == 0 {
			return kont.ExprReturn(initial)
		}
		return ExprReadLoop(buf, f(initial, buf[:n]), f)
	})
}

// WriteAll writes each chunk in order, flushes, and closes the channel.
func WriteAll(chunks ...[]byte) kont.Eff[struct{}] {
	if len(chunks) == 0 {
		return CloseDone(struct{}{})
	}
	return WriteThen(chunks[0], FlushThen(WriteAll(chunks[1:]...)))
}

// ExprWriteAll is the Expr-world WriteAll.
func ExprWriteAll(chunks ...[]byte) kont.Expr[struct{}] {
	if len(chunks) == 0 {
		return ExprCloseDone(struct{}{})
	}
	return ExprWriteThen(chunks[0], ExprFlushThen(ExprWriteAll(chunks[1:]...)))
}
