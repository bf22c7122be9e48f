// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"context"

	"code.hybscloud.com/kont"
)

// errorDispatcher matches kont error operations (Throw, Catch) over error.
type errorDispatcher interface {
	DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
}

// channelHandler handles channel and error effects.
// Channel ops park on the channel past iox.ErrWouldBlock; a terminal
// channel error or a Throw short-circuits to Left.
// Value type: passed to the evaluator on the stack.
type channelHandler[R any] struct {
	ctx    context.Context
	ch     *Channel
	errCtx *kont.ErrorContext[error]
}

// Dispatch implements kont.Handler. Dispatch order: Channel → Error.
func (h channelHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if cop, ok := op.(channelDispatcher); ok {
		v, err := dispatchWait(h.ctx, h.ch, cop)
		if err != nil {
			return kont.Left[error, R](err), false
		}
		return v, true
	}
	if eop, ok := op.(errorDispatcher); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[error, R](h.errCtx.Err), false
		}
		return v, true
	}
	panic("bytechan: unhandled effect in channelHandler")
}

// Exec runs a Cont-world protocol against ch on the calling goroutine.
// Returns Right with the result, or Left with the first terminal channel
// error, ctx error, or thrown error.
func Exec[R any](ctx context.Context, ch *Channel, protocol kont.Eff[R]) kont.Either[error, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	var errCtx kont.ErrorContext[error]
	h := channelHandler[R]{ctx: ctx, ch: ch, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecExpr runs an Expr-world protocol against ch on the calling goroutine.
// Results are reported as by Exec.
func ExecExpr[R any](ctx context.Context, ch *Channel, protocol kont.Expr[R]) kont.Either[error, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	var errCtx kont.ErrorContext[error]
	h := channelHandler[R]{ctx: ctx, ch: ch, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}
