// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run creates a channel, runs a writer and a reader Cont-world protocol
// against it, and returns both results. See RunExpr.
func Run[A, B any](writer kont.Eff[A], reader kont.Eff[B], opts ...Option) (kont.Either[error, A], kont.Either[error, B]) {
	return RunExpr(Reify(writer), Reify(reader), opts...)
}

// RunExpr creates a channel, runs a writer and a reader Expr-world protocol
// against it, and returns both results. Both sides are interleaved on the
// calling goroutine with adaptive backoff (iox.Backoff) when neither can
// make progress. Does not spawn goroutines.
//
// When the writer completes, the channel is closed: cleanly on Right, with
// the writer's error on Left. When the reader completes first, the channel
// is canceled so a writer still producing fails with ErrClosedWrite.
func RunExpr[A, B any](writer kont.Expr[A], reader kont.Expr[B], opts ...Option) (kont.Either[error, A], kont.Either[error, B]) {
	ch := New(opts...)
	resultW, suspW := Step[A](writer)
	resultR, suspR := Step[B](reader)
	if suspW == nil {
		closeAfter(ch, resultW)
	}
	if suspR == nil && suspW != nil {
		ch.Cancel(nil)
	}
	var bo iox.Backoff
	for suspW != nil || suspR != nil {
		progress := false
		if suspW != nil {
			var err error
			resultW, suspW, err = Advance[A](ch, suspW)
			if err == nil {
				progress = true
				if suspW == nil {
					closeAfter(ch, resultW)
				}
			}
		}
		if suspR != nil {
			var err error
			resultR, suspR, err = Advance[B](ch, suspR)
			if err == nil {
				progress = true
				if suspR == nil && suspW != nil {
					ch.Cancel(nil)
				}
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultW, resultR
}

func closeAfter[A any](ch *Channel, result kont.Either[error, A]) {
	if err, ok := result.GetLeft(); ok {
		ch.Cancel(err)
		return
	}
	ch.CloseWithError(nil)
}
