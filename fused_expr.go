// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"code.hybscloud.com/kont"
)

// Pre-boxed operations and frames for the payload-free effects.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprFlush       kont.Erased = Flush{}
	exprClose       kont.Erased = Close{}
)

func identityResume(v kont.Erased) kont.Erased { return v }

// thenEffect suspends on op and then continues with next.
func thenEffect[B any](op kont.Erased, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// bindEffect suspends on op and passes its result of type T to f.
func bindEffect[T, B any](op kont.Erased, f func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = bindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func bindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(T) kont.Expr[B])
	result := f(current.(T))
	return kont.Erased(result.Value), result.Frame
}

// ExprWriteThen writes data and then continues with next.
// Fuses ExprPerform(Write{Data: data}) + ExprThen.
func ExprWriteThen[B any](data []byte, next kont.Expr[B]) kont.Expr[B] {
	return thenEffect(Write{Data: data}, next)
}

// ExprReadBind reads into buf and passes the byte count to f.
// Fuses ExprPerform(Read{Buf: buf}) + ExprBind.
func ExprReadBind[B any](buf []byte, f func(int) kont.Expr[B]) kont.Expr[B] {
	return bindEffect(Read{Buf: buf}, f)
}

// ExprAwaitBind waits for want readable bytes and passes the outcome to f.
func ExprAwaitBind[B any](want int, f func(bool) kont.Expr[B]) kont.Expr[B] {
	return bindEffect(AwaitContent{Min: want}, f)
}

// ExprFlushThen flushes and then continues with next.
func ExprFlushThen[B any](next kont.Expr[B]) kont.Expr[B] {
	return thenEffect(exprFlush, next)
}

// ExprCloseDone closes the channel and returns a.
// Fuses ExprPerform(Close{}) + ExprThen + ExprReturn.
func ExprCloseDone[A any](a A) kont.Expr[A] {
	return thenEffect(exprClose, kont.Expr[A]{Value: a, Frame: exprReturnFrame})
}
