// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"code.hybscloud.com/kont"
)

// WriteThen writes data and then continues with next.
// Fuses Perform(Write{Data: data}) + Then.
func WriteThen[B any](data []byte, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Write{Data: data}), next)
}

// ReadBind reads into buf and passes the byte count to f.
// Fuses Perform(Read{Buf: buf}) + Bind.
func ReadBind[B any](buf []byte, f func(int) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Read{Buf: buf}), f)
}

// AwaitBind waits for want readable bytes and passes the outcome to f.
// Fuses Perform(AwaitContent{Min: want}) + Bind.
func AwaitBind[B any](want int, f func(bool) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(AwaitContent{Min: want}), f)
}

// FlushThen flushes and then continues with next.
func FlushThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Flush{}), next)
}

// CloseDone closes the channel and returns a.
// Fuses Perform(Close{}) + Then + Pure.
func CloseDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Close{}), kont.Pure(a))
}
