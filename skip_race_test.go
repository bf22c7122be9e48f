// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bytechan_test

import (
	"testing"

	"code.hybscloud.com/bytechan"
)

// skipRace skips tests whose goroutines synchronize through atomix words
// (the flushed size, the slot, the suspension state) or the lfq free list.
// The race detector tracks per-variable happens-before and cannot see
// their explicit memory ordering, producing false positives.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: SPSC uses cross-variable memory ordering")
}

// raceOptions disables segment recycling so channel tests still run
// under the race detector.
func raceOptions() []bytechan.Option {
	return []bytechan.Option{bytechan.WithSegmentPool(0)}
}
