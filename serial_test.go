// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan_test

import (
	"strconv"
	"testing"

	"code.hybscloud.com/bytechan"
)

func TestSerialMonotonic(t *testing.T) {
	prev := bytechan.New().Serial()
	if prev == 0 {
		t.Fatal("serial 0 assigned")
	}
	for range 3 {
		s := bytechan.New().Serial()
		if s <= prev {
			t.Fatalf("serials not increasing: %d after %d", s, prev)
		}
		prev = s
	}
	if got, want := prev.String(), "ch"+strconv.FormatUint(uint64(prev), 10); got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}
