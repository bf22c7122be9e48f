// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan_test

import (
	"testing"

	"code.hybscloud.com/bytechan"
	"code.hybscloud.com/iox"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := bytechan.DecodeConfig(map[string]any{
		"capacity":     "16",
		"segment_size": 4,
		"auto_flush":   "true",
	})
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	want := bytechan.Config{
		Capacity:    16,
		SegmentSize: 4,
		SegmentPool: bytechan.DefaultSegmentPool,
		AutoFlush:   true,
	}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestDecodeConfigDefaults(t *testing.T) {
	cfg, err := bytechan.DecodeConfig(nil)
	if err != nil {
		t.Fatalf("DecodeConfig(nil): %v", err)
	}
	if cfg != bytechan.DefaultConfig() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestDecodeConfigRejects(t *testing.T) {
	cases := map[string]map[string]any{
		"unknown key":   {"capacty": 1},
		"zero capacity": {"capacity": 0},
		"not a number":  {"segment_size": "big"},
		"negative pool": {"segment_pool": -1},
	}
	for name, raw := range cases {
		if _, err := bytechan.DecodeConfig(raw); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := bytechan.DefaultConfig()
	cfg.Capacity = 2
	cfg.AutoFlush = true
	ch := newTestChannel(t, cfg.Options()...)

	// Auto-flush makes the write visible; capacity 2 makes the next one wait.
	mustWrite(t, ch, "ab")
	if ch.AvailableForRead() != 2 {
		t.Fatalf("AvailableForRead = %d, want 2", ch.AvailableForRead())
	}
	if _, err := ch.TryWrite([]byte("c")); !iox.IsWouldBlock(err) {
		t.Fatalf("TryWrite at capacity: got %v, want ErrWouldBlock", err)
	}
}
