// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan_test

import (
	"io"
	"strings"
	"testing"

	"code.hybscloud.com/bytechan"
)

// readLines collects lines until io.EOF.
func readLines(tb testing.TB, ch *bytechan.Channel, ending bytechan.LineEnding) []string {
	tb.Helper()
	ctx := testContext(tb)
	var lines []string
	for {
		var sb strings.Builder
		n, err := ch.ReadLine(ctx, &sb, -1, ending)
		if err == io.EOF {
			return lines
		}
		if err != nil {
			tb.Fatalf("ReadLine: %v", err)
		}
		if int(n) != sb.Len() {
			tb.Fatalf("ReadLine returned %d, wrote %d", n, sb.Len())
		}
		lines = append(lines, sb.String())
	}
}

func TestReadLineLF(t *testing.T) {
	ch := newTestChannel(t)
	feed(t, ch, true, "one\ntw", "o\n\nlast")
	got := strings.Join(readLines(t, ch, bytechan.LineLF), "|")
	if want := "one|two||last"; got != want {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestReadLineCRLF(t *testing.T) {
	ch := newTestChannel(t)
	feed(t, ch, true, "a\r", "\nb\nc\r\n")
	got := strings.Join(readLines(t, ch, bytechan.LineCRLF), "|")
	if want := "a|b\nc"; got != want {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestReadLineLenient(t *testing.T) {
	ch := newTestChannel(t)
	feed(t, ch, true, "a\r\nb\n", "x\r", "y\r", "\nc\r")
	got := strings.Join(readLines(t, ch, bytechan.LineLenient), "|")
	if want := "a|b|x\ry|c\r"; got != want {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestReadLineLenientLimit(t *testing.T) {
	ch := newTestChannel(t)
	feed(t, ch, true, "abc\r\nabcd\n")
	ctx := testContext(t)

	var sb strings.Builder
	n, err := ch.ReadLine(ctx, &sb, 3, bytechan.LineLenient)
	if err != nil || n != 3 || sb.String() != "abc" {
		t.Fatalf("ReadLine = %d %q %v, want 3 abc nil", n, sb.String(), err)
	}

	sb.Reset()
	n, err = ch.ReadLine(ctx, &sb, 3, bytechan.LineLenient)
	expectError(t, err, bytechan.ErrLimitExceeded)
	if n != 3 || sb.String() != "abc" {
		t.Fatalf("ReadLine = %d %q, want 3 abc", n, sb.String())
	}
	if got := readAll(t, ch); got != "d\n" {
		t.Fatalf("rest = %q, want %q", got, "d\n")
	}
}

func TestReadLineEmptyStream(t *testing.T) {
	ch := newTestChannel(t)
	ch.Close()
	for _, ending := range []bytechan.LineEnding{bytechan.LineLF, bytechan.LineCRLF, bytechan.LineLenient} {
		if _, err := ch.ReadLine(testContext(t), nil, -1, ending); err != io.EOF {
			t.Fatalf("ending %d: got %v, want io.EOF", ending, err)
		}
	}
}
