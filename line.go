// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"context"
	"io"
)

// LineEnding selects how ReadLine recognizes the end of a line.
type LineEnding uint8

const (
	// LineLF ends lines at "\n".
	LineLF LineEnding = iota
	// LineCRLF ends lines at "\r\n". A bare "\n" is line content.
	LineCRLF
	// LineLenient ends lines at "\n" and strips one preceding "\r".
	// A lone "\r" does not end a line: it stays line content, and a
	// trailing one at end of stream is returned with the last line.
	LineLenient
)

var (
	lineLF   = NewDelimiter([]byte{'\n'})
	lineCRLF = NewDelimiter([]byte{'\r', '\n'})
	crByte   = []byte{'\r'}
)

// ReadLine forwards one line to sink without its terminator and returns the
// number of bytes forwarded. The last line of a stream may be unterminated.
// io.EOF is returned only when the channel ended with nothing left to read.
// limit bounds the line length as in [Delimiter.ReadUntil].
func (c *Channel) ReadLine(ctx context.Context, sink io.Writer, limit int64, ending LineEnding) (int64, error) {
	if sink == nil {
		sink = io.Discard
	}
	var (
		n     int64
		found bool
		err   error
	)
	switch ending {
	case LineLF:
		n, found, err = lineLF.scan(ctx, c, sink, limit, true)
	case LineCRLF:
		n, found, err = lineCRLF.scan(ctx, c, sink, limit, true)
	case LineLenient:
		// The stripper enforces the limit on line content.
		w := crStripper{w: sink, limit: limit}
		_, found, err = lineLF.scan(ctx, c, &w, -1, true)
		if err == nil && !found {
			err = w.release()
		}
		n = w.n
	default:
		panic("bytechan: invalid line ending")
	}
	if err != nil {
		return n, err
	}
	if !found && n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// crStripper holds back a trailing '\r' until it knows whether the line
// ends right after it.
type crStripper struct {
	w     io.Writer
	n     int64
	limit int64
	cr    bool
}

func (s *crStripper) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := s.release(); err != nil {
		return 0, err
	}
	body := p
	if p[len(p)-1] == '\r' {
		body = p[:len(p)-1]
	}
	if n, err := s.put(body); err != nil {
		return n, err
	}
	s.cr = len(body) < len(p)
	return len(p), nil
}

// release forwards a held '\r' that turned out to be line content.
func (s *crStripper) release() error {
	if !s.cr {
		return nil
	}
	s.cr = false
	_, err := s.put(crByte)
	return err
}

func (s *crStripper) put(p []byte) (int, error) {
	e := emitter{w: s.w, n: s.n, limit: s.limit}
	n, err := e.emit(p)
	s.n = e.n
	return n, err
}
