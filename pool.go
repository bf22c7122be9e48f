// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"code.hybscloud.com/lfq"
)

// segmentPool recycles drained segments from the reader back to the writer.
//
// The free list is a bounded lock-free SPSC queue: the reader is the only
// producer (put) and the writer the only consumer (get), which is exactly
// the single-reader/single-writer discipline of a Channel. A full free list
// drops the segment; an empty one allocates.
type segmentPool struct {
	free    lfq.SPSC[*segment]
	size    int
	enabled bool
}

func (p *segmentPool) init(segmentSize, capacity int) {
	p.size = segmentSize
	if capacity <= 0 {
		return
	}
	// lfq rounds capacity up to a power of two and requires at least 2.
	p.free.Init(max(capacity, 2))
	p.enabled = true
}

// get returns an empty segment. Writer side only.
func (p *segmentPool) get() *segment {
	if p.enabled {
		if s, err := p.free.Dequeue(); err == nil {
			return s
		}
	}
	return &segment{buf: make([]byte, p.size)}
}

// put recycles a drained segment. Reader side only.
func (p *segmentPool) put(s *segment) {
	if !p.enabled || len(s.buf) != p.size {
		return
	}
	s.r, s.w, s.next = 0, 0, nil
	_ = p.free.Enqueue(&s)
}
