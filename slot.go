// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"code.hybscloud.com/atomix"
)

// Slot states. The slot records which role, if any, is parked.
// slotClosed is terminal; the close cause lives in the close token.
const (
	slotEmpty uint32 = iota
	slotReadWaiting
	slotWriteWaiting
	slotClosed
)

// slot is the single coordination word shared by both roles.
type slot struct {
	state atomix.Uint32
}

func (s *slot) load() uint32 { return s.state.Load() }

func (s *slot) cas(old, new uint32) bool { return s.state.CompareAndSwap(old, new) }

// close moves the slot to slotClosed and returns the state it replaced.
func (s *slot) close() uint32 {
	for {
		prev := s.state.Load()
		if prev == slotClosed || s.state.CompareAndSwap(prev, slotClosed) {
			return prev
		}
	}
}

// role selects one side of a channel.
type role uint8

const (
	roleRead role = iota
	roleWrite
)

func (r role) waiting() uint32 {
	if r == roleRead {
		return slotReadWaiting
	}
	return slotWriteWaiting
}

func (r role) opposite() role { return r ^ 1 }

func (r role) op() string {
	if r == roleRead {
		return opRead
	}
	return opWrite
}

func (r role) String() string { return r.op() }
