// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"strconv"

	"code.hybscloud.com/atomix"
)

// Serial identifies a channel in logs. New assigns increasing values
// starting at 1; zero never names a channel.
type Serial uint32

func (s Serial) String() string {
	return "ch" + strconv.FormatUint(uint64(s), 10)
}

var channels atomix.Uint32

func nextSerial() Serial {
	return Serial(channels.Add(1))
}
