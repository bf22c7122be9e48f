// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config is the declarative form of the channel options, for hosts that
// keep settings in generic maps (decoded configuration files, flags).
type Config struct {
	Capacity    int  `mapstructure:"capacity"`
	SegmentSize int  `mapstructure:"segment_size"`
	SegmentPool int  `mapstructure:"segment_pool"`
	AutoFlush   bool `mapstructure:"auto_flush"`
}

// DefaultConfig returns the configuration New uses without options.
func DefaultConfig() Config {
	return Config{
		Capacity:    DefaultCapacity,
		SegmentSize: DefaultSegmentSize,
		SegmentPool: DefaultSegmentPool,
	}
}

// DecodeConfig overlays the keys of raw onto DefaultConfig.
// Values are weakly typed ("4096" decodes into an int); unknown keys are errors.
func DecodeConfig(raw map[string]any) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("bytechan: decode config: %w", err)
	}
	if cfg.Capacity < 1 || cfg.SegmentSize < 1 || cfg.SegmentPool < 0 {
		return Config{}, fmt.Errorf("bytechan: invalid config %+v", cfg)
	}
	return cfg, nil
}

// Options converts cfg into channel options.
func (cfg Config) Options() []Option {
	return []Option{
		WithCapacity(cfg.Capacity),
		WithSegmentSize(cfg.SegmentSize),
		WithSegmentPool(cfg.SegmentPool),
		WithAutoFlush(cfg.AutoFlush),
	}
}
