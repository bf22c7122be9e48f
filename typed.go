// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"context"
	"encoding/binary"
	"math"
)

// Fixed-width integer and float helpers. Reads are exact: a stream that
// ends inside a value yields io.ErrUnexpectedEOF.

// ReadUint16 reads a uint16 in the given byte order.
func (c *Channel) ReadUint16(ctx context.Context, order binary.ByteOrder) (uint16, error) {
	var b [2]byte
	if err := c.ReadFull(ctx, b[:]); err != nil {
		return 0, err
	}
	return order.Uint16(b[:]), nil
}

// ReadUint32 reads a uint32 in the given byte order.
func (c *Channel) ReadUint32(ctx context.Context, order binary.ByteOrder) (uint32, error) {
	var b [4]byte
	if err := c.ReadFull(ctx, b[:]); err != nil {
		return 0, err
	}
	return order.Uint32(b[:]), nil
}

// ReadUint64 reads a uint64 in the given byte order.
func (c *Channel) ReadUint64(ctx context.Context, order binary.ByteOrder) (uint64, error) {
	var b [8]byte
	if err := c.ReadFull(ctx, b[:]); err != nil {
		return 0, err
	}
	return order.Uint64(b[:]), nil
}

func (c *Channel) ReadInt16(ctx context.Context, order binary.ByteOrder) (int16, error) {
	v, err := c.ReadUint16(ctx, order)
	return int16(v), err
}

func (c *Channel) ReadInt32(ctx context.Context, order binary.ByteOrder) (int32, error) {
	v, err := c.ReadUint32(ctx, order)
	return int32(v), err
}

func (c *Channel) ReadInt64(ctx context.Context, order binary.ByteOrder) (int64, error) {
	v, err := c.ReadUint64(ctx, order)
	return int64(v), err
}

// ReadFloat32 reads an IEEE 754 binary32 value.
func (c *Channel) ReadFloat32(ctx context.Context, order binary.ByteOrder) (float32, error) {
	v, err := c.ReadUint32(ctx, order)
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE 754 binary64 value.
func (c *Channel) ReadFloat64(ctx context.Context, order binary.ByteOrder) (float64, error) {
	v, err := c.ReadUint64(ctx, order)
	return math.Float64frombits(v), err
}

// WriteUint16 writes v in the given byte order.
func (c *Channel) WriteUint16(ctx context.Context, v uint16, order binary.ByteOrder) error {
	var b [2]byte
	order.PutUint16(b[:], v)
	_, err := c.WriteContext(ctx, b[:])
	return err
}

// WriteUint32 writes v in the given byte order.
func (c *Channel) WriteUint32(ctx context.Context, v uint32, order binary.ByteOrder) error {
	var b [4]byte
	order.PutUint32(b[:], v)
	_, err := c.WriteContext(ctx, b[:])
	return err
}

// WriteUint64 writes v in the given byte order.
func (c *Channel) WriteUint64(ctx context.Context, v uint64, order binary.ByteOrder) error {
	var b [8]byte
	order.PutUint64(b[:], v)
	_, err := c.WriteContext(ctx, b[:])
	return err
}

func (c *Channel) WriteInt16(ctx context.Context, v int16, order binary.ByteOrder) error {
	return c.WriteUint16(ctx, uint16(v), order)
}

func (c *Channel) WriteInt32(ctx context.Context, v int32, order binary.ByteOrder) error {
	return c.WriteUint32(ctx, uint32(v), order)
}

func (c *Channel) WriteInt64(ctx context.Context, v int64, order binary.ByteOrder) error {
	return c.WriteUint64(ctx, uint64(v), order)
}

func (c *Channel) WriteFloat32(ctx context.Context, v float32, order binary.ByteOrder) error {
	return c.WriteUint32(ctx, math.Float32bits(v), order)
}

func (c *Channel) WriteFloat64(ctx context.Context, v float64, order binary.ByteOrder) error {
	return c.WriteUint64(ctx, math.Float64bits(v), order)
}
