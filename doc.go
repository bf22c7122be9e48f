// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bytechan provides an in-process byte channel with one reader,
// one writer, explicit flushing, and backpressure.
//
// Readers park while no data is flushed; writers park while the flushed but
// unread bytes reach the channel capacity. Parking costs no allocation.
//
// # Architecture
//
//   - Buffers: Writer, flush, and reader buffers are chains of fixed-size segments. [Channel.Flush] and the reader's refill splice whole chains under one short mutex. Drained segments return to the writer through a lock-free SPSC free list from [code.hybscloud.com/lfq].
//   - Coordination: One atomic slot records which role is parked. Each role owns a reusable suspension. A second concurrent operation of the same role fails the parked one with [ErrConcurrentIO].
//   - Termination: [Channel.Close] flushes and closes cleanly so the reader drains and sees [io.EOF]. [Channel.Cancel] and [Channel.CloseWithError] discard unread data and report the cause on both sides.
//   - Scanning: [Delimiter] precomputes a KMP partial match table. [Channel.ReadUntil] and [Channel.ReadLine] stream bytes to a sink without buffering the line.
//
// # API Topologies
//
//   - io: [Channel] implements io.Reader, io.Writer, io.Closer, io.WriterTo, and io.ReaderFrom.
//   - Context-aware: [Channel.ReadContext], [Channel.WriteContext], [Channel.AwaitContent], [Channel.AwaitFreeSpace].
//   - Non-blocking: [Channel.TryRead] and [Channel.TryWrite] return [code.hybscloud.com/iox.ErrWouldBlock].
//   - Effects: [Read], [Write], [Flush], [Close], [AwaitContent] as [code.hybscloud.com/kont] operations, with fused constructors [WriteThen], [ReadBind], [AwaitBind], [FlushThen], [CloseDone] and their Expr variants.
//
// # Integration
//
//   - Stepping: [Step] and [Advance] evaluate a protocol one effect at a time without parking, for proactor loops.
//   - Blocking: [Exec] and [ExecExpr] park on the channel. [Run] drives a writer and a reader protocol on one goroutine.
//   - Observability: [WithLogger] takes a logrus.FieldLogger; [NewMetrics] registers Prometheus counters shared by any number of channels.
//   - Configuration: [DecodeConfig] reads a [Config] from a generic map.
//
// # Example
//
//	ch := bytechan.New()
//	go func() {
//		ch.Write([]byte("hello\n"))
//		ch.Close()
//	}()
//	var line bytes.Buffer
//	ch.ReadLine(ctx, &line, -1, bytechan.LineLF)
package bytechan
