// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytechan

import (
	"context"

	"code.hybscloud.com/atomix"
)

const (
	suspIdle uint32 = iota
	suspWaiting
	suspResumed
)

// suspension is the reusable parking spot of one role.
//
// It is allocated once with the channel and cycles
// idle → waiting → resumed → idle for every await. The wake channel has
// capacity 1 and only the goroutine that wins waiting → resumed sends on it,
// so a resume never blocks and parking never allocates.
type suspension struct {
	state atomix.Uint32
	wake  chan struct{}
	// cause is written by the resumer before the send on wake and read by
	// the parked goroutine after the receive.
	cause error
}

func (s *suspension) init() {
	s.wake = make(chan struct{}, 1)
}

// register moves idle → waiting. It fails while a previous cycle is still
// parked or has an unconsumed wake.
func (s *suspension) register() bool {
	return s.state.CompareAndSwap(suspIdle, suspWaiting)
}

// isWaiting reports whether a goroutine is registered and not yet resumed.
func (s *suspension) isWaiting() bool {
	return s.state.Load() == suspWaiting
}

func (s *suspension) resume() bool { return s.complete(nil) }

func (s *suspension) resumeWithError(err error) bool { return s.complete(err) }

// close resolves a registered waiter when the channel terminates.
// err is nil for a clean close.
func (s *suspension) close(err error) bool { return s.complete(err) }

func (s *suspension) complete(err error) bool {
	if !s.state.CompareAndSwap(suspWaiting, suspResumed) {
		return false
	}
	s.cause = err
	s.wake <- struct{}{}
	return true
}

// park waits for the registered cycle to be resumed or for ctx to end and
// returns the resume error or ctx.Err(). The suspension stays claimed until
// release, so the caller can clear the slot before the role may register
// again.
func (s *suspension) park(ctx context.Context) error {
	select {
	case <-s.wake:
	case <-ctx.Done():
		if s.state.CompareAndSwap(suspWaiting, suspResumed) {
			return ctx.Err()
		}
		// A resumer won the race; its wake is in flight.
		<-s.wake
	}
	return s.cause
}

// release ends a parked cycle.
func (s *suspension) release() {
	s.cause = nil
	s.state.Store(suspIdle)
}

// withdraw cancels a registration that was never parked on.
// It returns the error of a resume that raced with the withdrawal.
func (s *suspension) withdraw() error {
	if s.state.CompareAndSwap(suspWaiting, suspIdle) {
		return nil
	}
	<-s.wake
	err := s.cause
	s.release()
	return err
}
