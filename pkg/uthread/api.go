// Copyright 2026 The uthreads Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package uthread

import (
	"os"
	"time"

	"github.com/skeinlabs/uthreads/pkg/uthread/internal/context"
)

// EntryFn is the body of a thread created by Create. An entry function
// must eventually call Exit on its own TID (or simply return, which has
// the same effect as falling off the end of a C thread function: the
// goroutine ends, but the scheduler is never told, so the thread's slot
// leaks as live). Callers that want cooperative preemption to work inside
// a long loop should call Scheduler.Checkpoint periodically.
type EntryFn func()

// Init brings the scheduler up: it adopts the calling goroutine as the
// main thread (TID 0, which Create and Exit both refuse to touch) and
// arms the preemption driver at the given quantum, expressed in
// microseconds. Init may only be called once per Scheduler.
func (s *Scheduler) Init(quantumUsecs int) error {
	if quantumUsecs <= 0 {
		return ErrInvalidArgument
	}

	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.quantum = time.Duration(quantumUsecs) * time.Microsecond
	s.table.init(mainTID, context.NewCurrent())
	main := s.table.get(mainTID)
	main.state = Running
	s.currentTID = mainTID
	s.initialized = true
	s.mu.Unlock()

	if err := s.preempt.arm(s.quantum, s.onTick); err != nil {
		s.log.WithError(err).Fatal("uthread: failed to arm preemption timer")
	}
	s.log.WithFields(map[string]interface{}{
		"quantum_usecs": quantumUsecs,
		"max_threads":   cap(s.table.slots),
	}).Info("uthread: scheduler initialized")
	return nil
}

// Stop disarms the preemption driver, so a Go process embedding a
// Scheduler (tests, or a long-lived host program that starts and stops
// schedulers) can shut one down cleanly instead of leaking the timer
// goroutine.
func (s *Scheduler) Stop() {
	s.preempt.stop()
}

// Create allocates a new thread running entry and places it on the ready
// queue. It returns the allocated TID, or ErrThreadTableFull if the table
// has no free slot.
func (s *Scheduler) Create(entry EntryFn) (TID, error) {
	if entry == nil {
		return 0, ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return 0, ErrNotInitialized
	}
	tid := s.table.allocate()
	if tid == -1 {
		return 0, ErrThreadTableFull
	}
	ctx := context.New(func() { entry() })
	s.table.init(tid, ctx)
	t := s.table.get(tid)
	t.state = Ready
	s.queue.enqueue(tid)
	s.log.WithField("tid", int(tid)).Debug("uthread: thread created")
	return tid, nil
}

// Exit terminates the thread identified by tid, freeing its slot for
// reuse. If tid is the calling thread, Exit hands the CPU to the next
// ready thread before returning; if no thread is ready, the process
// terminates, since there is no runnable work left.
func (s *Scheduler) Exit(tid TID) error {
	s.mu.Lock()
	if tid == mainTID {
		s.mu.Unlock()
		return ErrMainThreadForbidden
	}
	if !s.table.inRange(tid) || !s.table.get(tid).live {
		s.mu.Unlock()
		return ErrNotLive
	}

	self := tid == s.currentTID
	s.table.free(tid)
	s.log.WithField("tid", int(tid)).Debug("uthread: thread exited")

	if !self {
		s.mu.Unlock()
		return nil
	}

	next := s.schedulerStepLocked()
	s.mu.Unlock()

	if next == nil {
		s.log.Info("uthread: no runnable threads remain, exiting")
		os.Exit(0)
	}
	next.ctx.Resume()
	// The calling goroutine belongs to the thread that just exited and is
	// expected to return immediately after this call; returning here lets
	// that goroutine wind down normally instead of ever being resumed
	// again.
	return nil
}

// Block marks tid as blocked, removing it from scheduling consideration
// until a matching Unblock. Blocking the calling thread yields the CPU
// immediately. If no other thread is ready when the calling thread blocks
// itself, the call returns without actually yielding: the thread keeps
// running despite being marked Blocked, until some later point when
// another thread becomes ready. This edge case is deliberately left as
// is rather than papered over; see DESIGN.md.
func (s *Scheduler) Block(tid TID) error {
	s.mu.Lock()
	if tid == mainTID {
		s.mu.Unlock()
		return ErrMainThreadForbidden
	}
	if !s.table.inRange(tid) || !s.table.get(tid).live {
		s.mu.Unlock()
		return ErrNotLive
	}
	t := s.table.get(tid)
	if t.state == Blocked {
		s.mu.Unlock()
		return nil
	}
	t.state = Blocked

	if tid != s.currentTID {
		s.mu.Unlock()
		return nil
	}

	next := s.schedulerStepLocked()
	self := t
	s.mu.Unlock()

	if next == nil {
		return nil
	}
	next.ctx.Resume()
	self.ctx.Park()
	return nil
}

// Unblock marks tid ready again and places it on the ready queue. It is a
// no-op if tid is not currently blocked. Unblock also clears any
// remaining sleep count: a thread woken early by an explicit Unblock does
// not carry a stale countdown into its next sleep. See DESIGN.md.
func (s *Scheduler) Unblock(tid TID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.table.inRange(tid) || !s.table.get(tid).live {
		return ErrNotLive
	}
	t := s.table.get(tid)
	if t.state != Blocked {
		return nil
	}
	t.sleepRemaining = 0
	t.state = Ready
	s.queue.enqueue(tid)
	return nil
}

// SleepQuantums blocks the calling thread for at least n scheduler
// quantums. The calling thread may not be the main thread. As with
// Block, if no other thread is ready when the calling thread sleeps, the
// call returns without yielding the CPU.
func (s *Scheduler) SleepQuantums(n int) error {
	if n <= 0 {
		return ErrInvalidArgument
	}

	s.mu.Lock()
	if s.currentTID == mainTID {
		s.mu.Unlock()
		return ErrMainThreadForbidden
	}
	self := s.table.get(s.currentTID)
	self.sleepRemaining = n
	self.state = Blocked

	next := s.schedulerStepLocked()
	s.mu.Unlock()

	if next == nil {
		return nil
	}
	next.ctx.Resume()
	self.ctx.Park()
	return nil
}
