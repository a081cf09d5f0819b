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
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler is the single-process thread scheduler: a thread table, a
// ready queue, and the state (current TID, pending preemption) the
// scheduling decision needs. All of it is guarded by mu, which plays the
// role a signal mask plays in a preemptive single-threaded scheduler —
// every public operation mutates the table and queue only while holding
// it, and releases it before handing off to another thread's context.
type Scheduler struct {
	mu sync.Mutex

	table *table
	queue *readyQueue

	currentTID  TID
	initialized bool
	quantum     time.Duration

	// preemptRequested is set by onTick (the real, asynchronous
	// virtual-time driver) on every tick at which the ready queue is
	// non-empty. It stays set, including across handoffs made by Block,
	// SleepQuantums or Exit, until Checkpoint consumes it. Checkpoint is the cooperative safe point a long-running
	// entry function is expected to call periodically. See DESIGN.md for
	// why this split exists: there is no safe, portable way to halt an
	// arbitrary goroutine's execution from the outside the way a real
	// SIGVTALRM handler halts a thread's.
	preemptRequested bool

	preempt preemptionSource
	log     *logrus.Entry
}

// NewScheduler constructs a Scheduler with the given options applied. The
// returned Scheduler is not usable until Init succeeds.
func NewScheduler(opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.preempt == nil {
		cfg.preempt = newPreemptionSource()
	}
	return &Scheduler{
		table:   newTable(cfg.maxThreads, cfg.stackBytes),
		queue:   newReadyQueue(cfg.maxThreads),
		preempt: cfg.preempt,
		log:     cfg.logger.WithField("component", "uthread"),
	}
}

// tickSleepersLocked decrements sleepRemaining for every live, blocked,
// sleeping thread, waking any that reach zero. The table is iterated in
// ascending TID order, which is also the tie-break order used for
// threads that wake on the same tick.
func (s *Scheduler) tickSleepersLocked() {
	for i := range s.table.slots {
		t := &s.table.slots[i]
		if t.live && t.state == Blocked && t.sleepRemaining > 0 {
			t.sleepRemaining--
			if t.sleepRemaining == 0 {
				t.state = Ready
				s.queue.enqueue(TID(i))
			}
		}
	}
}

// schedulerStepLocked requeues the current outgoing thread if it is still
// Running, then picks the next ready thread to run. When the outgoing
// thread was still Running and nothing else is ready, it is picked again
// and returned itself (self-continuation). It returns nil only when there
// is genuinely nowhere to go: the outgoing thread is Blocked or no longer
// live and the ready queue holds no live, Ready entry.
func (s *Scheduler) schedulerStepLocked() *tcb {
	out := s.table.get(s.currentTID)
	if out != nil && out.live && out.state == Running {
		out.state = Ready
		s.queue.enqueue(s.currentTID)
	}

	nextTID := TID(-1)
	for {
		cand, ok := s.queue.dequeue()
		if !ok {
			break
		}
		c := s.table.get(cand)
		if c != nil && c.live && c.state == Ready {
			nextTID = cand
			break
		}
		// Stale entry: the TCB died or changed state since it was
		// queued. Skip and keep looking.
	}
	if nextTID == -1 {
		return nil
	}

	next := s.table.get(nextTID)
	s.currentTID = nextTID
	next.state = Running
	return next
}

// onTick is the sole entry point the preemption driver calls, whether it
// is backed by a real SIGVTALRM (timer_unix.go) or a portable ticker
// (timer_portable.go). It always ticks sleepers, since virtual time has
// genuinely advanced by one quantum. It never performs the actual context
// switch itself — see Checkpoint for why — it only raises the flag that
// Checkpoint consumes.
func (s *Scheduler) onTick() {
	s.mu.Lock()
	s.tickSleepersLocked()
	if !s.queue.empty() {
		s.preemptRequested = true
	}
	s.mu.Unlock()
}

// Checkpoint is the cooperative preemption point: long-running entry
// functions that do not otherwise call Block, SleepQuantums, or Exit
// should call it periodically (for example once per loop iteration) to
// remain preemptible. If the preemption timer has requested a switch
// that no earlier Checkpoint has consumed (the request may have been
// raised while another thread was running), Checkpoint performs it;
// otherwise it returns immediately.
//
// This is the one place this implementation's preemption is weaker than a
// true signal-driven scheduler: a real SIGVTALRM handler can interrupt a
// thread that never calls anything, because it runs on the same OS
// thread via a real signal. Go has no safe equivalent for halting an
// arbitrary goroutine from outside it, so a thread that never reaches a
// checkpoint keeps the CPU until it calls Block, SleepQuantums, or Exit.
// See DESIGN.md.
func (s *Scheduler) Checkpoint() {
	s.mu.Lock()
	if !s.preemptRequested {
		s.mu.Unlock()
		return
	}
	s.preemptRequested = false
	self := s.table.get(s.currentTID)
	next := s.schedulerStepLocked()
	s.mu.Unlock()

	if next == nil {
		return
	}
	next.ctx.Resume()
	self.ctx.Park()
}
