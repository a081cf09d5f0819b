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
	"github.com/skeinlabs/uthreads/pkg/uthread/internal/context"
)

// tcb is a thread control block: the per-slot bookkeeping record for one
// thread. The table never resizes; slots are reused across create/exit
// cycles.
type tcb struct {
	tid   TID
	live  bool
	state State

	ctx *context.Context

	// stack is retained purely for data-model fidelity — a fixed-size
	// byte buffer owned by this TCB — and for tests that assert on
	// per-thread footprint; the goroutine backing ctx owns the real,
	// growable Go stack that actually executes entry. It is zeroed on
	// reuse.
	stack []byte

	// sleepRemaining is non-zero only while state == Blocked and the
	// thread is sleeping.
	sleepRemaining int
}

// table is the fixed-capacity thread table (component C1).
type table struct {
	slots      []tcb
	stackBytes int
}

func newTable(maxThreads, stackBytes int) *table {
	return &table{
		slots:      make([]tcb, maxThreads),
		stackBytes: stackBytes,
	}
}

// allocate scans from index 0 and returns the first non-live slot's TID,
// or -1 if the table is full.
func (t *table) allocate() TID {
	for i := range t.slots {
		if !t.slots[i].live {
			return TID(i)
		}
	}
	return -1
}

// init populates a freshly allocated slot. The stack buffer is zeroed
// whether or not it was previously used, matching uthread_create's
// memset.
func (t *table) init(tid TID, ctx *context.Context) {
	s := &t.slots[tid]
	if cap(s.stack) < t.stackBytes {
		s.stack = make([]byte, t.stackBytes)
	} else {
		s.stack = s.stack[:t.stackBytes]
		for i := range s.stack {
			s.stack[i] = 0
		}
	}
	s.tid = tid
	s.live = true
	s.ctx = ctx
	s.sleepRemaining = 0
}

// free marks a slot not-live and resets its sleep counter; the stack
// buffer is left in place for reuse by a later create on the same slot.
func (t *table) free(tid TID) {
	s := &t.slots[tid]
	s.live = false
	s.sleepRemaining = 0
	s.ctx = nil
}

func (t *table) get(tid TID) *tcb {
	if tid < 0 || int(tid) >= len(t.slots) {
		return nil
	}
	return &t.slots[tid]
}

func (t *table) inRange(tid TID) bool {
	return tid >= 0 && int(tid) < len(t.slots)
}
