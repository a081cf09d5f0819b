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
	"github.com/google/btree"
	"github.com/mohae/deepcopy"
)

// ThreadInfo is a read-only view of one live thread's bookkeeping,
// returned by Snapshot. It is a copy: mutating it has no effect on the
// scheduler.
type ThreadInfo struct {
	TID            TID
	State          State
	SleepRemaining int
	Stack          []byte
}

// ReadyQueueDepth reports how many TIDs are currently queued for a turn,
// stale entries included. It is a diagnostic counterpart to Snapshot: a
// depth that keeps climbing while Checkpoint calls stay rare is a sign an
// entry function isn't reaching its cooperative preemption points.
func (s *Scheduler) ReadyQueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}

// Snapshot returns a point-in-time copy of every live thread's
// bookkeeping. It is intended for tests and diagnostic tooling, not for
// scheduling decisions: by the time it returns, the real table may
// already have moved on. The per-thread stack buffer is deep-copied so
// that callers can never observe (or corrupt) the buffer a running
// thread is still using.
func (s *Scheduler) Snapshot() []ThreadInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ThreadInfo, 0, len(s.table.slots))
	for i := range s.table.slots {
		t := &s.table.slots[i]
		if !t.live {
			continue
		}
		var stackCopy []byte
		if t.stack != nil {
			stackCopy = deepcopy.Copy(t.stack).([]byte)
		}
		out = append(out, ThreadInfo{
			TID:            t.tid,
			State:          t.state,
			SleepRemaining: t.sleepRemaining,
			Stack:          stackCopy,
		})
	}
	return out
}

// sleepItem orders threads by remaining sleep quantums, breaking ties by
// TID to match the ascending-TID wake order the tick path uses.
type sleepItem struct {
	remaining int
	tid       TID
}

func (a sleepItem) Less(than btree.Item) bool {
	b := than.(sleepItem)
	if a.remaining != b.remaining {
		return a.remaining < b.remaining
	}
	return a.tid < b.tid
}

// SleepingThreads returns the TIDs of currently sleeping threads ordered
// by soonest-to-wake. It is a read-only diagnostic view built fresh on
// each call from a btree.BTree; it does not replace or shortcut the
// per-quantum linear scan tickSleepersLocked performs, which remains the
// only code path that actually advances sleep counters.
func (s *Scheduler) SleepingThreads() []TID {
	s.mu.Lock()
	bt := btree.New(8)
	for i := range s.table.slots {
		t := &s.table.slots[i]
		if t.live && t.state == Blocked && t.sleepRemaining > 0 {
			bt.ReplaceOrInsert(sleepItem{remaining: t.sleepRemaining, tid: t.tid})
		}
	}
	s.mu.Unlock()

	out := make([]TID, 0, bt.Len())
	bt.Ascend(func(item btree.Item) bool {
		out = append(out, item.(sleepItem).tid)
		return true
	})
	return out
}
