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

import "testing"

// TestSchedulerStepSkipsStaleQueueEntries checks that a TID left in the
// ready queue past the death or restate of its slot is skipped rather
// than scheduled.
func TestSchedulerStepSkipsStaleQueueEntries(t *testing.T) {
	s, _ := newTestScheduler(t)

	// A TID can end up stale in the queue if, for example, the thread it
	// named exits without ever being dequeued first (Exit on a queued,
	// non-current thread leaves exactly such an entry behind). Simulate it
	// directly: enqueue a slot that is not live.
	s.queue.enqueue(TID(7))

	tid, err := s.Create(func() {})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.mu.Lock()
	next := s.schedulerStepLocked()
	s.mu.Unlock()

	if next == nil {
		t.Fatal("expected schedulerStepLocked to skip the stale entry and find tid")
	}
	if next.tid != tid {
		t.Fatalf("expected %d, got %d", tid, next.tid)
	}
}

// TestAtMostOneRunning checks that after any scheduling decision, exactly
// one live thread is in the Running state.
func TestAtMostOneRunning(t *testing.T) {
	s, fp := newTestScheduler(t)

	// Each thread blocks itself as soon as it runs, so Checkpoint's handoff
	// passes through all three and comes back to main instead of parking
	// main behind a thread that never yields.
	for i := 0; i < 3; i++ {
		var tid TID
		var err error
		tid, err = s.Create(func() {
			_ = s.Block(tid)
			select {}
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	fp.tick()
	s.Checkpoint()

	running := 0
	for _, ti := range s.Snapshot() {
		if ti.State == Running {
			running++
		}
	}
	if running != 1 {
		t.Fatalf("expected exactly one Running thread, got %d", running)
	}
}

// TestBlockIsIdempotent checks that blocking an already-blocked thread
// does not error out and leaves the thread Blocked.
func TestBlockIsIdempotent(t *testing.T) {
	s, _ := newTestScheduler(t)

	tid, err := s.Create(func() { select {} })
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Block(tid); err != nil {
		t.Fatalf("first Block: %v", err)
	}
	if err := s.Block(tid); err != nil {
		t.Fatalf("second Block: %v", err)
	}

	for _, ti := range s.Snapshot() {
		if ti.TID == tid && ti.State != Blocked {
			t.Fatalf("expected thread to remain Blocked, got %s", ti.State)
		}
	}
}

// TestUnblockClearsSleepRemaining checks that an explicit Unblock clears
// any pending sleep countdown so it cannot linger into the thread's next
// sleep.
func TestUnblockClearsSleepRemaining(t *testing.T) {
	s, _ := newTestScheduler(t)

	tid, err := s.Create(func() { select {} })
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.mu.Lock()
	t2 := s.table.get(tid)
	t2.state = Blocked
	t2.sleepRemaining = 5
	s.mu.Unlock()

	if err := s.Unblock(tid); err != nil {
		t.Fatalf("Unblock: %v", err)
	}

	for _, ti := range s.Snapshot() {
		if ti.TID == tid && ti.SleepRemaining != 0 {
			t.Fatalf("expected sleepRemaining cleared, got %d", ti.SleepRemaining)
		}
	}
}

// TestSleepingThreadsOrdering checks the btree-backed diagnostic view
// orders sleeping threads by soonest-to-wake, breaking ties by TID.
func TestSleepingThreadsOrdering(t *testing.T) {
	s, _ := newTestScheduler(t)

	var tids []TID
	for i := 0; i < 3; i++ {
		tid, err := s.Create(func() { select {} })
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		tids = append(tids, tid)
	}

	s.mu.Lock()
	s.table.get(tids[0]).state = Blocked
	s.table.get(tids[0]).sleepRemaining = 5
	s.table.get(tids[1]).state = Blocked
	s.table.get(tids[1]).sleepRemaining = 2
	s.table.get(tids[2]).state = Blocked
	s.table.get(tids[2]).sleepRemaining = 2
	s.mu.Unlock()

	got := s.SleepingThreads()
	want := []TID{tids[1], tids[2], tids[0]}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestReadyQueueDepthReflectsCreates checks that ReadyQueueDepth tracks
// the number of threads actually queued for a turn.
func TestReadyQueueDepthReflectsCreates(t *testing.T) {
	s, _ := newTestScheduler(t)

	if got := s.ReadyQueueDepth(); got != 0 {
		t.Fatalf("expected depth 0 before any Create, got %d", got)
	}

	for i, want := 0, 1; i < 3; i, want = i+1, want+1 {
		if _, err := s.Create(func() { select {} }); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if got := s.ReadyQueueDepth(); got != want {
			t.Fatalf("expected depth %d after %d creates, got %d", want, i+1, got)
		}
	}
}
