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
	"testing"

	"github.com/skeinlabs/uthreads/pkg/uthread/internal/context"
)

func TestTableAllocateLowestFree(t *testing.T) {
	tb := newTable(4, 16)
	tb.init(0, context.NewCurrent())
	tb.init(1, context.NewCurrent())

	got := tb.allocate()
	if got != 2 {
		t.Fatalf("expected slot 2, got %d", got)
	}

	tb.free(1)
	got = tb.allocate()
	if got != 1 {
		t.Fatalf("expected freed slot 1 to be reused, got %d", got)
	}
}

func TestTableAllocateFull(t *testing.T) {
	tb := newTable(2, 16)
	tb.init(0, context.NewCurrent())
	tb.init(1, context.NewCurrent())

	if got := tb.allocate(); got != -1 {
		t.Fatalf("expected -1 on a full table, got %d", got)
	}
}

func TestTableInitZeroesStack(t *testing.T) {
	tb := newTable(2, 8)
	tb.init(0, context.NewCurrent())
	s := tb.get(0)
	for i := range s.stack {
		s.stack[i] = 0xff
	}
	tb.free(0)
	tb.init(0, context.NewCurrent())
	s = tb.get(0)
	for i, b := range s.stack {
		if b != 0 {
			t.Fatalf("stack byte %d not zeroed on reuse: %x", i, b)
		}
	}
}

func TestTableGetOutOfRange(t *testing.T) {
	tb := newTable(2, 8)
	if tb.get(-1) != nil {
		t.Fatal("expected nil for negative TID")
	}
	if tb.get(5) != nil {
		t.Fatal("expected nil for out-of-range TID")
	}
	if tb.inRange(5) {
		t.Fatal("expected inRange(5) to be false for capacity 2")
	}
}

func TestTableFreeResetsSleepAndCtx(t *testing.T) {
	tb := newTable(1, 8)
	tb.init(0, context.NewCurrent())
	s := tb.get(0)
	s.sleepRemaining = 3
	tb.free(0)
	if s.live {
		t.Fatal("expected slot to be not-live after free")
	}
	if s.sleepRemaining != 0 {
		t.Fatalf("expected sleepRemaining reset to 0, got %d", s.sleepRemaining)
	}
	if s.ctx != nil {
		t.Fatal("expected ctx cleared after free")
	}
}
