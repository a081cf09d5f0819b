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

// Package uthread implements a cooperative-by-interface, preemptively
// scheduled user-space thread library. Each thread is backed by its own
// goroutine, and at most one of them runs at a time; the goroutines are
// not pinned to a single OS thread.
//
// A Scheduler owns a fixed-capacity thread table and a round-robin ready
// queue. Threads are created with Create, and voluntarily give up the CPU
// by calling SleepQuantums, Block, or Exit. A periodic virtual-time tick,
// driven by a real interval timer on platforms that support one (see
// timer_unix.go) and by a ticker elsewhere, requests preemption; the switch
// takes effect only when the running thread next calls Checkpoint. A
// thread that calls none of these keeps the CPU.
//
// Thread TID 0 is always the thread that called Init, and it is never
// freed. Entry functions passed to Create must terminate by calling Exit
// with their own TID; an entry function that returns without exiting
// leaves its slot live, which is a contract violation the library does not
// attempt to detect or recover from.
package uthread
