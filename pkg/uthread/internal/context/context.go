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

// Package context provides the context-switch primitive for uthread: the
// Go-safe replacement for the non-local jump (sigsetjmp/siglongjmp plus
// ABI-specific stack-pointer and program-counter mangling) that a C
// implementation of this library would use.
//
// Go offers no portable way to capture and later resume an arbitrary point
// of execution on a borrowed stack, so a Context here is backed by a real
// goroutine that is parked on a one-token semaphore whenever it is not the
// designated "current" thread. Bootstrapping a new thread is simply
// starting that goroutine parked, so that its first Resume calls the
// entry function on its own goroutine stack; the Go runtime grows and
// owns that stack, which is the idiomatic replacement for manually
// carving a stack pointer out of a fixed buffer.
package context

import (
	"context"

	"golang.org/x/sync/semaphore"
)

var background = context.Background()

// Context is one thread's execution context: a parked goroutine plus the
// single-token semaphore that gates whether it may run.
type Context struct {
	sem *semaphore.Weighted
}

// New bootstraps a context that, once first Resumed, runs entry on its own
// goroutine. entry must not return normally in ordinary use (the caller is
// expected to terminate the thread through the scheduler's Exit operation);
// if it does return, the goroutine simply ends.
func New(entry func()) *Context {
	c := &Context{sem: semaphore.NewWeighted(1)}
	// Acquire the single token immediately so the goroutine below blocks
	// in Park until the first Resume call releases it. The semaphore's own
	// count, not any separate bootstrap signal, is what makes this safe
	// regardless of whether Resume or the goroutine below reaches its
	// Park call first.
	_ = c.sem.Acquire(background, 1)
	go func() {
		c.Park()
		entry()
	}()
	return c
}

// NewCurrent wraps the calling goroutine itself as a Context, rather than
// bootstrapping a new one. It is used for the thread that calls Init: that
// thread already exists and is already "running," so there is no entry
// function to bootstrap and no goroutine to spawn — only the token
// bookkeeping needs to start in the "currently holds the CPU" state, ready
// for a future Park call (made from within that same goroutine, by calling
// a Scheduler method) to block it correctly.
func NewCurrent() *Context {
	c := &Context{sem: semaphore.NewWeighted(1)}
	_ = c.sem.Acquire(background, 1)
	return c
}

// Resume transfers the CPU to this context: the analogue of
// restore_context. It does not block.
func (c *Context) Resume() {
	c.sem.Release(1)
}

// Park blocks the calling goroutine until this context is next Resumed:
// the analogue of save_context, except that in Go the "resume here"
// continuation is simply this function returning, rather than a second
// return from a captured jump buffer.
func (c *Context) Park() {
	_ = c.sem.Acquire(background, 1)
}
