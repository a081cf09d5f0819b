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

import "errors"

// Sentinel errors returned by Scheduler's API surface. Every public
// operation reports failure this way rather than by panicking; callers
// should compare with errors.Is.
var (
	// ErrInvalidArgument covers non-positive quantum/sleep counts and nil
	// entry functions.
	ErrInvalidArgument = errors.New("uthread: invalid argument")

	// ErrThreadTableFull is returned by Create when every slot is live.
	ErrThreadTableFull = errors.New("uthread: thread table full")

	// ErrNotLive is returned when an operation targets a TID that is out
	// of range or whose slot does not currently hold a live thread.
	ErrNotLive = errors.New("uthread: thread not live")

	// ErrMainThreadForbidden is returned when an operation that may not
	// target the main thread (TID 0) is asked to do so.
	ErrMainThreadForbidden = errors.New("uthread: operation not permitted on main thread")

	// ErrAlreadyInitialized is returned by Init if called more than once
	// on the same Scheduler.
	ErrAlreadyInitialized = errors.New("uthread: scheduler already initialized")

	// ErrNotInitialized is returned by operations attempted before Init
	// has succeeded.
	ErrNotInitialized = errors.New("uthread: scheduler not initialized")
)
