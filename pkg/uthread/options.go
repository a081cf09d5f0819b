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

import "github.com/sirupsen/logrus"

// DefaultMaxThreads is the default thread table capacity.
const DefaultMaxThreads = 100

// DefaultStackBytes is the default per-thread stack buffer size.
const DefaultStackBytes = 4096

// Option configures a Scheduler at construction time.
type Option func(*config)

type config struct {
	maxThreads int
	stackBytes int
	logger     *logrus.Logger
	preempt    preemptionSource
}

func defaultConfig() config {
	return config{
		maxThreads: DefaultMaxThreads,
		stackBytes: DefaultStackBytes,
		logger:     logrus.StandardLogger(),
	}
}

// WithMaxThreads overrides the thread table capacity.
func WithMaxThreads(n int) Option {
	return func(c *config) { c.maxThreads = n }
}

// WithStackBytes overrides the per-thread stack buffer size.
func WithStackBytes(n int) Option {
	return func(c *config) { c.stackBytes = n }
}

// WithLogger overrides the logrus logger used for lifecycle and fatal
// diagnostics: failure to arm the preemption timer during Init is
// treated as fatal, and the process terminates with a diagnostic.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) { c.logger = l }
}

// withPreemptionSource overrides the preemption driver. It is unexported
// because only tests need to substitute a fake timer; production callers
// always get the build-tagged default (timer_unix.go or
// timer_portable.go).
func withPreemptionSource(p preemptionSource) Option {
	return func(c *config) { c.preempt = p }
}
