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

import "time"

// preemptionSource is the periodic virtual-time driver behind preemption.
// There are two implementations, selected by build tag: timer_unix.go
// arms a real ITIMER_VIRTUAL timer and listens for SIGVTALRM;
// timer_portable.go falls back to a time.Ticker on platforms without a
// virtual-time signal. Both feed the same Scheduler.onTick, which advances
// sleep counters and requests a switch; the switch itself is made by
// schedulerStepLocked, reached from Checkpoint, Block, SleepQuantums and
// Exit.
type preemptionSource interface {
	// arm starts the periodic driver at the given quantum, calling tick
	// on every period until stop is called. arm returns an error if the
	// underlying OS facility could not be installed.
	arm(quantum time.Duration, tick func()) error
	// stop disarms the driver. It is safe to call stop without a prior
	// successful arm.
	stop()
}
