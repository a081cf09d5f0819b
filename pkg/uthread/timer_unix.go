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

//go:build unix

package uthread

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// unixPreemption arms a real ITIMER_VIRTUAL interval timer and listens for
// SIGVTALRM: a virtual-time interval timer armed at init to fire every
// quantum of CPU time consumed by the process. Virtual time only
// advances while this process is actually on-CPU, so quanta measure
// executed time rather than wall time even under load from other
// processes.
type unixPreemption struct {
	stopCh chan struct{}
	doneCh chan struct{}
}

func newPreemptionSource() preemptionSource {
	return &unixPreemption{}
}

func (u *unixPreemption) arm(quantum time.Duration, tick func()) error {
	usecs := quantum.Microseconds()
	if usecs <= 0 {
		return fmt.Errorf("uthread: invalid quantum %s", quantum)
	}
	tv := unix.Timeval{Sec: usecs / 1000000, Usec: usecs % 1000000}
	it := unix.Itimerval{
		Value:    tv,
		Interval: tv,
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGVTALRM)

	if err := unix.Setitimer(unix.ITIMER_VIRTUAL, &it, nil); err != nil {
		signal.Stop(sigCh)
		return fmt.Errorf("uthread: setitimer: %w", err)
	}

	u.stopCh = make(chan struct{})
	u.doneCh = make(chan struct{})
	go func() {
		defer close(u.doneCh)
		for {
			select {
			case <-sigCh:
				tick()
			case <-u.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()
	return nil
}

func (u *unixPreemption) stop() {
	if u.stopCh == nil {
		return
	}
	var zero unix.Itimerval
	_ = unix.Setitimer(unix.ITIMER_VIRTUAL, &zero, nil)
	close(u.stopCh)
	<-u.doneCh
}
