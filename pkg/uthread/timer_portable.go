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

//go:build !unix

package uthread

import "time"

// tickerPreemption is the portable fallback preemption driver for
// platforms with no SIGVTALRM-equivalent virtual-time signal. It measures
// wall time, not CPU time consumed by the process, which is the one
// place this driver deviates from true virtual-time semantics.
type tickerPreemption struct {
	ticker *time.Ticker
	stopCh chan struct{}
	doneCh chan struct{}
}

func newPreemptionSource() preemptionSource {
	return &tickerPreemption{}
}

func (p *tickerPreemption) arm(quantum time.Duration, tick func()) error {
	p.ticker = time.NewTicker(quantum)
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	go func() {
		defer close(p.doneCh)
		for {
			select {
			case <-p.ticker.C:
				tick()
			case <-p.stopCh:
				return
			}
		}
	}()
	return nil
}

func (p *tickerPreemption) stop() {
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	close(p.stopCh)
	<-p.doneCh
}
