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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/skeinlabs/uthreads/internal/uconfig"
	"github.com/skeinlabs/uthreads/pkg/uthread"
)

// runCommand drives three worker threads through the classic
// sleep/block/loop scenario: T1 sleeps a few quantums then exits, T2
// raises a flag and blocks on itself until the main thread unblocks it,
// T3 loops a few times calling Checkpoint so the cooperative preemption
// driver gets a chance to hand the CPU elsewhere. Main busy-waits for the
// flag, unblocks T2, then busy-waits again for all three to finish.
type runCommand struct {
	configPath string
	flagValues *uconfig.FlagValues
}

func (*runCommand) Name() string     { return "run" }
func (*runCommand) Synopsis() string { return "run the three-thread scheduling demo" }
func (*runCommand) Usage() string {
	return "run [flags] - run the three-thread scheduling demo\n"
}

func (r *runCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&r.configPath, "config", uconfig.DefaultConfigPath(), "path to a TOML config file")
	r.flagValues = uconfig.RegisterFlags(fs)
}

func (r *runCommand) Execute(_ context.Context, fs *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := uconfig.LoadFile(r.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	cfg = r.flagValues.ApplyFlags(fs, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	logger := uthread.NewTextLogger()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	sched := uthread.NewScheduler(
		uthread.WithMaxThreads(cfg.MaxThreads),
		uthread.WithStackBytes(cfg.StackBytes),
		uthread.WithLogger(logger),
	)
	if err := sched.Init(cfg.QuantumUsecs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer sched.Stop()

	var (
		mu       sync.Mutex
		flagSet  bool
		finished = map[uthread.TID]bool{}
	)
	markDone := func(tid uthread.TID) {
		mu.Lock()
		finished[tid] = true
		mu.Unlock()
	}

	var t1, t2, t3 uthread.TID

	t1, err = sched.Create(func() {
		fmt.Println("T1: sleeping 3 quantums")
		if err := sched.SleepQuantums(3); err != nil {
			logger.WithError(err).Error("T1: SleepQuantums failed")
		}
		fmt.Println("T1: woke up, exiting")
		markDone(t1)
		_ = sched.Exit(t1)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	t2, err = sched.Create(func() {
		fmt.Println("T2: raising flag")
		mu.Lock()
		flagSet = true
		mu.Unlock()
		if err := sched.Block(t2); err != nil {
			logger.WithError(err).Error("T2: Block failed")
		}
		fmt.Println("T2: unblocked, exiting")
		markDone(t2)
		_ = sched.Exit(t2)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	t3, err = sched.Create(func() {
		for i := 1; i <= 3; i++ {
			fmt.Printf("T3: iteration %d\n", i)
			sched.Checkpoint()
		}
		fmt.Println("T3: done looping, exiting")
		markDone(t3)
		_ = sched.Exit(t3)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	waitFor := func(done func() bool) error {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = time.Millisecond
		b.MaxInterval = 50 * time.Millisecond
		b.MaxElapsedTime = 30 * time.Second
		return backoff.Retry(func() error {
			sched.Checkpoint()
			if done() {
				return nil
			}
			return fmt.Errorf("still waiting")
		}, b)
	}

	if err := waitFor(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return flagSet
	}); err != nil {
		fmt.Fprintln(os.Stderr, "main: timed out waiting for T2's flag:", err)
		return subcommands.ExitFailure
	}

	fmt.Println("main: observed flag, unblocking T2")
	if err := sched.Unblock(t2); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := waitFor(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return finished[t1] && finished[t2] && finished[t3]
	}); err != nil {
		fmt.Fprintln(os.Stderr, "main: timed out waiting for threads to finish:", err)
		return subcommands.ExitFailure
	}

	fmt.Println("main: all threads finished")
	return subcommands.ExitSuccess
}
