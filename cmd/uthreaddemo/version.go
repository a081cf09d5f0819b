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
	"runtime"

	"github.com/google/subcommands"
)

// buildVersion is overridable at link time with -ldflags
// "-X main.buildVersion=...".
var buildVersion = "dev"

// versionCommand implements subcommands.Command for "version". This
// supplements the scenario the library itself specifies: it has no
// analogue in the thread-scheduling core, but every CLI in the pack this
// module draws its conventions from registers one.
type versionCommand struct{}

func (*versionCommand) Name() string     { return "version" }
func (*versionCommand) Synopsis() string { return "print uthreaddemo build information" }
func (*versionCommand) Usage() string    { return "version - print uthreaddemo build information\n" }
func (*versionCommand) SetFlags(*flag.FlagSet) {}

func (*versionCommand) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	fmt.Printf("uthreaddemo %s (%s)\n", buildVersion, runtime.Version())
	return subcommands.ExitSuccess
}
