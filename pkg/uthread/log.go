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

// NewTextLogger returns a logrus logger preconfigured with the text
// formatter, suitable for passing to WithLogger from a CLI or demo
// binary. Full-timestamp mode is enabled so log lines are directly
// comparable across quantum-sized gaps, which tends to matter more for
// this library's output than for typical request-scoped logging.
func NewTextLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}
