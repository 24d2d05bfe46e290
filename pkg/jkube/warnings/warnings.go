/*
Copyright 2024 The Skaffold Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package warnings

import (
	"context"
	"fmt"
	"sort"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// Warner reports a configuration problem that does not stop processing.
type Warner func(format string, args ...interface{})

// Printf can be overridden for testing
var Printf Warner = func(format string, args ...interface{}) {
	log.Entry(context.Background()).Warnf(format, args...)
}

// Collect records warnings instead of logging them. Warnings are kept sorted.
type Collect struct {
	Warnings []string
}

func (c *Collect) Warnf(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
	sort.Strings(c.Warnings)
}
