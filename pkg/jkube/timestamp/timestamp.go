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

package timestamp

import (
	"fmt"
	"regexp"
	"time"
)

var format = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3,})?(Z|[+-]\d{2}:\d{2})$`)

// Timestamp is an instant with nanosecond precision as printed by the Docker daemon,
// e.g. 2014-11-24T22:34:00.761764812Z.
type Timestamp struct {
	t time.Time
}

// Parse parses an extended ISO-8601 timestamp with optional fractional seconds.
func Parse(s string) (Timestamp, error) {
	if !format.MatchString(s) {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{t: t}, nil
}

// FromTime wraps t.
func FromTime(t time.Time) Timestamp {
	return Timestamp{t: t}
}

func (ts Timestamp) Time() time.Time {
	return ts.t
}

// Compare returns -1, 0 or 1 when ts is before, equal to or after other.
func (ts Timestamp) Compare(other Timestamp) int {
	switch {
	case ts.t.Before(other.t):
		return -1
	case ts.t.After(other.t):
		return 1
	}
	return 0
}

func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Compare(other) < 0
}

func (ts Timestamp) IsZero() bool {
	return ts.t.IsZero()
}

func (ts Timestamp) String() string {
	return ts.t.Format(time.RFC3339Nano)
}
