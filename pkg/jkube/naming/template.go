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

package naming

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Lookup resolves the value of a single placeholder.
type Lookup func() string

// placeholder matches %<options><letter> where options is any run of non-letters (printf flags, width, precision).
var placeholder = regexp.MustCompile(`%([^a-zA-Z]*)([a-zA-Z])`)

// Replacer substitutes %x placeholders in a string using a table of lookups.
// A Replacer can be shared between goroutines.
type Replacer struct {
	mu      sync.Mutex
	lookups map[string]Lookup
}

// NewReplacer creates a Replacer for the given placeholder letters.
func NewReplacer(lookups map[string]Lookup) *Replacer {
	return &Replacer{lookups: lookups}
}

// Replace resolves all placeholders of input, scanning from left to right.
// Options are applied as a %<options>s format to the looked up value.
func (r *Replacer) Replace(input string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out strings.Builder
	rest := input
	for {
		loc := placeholder.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		options := rest[loc[2]:loc[3]]
		key := rest[loc[4]:loc[5]]
		lookup, found := r.lookups[key]
		if !found {
			return "", fmt.Errorf("no value known for placeholder %%%s in %q", key, input)
		}
		out.WriteString(rest[:loc[0]])
		out.WriteString(fmt.Sprintf("%"+options+"s", lookup()))
		rest = rest[loc[1]:]
	}
	out.WriteString(rest)
	return out.String(), nil
}
