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
	"sync"
	"testing"

	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestReplace(t *testing.T) {
	lookups := map[string]Lookup{
		"a": func() string { return "alpha" },
		"b": func() string { return "beta" },
	}

	tests := []struct {
		description string
		input       string
		expected    string
		shouldErr   bool
	}{
		{
			description: "no placeholders",
			input:       "plain/name:1.0",
			expected:    "plain/name:1.0",
		},
		{
			description: "single placeholder",
			input:       "%a",
			expected:    "alpha",
		},
		{
			description: "prefix and suffix kept",
			input:       "x-%a-%b-y",
			expected:    "x-alpha-beta-y",
		},
		{
			description: "width option pads left",
			input:       "[%8a]",
			expected:    "[   alpha]",
		},
		{
			description: "left justify and precision",
			input:       "[%-6.2b]",
			expected:    "[be    ]",
		},
		{
			description: "unknown placeholder",
			input:       "%a-%z",
			shouldErr:   true,
		},
		{
			description: "empty",
			input:       "",
			expected:    "",
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			actual, err := NewReplacer(lookups).Replace(test.input)
			t.CheckErrorAndDeepEqual(test.shouldErr, err, test.expected, actual)
		})
	}
}

func TestReplaceUnknownPlaceholderMessage(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		_, err := NewReplacer(nil).Replace("img-%q")
		t.CheckErrorContains("no value known for placeholder %q", err)
	})
}

func TestReplaceConcurrent(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		r := NewReplacer(map[string]Lookup{"n": func() string { return "n" }})

		var wg sync.WaitGroup
		results := make([]string, 50)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = r.Replace(fmt.Sprintf("%%n-%d", i))
			}(i)
		}
		wg.Wait()

		for i, res := range results {
			t.CheckDeepEqual(fmt.Sprintf("n-%d", i), res)
		}
	})
}
