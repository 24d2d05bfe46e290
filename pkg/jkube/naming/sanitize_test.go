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
	"testing"

	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"my__Group...Name", "my__group.name"},
		{"a___b", "a__b"},
		{"Hello World!", "helloworld"},
		{"web-app", "web-app"},
		{"v1..2", "v1.2"},
		{"", ""},
	}
	for _, test := range tests {
		testutil.Run(t, test.input, func(t *testutil.T) {
			t.CheckDeepEqual(test.expected, Sanitize(test.input))
		})
	}
}
