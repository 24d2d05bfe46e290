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

package util

import (
	"testing"

	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestInterpolate(t *testing.T) {
	props := map[string]string{
		"project.version": "1.0.0",
		"name":            "app",
	}
	tests := []struct {
		description string
		text        string
		delimiters  []Delimiters
		expected    string
	}{
		{
			description: "no placeholder",
			text:        "kind: Service",
			expected:    "kind: Service",
		},
		{
			description: "both default delimiters",
			text:        "image: @name@:${project.version}",
			expected:    "image: app:1.0.0",
		},
		{
			description: "unknown keys are kept",
			text:        "${unknown} @other@",
			expected:    "${unknown} @other@",
		},
		{
			description: "mail addresses are not keys",
			text:        "owner: dev@example.com @name@",
			expected:    "owner: dev@example.com app",
		},
		{
			description: "explicit delimiters only",
			text:        "[[name]] ${name}",
			delimiters:  []Delimiters{{Start: "[[", End: "]]"}},
			expected:    "app ${name}",
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			t.CheckDeepEqual(test.expected, Interpolate(test.text, props, test.delimiters))
		})
	}
}

func TestExtractDelimiters(t *testing.T) {
	tests := []struct {
		filter     string
		expected   Delimiters
		shouldSkip bool
	}{
		{filter: "${*}", expected: Delimiters{Start: "${", End: "}"}},
		{filter: "@*@", expected: Delimiters{Start: "@", End: "@"}},
		{filter: "@", expected: Delimiters{Start: "@", End: "@"}},
		{filter: "*}", expected: Delimiters{Start: "*}", End: "*}"}},
		{filter: "a*b*c", expected: Delimiters{Start: "a*b*c", End: "a*b*c"}},
		{filter: "", shouldSkip: true},
		{filter: "false", shouldSkip: true},
	}
	for _, test := range tests {
		testutil.Run(t, test.filter, func(t *testutil.T) {
			d, ok := ExtractDelimiters(test.filter)

			t.CheckDeepEqual(!test.shouldSkip, ok)
			t.CheckDeepEqual(test.expected, d)
		})
	}
}
