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

package image

import (
	"testing"

	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestParseAutoPullMode(t *testing.T) {
	tests := []struct {
		value      string
		expected   string
		pullAbsent bool
		shouldErr  bool
	}{
		{value: "on", expected: "on", pullAbsent: true},
		{value: "TRUE", expected: "on", pullAbsent: true},
		{value: "once", expected: "once", pullAbsent: true},
		{value: "False", expected: "off"},
		{value: "always", expected: "always"},
		{value: "sometimes", shouldErr: true},
	}
	for _, test := range tests {
		testutil.Run(t, test.value, func(t *testutil.T) {
			mode, err := ParseAutoPullMode(test.value)

			t.CheckErrorAndDeepEqual(test.shouldErr, err, test.expected, mode.String())
			if !test.shouldErr {
				t.CheckDeepEqual(test.pullAbsent, mode.DoPullIfNotPresent())
			}
		})
	}
}

func TestParseAutoPullModeListsValidValues(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		_, err := ParseAutoPullMode("sometimes")
		t.CheckErrorContains("must be one of: on, true, once, off, false, always", err)
	})
}

func TestParseImagePullPolicy(t *testing.T) {
	tests := []struct {
		value     string
		expected  string
		shouldErr bool
	}{
		{value: "Always", expected: "Always"},
		{value: "ifnotpresent", expected: "IfNotPresent"},
		{value: "IF-NOT-PRESENT", expected: "IfNotPresent"},
		{value: "never", expected: "Never"},
		{value: "Later", shouldErr: true},
	}
	for _, test := range tests {
		testutil.Run(t, test.value, func(t *testutil.T) {
			policy, err := ParseImagePullPolicy(test.value)
			t.CheckErrorAndDeepEqual(test.shouldErr, err, test.expected, policy.String())
		})
	}
}

func TestPullPolicyFromAutoPull(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		t.CheckDeepEqual("Always", PullPolicyFromAutoPull(AutoPullAlways).String())
		t.CheckDeepEqual("IfNotPresent", PullPolicyFromAutoPull(AutoPullOn).String())
		t.CheckDeepEqual("IfNotPresent", PullPolicyFromAutoPull(AutoPullOnce).String())
		t.CheckDeepEqual("Never", PullPolicyFromAutoPull(AutoPullOff).String())
	})
}
