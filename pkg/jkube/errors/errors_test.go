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

package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestStatusCodeOf(t *testing.T) {
	tests := []struct {
		description string
		err         error
		expected    StatusCode
		isConfig    bool
	}{
		{
			description: "plain error",
			err:         fmt.Errorf("boom"),
			expected:    UnknownError,
		},
		{
			description: "config error",
			err:         ConfigError(ConfigMissingName, "missing %s", "name"),
			expected:    ConfigMissingName,
			isConfig:    true,
		},
		{
			description: "wrapped with fmt",
			err:         fmt.Errorf("resolving: %w", ConfigError(ConfigInvalidPort, "bad port")),
			expected:    ConfigInvalidPort,
			isConfig:    true,
		},
		{
			description: "wrapped with pkg/errors",
			err:         errors.Wrap(NewError(fmt.Errorf("io"), ActionableErr{Message: "reading file", ErrCode: EnrichSideChannelIO}), "enriching"),
			expected:    EnrichSideChannelIO,
		},
		{
			description: "deadlock",
			err:         NewErrorWithStatusCode(ActionableErr{ErrCode: StartOrderDeadlock}),
			expected:    StartOrderDeadlock,
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			t.CheckDeepEqual(test.expected, StatusCodeOf(test.err))
			t.CheckDeepEqual(test.isConfig, IsConfigError(test.err))
		})
	}
}

func TestErrDefMessage(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		cause := fmt.Errorf("no such file")
		err := NewError(cause, ActionableErr{Message: "reading annotation file", ErrCode: EnrichSideChannelIO})

		t.CheckDeepEqual("reading annotation file", err.Error())
		t.CheckErrorIs(cause, err)
		t.CheckDeepEqual("START_ORDER_DEADLOCK", NewErrorWithStatusCode(ActionableErr{ErrCode: StartOrderDeadlock}).Error())
	})
}
