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

package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestMainHelp(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		t.Override(&os.Args, []string{"jkube", "help"})

		var (
			output    bytes.Buffer
			errOutput bytes.Buffer
		)
		err := Run(&output, &errOutput)

		t.CheckNoError(err)
		t.CheckContains("Generate the Kubernetes or OpenShift manifest of the project", output.String())
		t.CheckContains("start-order", output.String())
		t.CheckContains("container-name", output.String())
		t.CheckEmpty(errOutput.String())
	})
}

func TestMainUnknownCommand(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		t.Override(&os.Args, []string{"jkube", "unknown"})

		err := Run(io.Discard, io.Discard)

		t.CheckError(true, err)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		description string
		err         error
		expected    int
	}{
		{
			description: "unknown",
			err:         errors.New("boom"),
			expected:    1,
		},
		{
			description: "configuration",
			err:         jkerrors.ConfigError(jkerrors.ConfigMissingName, "missing name"),
			expected:    2,
		},
		{
			description: "start order",
			err:         jkerrors.ConfigError(jkerrors.StartOrderDeadlock, "deadlock"),
			expected:    3,
		},
		{
			description: "resource processing",
			err:         jkerrors.ConfigError(jkerrors.ResourceProcessing, "no content"),
			expected:    4,
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			t.CheckDeepEqual(test.expected, ExitCode(test.err))
		})
	}
}
