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
	"regexp"
	"testing"
	"time"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestImageNameFormatter(t *testing.T) {
	now := time.Date(2020, 4, 21, 10, 30, 15, 42*int(time.Millisecond), time.UTC)

	tests := []struct {
		description string
		project     project.JavaProject
		name        string
		expected    string
	}{
		{
			description: "group is last segment of group id",
			project:     project.JavaProject{GroupID: "org.eclipse.jkube", ArtifactID: "Demo_App", Version: "1.0"},
			name:        "%g/%a:%v",
			expected:    "jkube/demo_app:1.0",
		},
		{
			description: "trailing dots in group id",
			project:     project.JavaProject{GroupID: "io.Fabric8..", ArtifactID: "app", Version: "1.0"},
			name:        "%g/%a",
			expected:    "fabric8/app",
		},
		{
			description: "user property overrides group",
			project: project.JavaProject{
				GroupID:    "org.eclipse.jkube",
				ArtifactID: "app",
				Properties: map[string]string{"jkube.image.user": "team"},
			},
			name:     "%g/%a",
			expected: "team/app",
		},
		{
			description: "user property is sanitized",
			project: project.JavaProject{
				ArtifactID: "app",
				Properties: map[string]string{"jkube.image.user": "My..Team___Ops"},
			},
			name:     "%g/%a",
			expected: "my.team__ops/app",
		},
		{
			description: "latest for snapshots",
			project:     project.JavaProject{ArtifactID: "app", Version: "1.0-SNAPSHOT"},
			name:        "%a:%l",
			expected:    "app:latest",
		},
		{
			description: "release version for latest",
			project:     project.JavaProject{ArtifactID: "app", Version: "1.0"},
			name:        "%a:%l",
			expected:    "app:1.0",
		},
		{
			description: "plain version kept",
			project:     project.JavaProject{ArtifactID: "app", Version: "1.0-SNAPSHOT"},
			name:        "%a:%v",
			expected:    "app:1.0-SNAPSHOT",
		},
		{
			description: "snapshot timestamp tag",
			project:     project.JavaProject{ArtifactID: "app", Version: "1.0-SNAPSHOT"},
			name:        "%a:%t",
			expected:    "app:1.0-snapshot-200421-103015-0042",
		},
		{
			description: "timestamp tag of release",
			project:     project.JavaProject{ArtifactID: "app", Version: "2.1"},
			name:        "%a:%t",
			expected:    "app:2.1",
		},
		{
			description: "no placeholders",
			project:     project.JavaProject{ArtifactID: "app"},
			name:        "registry/fixed:1",
			expected:    "registry/fixed:1",
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			p := test.project

			actual, err := NewImageNameFormatter(&p, now).FormatString(test.name)

			t.CheckErrorAndDeepEqual(false, err, test.expected, actual)
		})
	}
}

func TestImageNameFormatterSnapshotPattern(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		f := NewImageNameFormatter(&project.JavaProject{Version: "1.0-SNAPSHOT"}, time.Now())

		tag, err := f.FormatString("%t")

		t.CheckNoError(err)
		t.CheckTrue(regexp.MustCompile(`^1\.0-snapshot-\d{6}-\d{6}-\d{4}$`).MatchString(tag))
	})
}

func TestImageNameFormatterNil(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		f := NewImageNameFormatter(&project.JavaProject{}, time.Now())

		name, err := f.Format(nil)
		t.CheckNoError(err)
		t.CheckNil(name)

		in := "%a"
		_, err = NewImageNameFormatter(&project.JavaProject{ArtifactID: "x"}, time.Now()).Format(&in)
		t.CheckNoError(err)
	})
}
