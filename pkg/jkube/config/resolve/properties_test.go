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

package resolve

import (
	"testing"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestPropertyResolver(t *testing.T) {
	props := map[string]string{
		"docker.name":                 "jkube/app",
		"docker.alias":                "app",
		"docker.from":                 "openjdk:11",
		"docker.ports.2":              "8778",
		"docker.ports.1":              "8080",
		"docker.ports.10":             "9779",
		"docker.env.JAVA_OPTIONS":     "-Xmx64m",
		"docker.links.1":              "db:database",
		"docker.containerNamePattern": "%a-%i",
		"db.name":                     "postgres:13",
		"db.alias":                    "db",
		"db.network":                  "backend",
		"cache.name":                  "redis",
		"cache.skip":                  "true",
	}
	p := &project.JavaProject{Properties: props}

	tests := []struct {
		description string
		project     *project.JavaProject
		img         *image.ImageConfiguration
		expected    []*image.ImageConfiguration
	}{
		{
			description: "no external configuration",
			project:     p,
			img:         &image.ImageConfiguration{Name: "plain"},
			expected:    []*image.ImageConfiguration{{Name: "plain"}},
		},
		{
			description: "other external type left alone",
			project:     p,
			img:         &image.ImageConfiguration{Name: "compose", External: map[string]string{"type": "compose"}},
			expected:    []*image.ImageConfiguration{{Name: "compose", External: map[string]string{"type": "compose"}}},
		},
		{
			description: "single prefix",
			project:     p,
			img:         &image.ImageConfiguration{External: map[string]string{"type": "properties", "prefix": "docker"}},
			expected: []*image.ImageConfiguration{{
				Name:  "jkube/app",
				Alias: "app",
				Build: &image.BuildConfiguration{
					From:  "openjdk:11",
					Ports: []string{"8080", "8778", "9779"},
					Env:   map[string]string{"JAVA_OPTIONS": "-Xmx64m"},
				},
				Run: &image.RunConfiguration{
					ContainerNamePattern: "%a-%i",
					Links:                []string{"db:database"},
				},
			}},
		},
		{
			description: "prefix list expands one to many and honors skip",
			project:     p,
			img:         &image.ImageConfiguration{External: map[string]string{"type": "properties", "prefix": "db, cache, missing"}},
			expected: []*image.ImageConfiguration{{
				Name:  "postgres:13",
				Alias: "db",
				Run:   &image.RunConfiguration{Network: &image.Network{Mode: "custom", Name: "backend"}},
			}},
		},
		{
			description: "properties override declared values",
			project:     p,
			img: &image.ImageConfiguration{
				Name:     "declared",
				Build:    &image.BuildConfiguration{From: "busybox", Labels: map[string]string{"a": "b"}},
				External: map[string]string{"type": "properties", "prefix": "db"},
			},
			expected: []*image.ImageConfiguration{{
				Name:  "postgres:13",
				Alias: "db",
				Build: &image.BuildConfiguration{From: "busybox", Labels: map[string]string{"a": "b"}},
				Run:   &image.RunConfiguration{Network: &image.Network{Mode: "custom", Name: "backend"}},
			}},
		},
		{
			description: "no property group keeps the declared image",
			project:     p,
			img:         &image.ImageConfiguration{Name: "declared", External: map[string]string{"type": "properties", "prefix": "nothing"}},
			expected:    []*image.ImageConfiguration{{Name: "declared"}},
		},
		{
			description: "activation property uses the default prefix",
			project: &project.JavaProject{Properties: map[string]string{
				"jkube.imagePropertyConfiguration": "override",
				"docker.name":                      "activated",
			}},
			img:      &image.ImageConfiguration{Name: "declared"},
			expected: []*image.ImageConfiguration{{Name: "activated"}},
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			resolver := &PropertyResolver{Project: test.project}

			resolved, err := resolver.Resolve(test.img)

			t.CheckErrorAndDeepEqual(false, err, test.expected, resolved)
		})
	}
}
