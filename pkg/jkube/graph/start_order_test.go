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

package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func img(name string, deps ...string) *image.ImageConfiguration {
	c := &image.ImageConfiguration{Name: name, Alias: name}
	if len(deps) > 0 {
		c.Run = &image.RunConfiguration{DependsOn: deps}
	}
	return c
}

func names(images []*image.ImageConfiguration) []string {
	var out []string
	for _, i := range images {
		out = append(out, i.Name)
	}
	return out
}

func existing(containers ...string) ContainerExists {
	return func(_ context.Context, name string) (bool, error) {
		for _, c := range containers {
			if c == name {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestResolveImages(t *testing.T) {
	tests := []struct {
		description string
		images      []*image.ImageConfiguration
		containers  []string
		expected    []string
	}{
		{
			description: "chain",
			images:      []*image.ImageConfiguration{img("a"), img("b", "a"), img("c", "b")},
			expected:    []string{"a", "b", "c"},
		},
		{
			description: "reverse declared chain",
			images:      []*image.ImageConfiguration{img("c", "b"), img("b", "a"), img("a")},
			expected:    []string{"a", "b", "c"},
		},
		{
			description: "independent images keep input order",
			images:      []*image.ImageConfiguration{img("x"), img("y"), img("z")},
			expected:    []string{"x", "y", "z"},
		},
		{
			description: "independent images first",
			images:      []*image.ImageConfiguration{img("web", "db"), img("db"), img("cache")},
			expected:    []string{"db", "cache", "web"},
		},
		{
			description: "dependency satisfied by external container",
			images:      []*image.ImageConfiguration{img("a", "external")},
			containers:  []string{"external"},
			expected:    []string{"a"},
		},
		{
			description: "dependency by alias",
			images: []*image.ImageConfiguration{
				{Name: "jkube/web", Run: &image.RunConfiguration{Links: []string{"database:db"}}},
				{Name: "postgres:13", Alias: "database"},
			},
			expected: []string{"postgres:13", "jkube/web"},
		},
		{
			description: "empty",
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			ordered, err := ResolveImages(context.Background(), test.images, existing(test.containers...))

			t.CheckNoError(err)
			t.CheckDeepEqual(test.expected, names(ordered))
		})
	}
}

func TestResolveImagesDeadlock(t *testing.T) {
	tests := []struct {
		description string
		images      []*image.ImageConfiguration
		expected    string
	}{
		{
			description: "mutual cycle",
			images:      []*image.ImageConfiguration{img("a", "b"), img("b", "a")},
			expected:    "a --> b\nb --> a",
		},
		{
			description: "missing dependency",
			images:      []*image.ImageConfiguration{img("a"), img("b", "a", "ghost")},
			expected:    "b --> ghost",
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			_, err := ResolveImages(context.Background(), test.images, existing())

			t.CheckErrorContains(test.expected, err)
			t.CheckDeepEqual(jkerrors.StartOrderDeadlock, jkerrors.StatusCodeOf(err))
		})
	}
}

func TestResolveNilContainerQuery(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		_, err := ResolveImages(context.Background(), []*image.ImageConfiguration{img("a", "external")}, nil)

		t.CheckErrorContains("a --> external", err)
	})
}

func TestResolveContainerQueryError(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		failing := func(context.Context, string) (bool, error) { return false, errors.New("daemon down") }

		_, err := ResolveImages(context.Background(), []*image.ImageConfiguration{img("a", "external")}, failing)

		t.CheckErrorContains("daemon down", err)
	})
}

type countingResolvable struct {
	name string
	deps []string
	seen *int
}

func (c countingResolvable) Name() string  { return c.name }
func (c countingResolvable) Alias() string { return "" }
func (c countingResolvable) Dependencies() []string {
	*c.seen++
	return c.deps
}

func TestResolveStopsWithoutProgress(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		var seen int
		r := countingResolvable{name: "a", deps: []string{"a-dep"}, seen: &seen}

		_, err := Resolve(context.Background(), []Resolvable{r}, existing())

		t.CheckError(true, err)
		// first pass, one resolution pass and the diagnostic
		t.CheckDeepEqual(3, seen)
	})
}
