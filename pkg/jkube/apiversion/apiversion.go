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

package apiversion

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
)

// Parse parses a Docker API version such as "1.21" into a semantic version.
func Parse(v string) (semver.Version, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "v")
	if s == "" {
		return semver.Version{}, fmt.Errorf("%q is an invalid api version", v)
	}
	ver, err := semver.ParseTolerant(s)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%q is an invalid api version: %w", v, err)
	}
	return ver, nil
}

// MustParse parses the version and panics if there is an error.
func MustParse(v string) semver.Version {
	ver, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return ver
}

// Max returns the more capable of two API versions. An empty version loses against any other.
func Max(a, b string) (string, error) {
	if a == "" {
		return b, nil
	}
	if b == "" {
		return a, nil
	}
	va, err := Parse(a)
	if err != nil {
		return "", err
	}
	vb, err := Parse(b)
	if err != nil {
		return "", err
	}
	if vb.GT(va) {
		return b, nil
	}
	return a, nil
}
