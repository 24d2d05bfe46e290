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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
)

// For testing
var Now = time.Now

// ReadLastModified reads the epoch millis stored in the marker file of dir.
// A missing marker returns the zero time and no error.
func ReadLastModified(dir string) (time.Time, error) {
	path := filepath.Join(dir, constants.LastModifiedMarkerFile)
	if !FileExists(path) {
		return time.Time{}, nil
	}
	b, err := afero.ReadFile(Fs, path)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading %s: %w", path, err)
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return time.UnixMilli(millis), nil
}

// WriteLastModified stores t as a bare decimal epoch millis value.
func WriteLastModified(dir string, t time.Time) error {
	path := filepath.Join(dir, constants.LastModifiedMarkerFile)
	return WriteFile(path, []byte(strconv.FormatInt(t.UnixMilli(), 10)))
}

// BuildTimestamp returns the timestamp stored in dir, or stores and returns the current time.
func BuildTimestamp(dir string) (time.Time, error) {
	t, err := ReadLastModified(dir)
	if err != nil {
		return time.Time{}, err
	}
	if !t.IsZero() {
		return t, nil
	}
	t = Now()
	if err := WriteLastModified(dir, t); err != nil {
		return time.Time{}, fmt.Errorf("writing build timestamp: %w", err)
	}
	return t, nil
}
