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
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// Fs is the underlying filesystem to use for reading project files & configuration. OS FS by default
var Fs = afero.NewOsFs()

// ReadFile reads a file relative to baseDir unless the name is absolute.
func ReadFile(baseDir, filename string) ([]byte, error) {
	return afero.ReadFile(Fs, ResolvePath(baseDir, filename))
}

// ResolvePath returns filename if it is absolute, expands a leading ~, or joins it to baseDir.
func ResolvePath(baseDir, filename string) string {
	if strings.HasPrefix(filename, "~") {
		if expanded, err := homedir.Expand(filename); err == nil {
			return expanded
		}
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	if baseDir == "" {
		if dir, err := os.Getwd(); err == nil {
			baseDir = dir
		}
	}
	return filepath.Join(baseDir, filename)
}

// WriteFile writes content, creating parent directories as needed.
func WriteFile(filename string, content []byte) error {
	if err := Fs.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	return afero.WriteFile(Fs, filename, content, 0644)
}

// FileExists reports whether filename exists on Fs.
func FileExists(filename string) bool {
	ok, err := afero.Exists(Fs, filename)
	return err == nil && ok
}
