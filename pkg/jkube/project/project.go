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

package project

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
)

// JavaProject holds the build coordinates jkube derives images and manifests from.
type JavaProject struct {
	GroupID        string            `yaml:"groupId,omitempty"`
	ArtifactID     string            `yaml:"artifactId,omitempty"`
	Version        string            `yaml:"version,omitempty"`
	Name           string            `yaml:"name,omitempty"`
	Description    string            `yaml:"description,omitempty"`
	BaseDirectory  string            `yaml:"baseDir,omitempty"`
	BuildDirectory string            `yaml:"buildDir,omitempty"`
	Properties     map[string]string `yaml:"properties,omitempty"`

	// BuildTimestamp seeds time based placeholders. It is not part of the descriptor.
	BuildTimestamp time.Time `yaml:"-"`
}

// Property returns a project property, falling back to the environment for keys
// given in upper snake case (jkube.image.user -> JKUBE_IMAGE_USER).
func (p *JavaProject) Property(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	if v, ok := p.Properties[key]; ok {
		return v, true
	}
	return os.LookupEnv(envKey(key))
}

// PropertyOrDefault returns the property value or def when unset.
func (p *JavaProject) PropertyOrDefault(key, def string) string {
	if v, ok := p.Property(key); ok {
		return v
	}
	return def
}

func envKey(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// BaseDir returns the project base directory, defaulting to the working directory.
func (p *JavaProject) BaseDir() string {
	if p.BaseDirectory != "" {
		return p.BaseDirectory
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// BuildDir returns the build output directory.
func (p *JavaProject) BuildDir() string {
	dir := p.BuildDirectory
	if dir == "" {
		dir = constants.DefaultBuildDirectory
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.BaseDir(), dir)
}

// IsSnapshot reports whether the version is a development snapshot.
func (p *JavaProject) IsSnapshot() bool {
	return strings.HasSuffix(p.Version, constants.SnapshotSuffix)
}
