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

package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/resource"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/yaml"
)

// Descriptor is the content of a jkube.yaml project descriptor.
type Descriptor struct {
	Project   project.JavaProject         `yaml:"project"`
	Images    []*image.ImageConfiguration `yaml:"images,omitempty"`
	Resources resource.ResourceConfig     `yaml:"resources,omitempty"`
	Enricher  EnricherConfig              `yaml:"enricher,omitempty"`
	Platform  string                      `yaml:"platform,omitempty"`
}

// EnricherConfig selects and configures enrichers.
type EnricherConfig struct {
	// Includes, when set, is the exact ordered list of enrichers to run.
	Includes []string `yaml:"includes,omitempty"`
	Excludes []string `yaml:"excludes,omitempty"`
	// Config holds per enricher settings, keyed by enricher name.
	Config map[string]map[string]string `yaml:"config,omitempty"`
}

// Platform modes.
const (
	PlatformKubernetes = "kubernetes"
	PlatformOpenShift  = "openshift"
)

// Load reads a project descriptor. Relative project directories are resolved against the descriptor location.
func Load(filename string) (*Descriptor, error) {
	buf, err := afero.ReadFile(util.Fs, filename)
	if err != nil {
		return nil, fmt.Errorf("reading project descriptor %s: %w", filename, err)
	}
	return Parse(buf, filepath.Dir(filename))
}

// Parse decodes a descriptor. baseDir is used when the project declares no base directory.
func Parse(buf []byte, baseDir string) (*Descriptor, error) {
	d := &Descriptor{}
	if err := yaml.UnmarshalStrict(buf, d); err != nil {
		return nil, jkerrors.NewError(err, jkerrors.ActionableErr{
			Message: "parsing project descriptor: " + err.Error(),
			ErrCode: jkerrors.ConfigInvalid,
		})
	}
	if d.Project.BaseDirectory == "" {
		d.Project.BaseDirectory = baseDir
	} else {
		d.Project.BaseDirectory = util.ResolvePath(baseDir, d.Project.BaseDirectory)
	}
	if d.Platform == "" {
		d.Platform = PlatformKubernetes
	}
	if d.Platform != PlatformKubernetes && d.Platform != PlatformOpenShift {
		return nil, jkerrors.ConfigError(jkerrors.ConfigInvalid, "unknown platform %q, must be one of: %s, %s", d.Platform, PlatformKubernetes, PlatformOpenShift)
	}
	return d, nil
}

// LoadProperties merges a dotenv style properties file over the project properties.
func (d *Descriptor) LoadProperties(filename string) error {
	f, err := util.Fs.Open(util.ResolvePath(d.Project.BaseDirectory, filename))
	if err != nil {
		return fmt.Errorf("opening properties file: %w", err)
	}
	defer f.Close()

	props, err := godotenv.Parse(f)
	if err != nil {
		return jkerrors.NewError(err, jkerrors.ActionableErr{
			Message: fmt.Sprintf("parsing properties file %s: %v", filename, err),
			ErrCode: jkerrors.ConfigInvalid,
		})
	}
	d.SetProperties(props)
	return nil
}

// SetProperties overrides project properties.
func (d *Descriptor) SetProperties(props map[string]string) {
	if d.Project.Properties == nil {
		d.Project.Properties = map[string]string{}
	}
	for k, v := range props {
		d.Project.Properties[k] = v
	}
}
