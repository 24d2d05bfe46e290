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

package image

import (
	"strings"

	"github.com/distribution/reference"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/apiversion"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
)

// ImageConfiguration describes one image to build and/or run.
type ImageConfiguration struct {
	// Name is the image name, possibly holding %g, %a, %v, %t or %l placeholders before InitAndValidate.
	Name string `yaml:"name,omitempty"`

	// Alias is a short name used for links and container names.
	Alias string `yaml:"alias,omitempty"`

	Build *BuildConfiguration `yaml:"build,omitempty"`
	Run   *RunConfiguration   `yaml:"run,omitempty"`

	// External selects a configuration source outside of this descriptor, e.g. {type: properties, prefix: docker}.
	External map[string]string `yaml:"external,omitempty"`
}

// NameFormatter fills placeholders of an image name.
type NameFormatter interface {
	FormatString(name string) (string, error)
}

// Description is the alias if present, the name otherwise.
func (c *ImageConfiguration) Description() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}

// DependentImages lists the images this one needs started first, by name or alias.
func (c *ImageConfiguration) DependentImages() []string {
	if c.Run == nil {
		return nil
	}
	return c.Run.Dependencies()
}

// HasExternalConfig reports whether the configuration delegates to an external source.
func (c *ImageConfiguration) HasExternalConfig() bool {
	return len(c.External) > 0
}

// InitAndValidate formats the name and validates the build and run sections.
// It returns the minimal Docker API version the configuration needs, or "" if any version will do.
func (c *ImageConfiguration) InitAndValidate(formatter NameFormatter) (string, error) {
	if formatter != nil {
		name, err := formatter.FormatString(c.Name)
		if err != nil {
			return "", jkerrors.NewError(err, jkerrors.ActionableErr{
				Message: "image " + c.Description() + ": " + err.Error(),
				ErrCode: jkerrors.ConfigInvalid,
			})
		}
		c.Name = name
	}
	if err := c.validateName(); err != nil {
		return "", err
	}

	var minVersion string
	if c.Build != nil {
		v, err := c.Build.Validate()
		if err != nil {
			return "", c.wrap(err)
		}
		if minVersion, err = apiversion.Max(minVersion, v); err != nil {
			return "", err
		}
	}
	if c.Run != nil {
		v, err := c.Run.Validate()
		if err != nil {
			return "", c.wrap(err)
		}
		if minVersion, err = apiversion.Max(minVersion, v); err != nil {
			return "", err
		}
		if strings.Contains(c.Run.ContainerNamePattern, "%a") && c.Alias == "" {
			return "", jkerrors.ConfigError(jkerrors.ConfigInvalid,
				"image %s: container name pattern %q uses %%a but no alias is set", c.Name, c.Run.ContainerNamePattern)
		}
	}
	return minVersion, nil
}

func (c *ImageConfiguration) validateName() error {
	if c.Name == "" {
		return jkerrors.ConfigError(jkerrors.ConfigMissingName, "configuration error: <image> must have a non-null <name>")
	}
	if _, err := reference.ParseNormalizedNamed(c.Name); err != nil {
		return jkerrors.NewError(err, jkerrors.ActionableErr{
			Message: "image name " + c.Name + " is not a valid image reference: " + err.Error(),
			ErrCode: jkerrors.ConfigInvalid,
		})
	}
	return nil
}

func (c *ImageConfiguration) wrap(err error) error {
	code := jkerrors.StatusCodeOf(err)
	if code == jkerrors.UnknownError {
		code = jkerrors.ConfigInvalid
	}
	return jkerrors.NewError(err, jkerrors.ActionableErr{
		Message: "image " + c.Description() + ": " + err.Error(),
		ErrCode: code,
	})
}

// SimpleName returns the repository path of the image without registry, user or tag,
// e.g. "app" for "quay.io/jkube/app:1.0".
func (c *ImageConfiguration) SimpleName() string {
	path := c.Name
	if named, err := reference.ParseNormalizedNamed(c.Name); err == nil {
		path = reference.Path(named)
	} else if i := strings.LastIndex(path, ":"); i > strings.LastIndex(path, "/") {
		path = path[:i]
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// DeepCopy returns an independent copy of the configuration.
func (c *ImageConfiguration) DeepCopy() *ImageConfiguration {
	if c == nil {
		return nil
	}
	out := &ImageConfiguration{
		Name:     c.Name,
		Alias:    c.Alias,
		Build:    c.Build.DeepCopy(),
		Run:      c.Run.DeepCopy(),
		External: copyMap(c.External),
	}
	return out
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySlice(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
