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
	"fmt"

	"github.com/docker/go-connections/nat"

	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
)

// BuildConfiguration describes how an image is built.
type BuildConfiguration struct {
	From          string            `yaml:"from,omitempty"`
	DockerFile    string            `yaml:"dockerFile,omitempty"`
	DockerArchive string            `yaml:"dockerArchive,omitempty"`
	Ports         []string          `yaml:"ports,omitempty"`
	Env           map[string]string `yaml:"env,omitempty"`
	Labels        map[string]string `yaml:"labels,omitempty"`
	Args          map[string]string `yaml:"args,omitempty"`
	Tags          []string          `yaml:"tags,omitempty"`
	User          string            `yaml:"user,omitempty"`
	Workdir       string            `yaml:"workdir,omitempty"`
	HealthCheck   *HealthCheck      `yaml:"healthCheck,omitempty"`
}

// HealthCheck is the image health check.
type HealthCheck struct {
	// Mode is one of cmd, shell or none. Defaults to cmd.
	Mode     string `yaml:"mode,omitempty"`
	Cmd      string `yaml:"cmd,omitempty"`
	Interval string `yaml:"interval,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`
	Retries  int    `yaml:"retries,omitempty"`
}

const (
	apiVersionBuildArgs   = "1.21"
	apiVersionHealthCheck = "1.24"
)

// Validate checks the build configuration and returns the minimal API version it requires.
func (b *BuildConfiguration) Validate() (string, error) {
	if b.DockerFile != "" && b.DockerArchive != "" {
		return "", jkerrors.ConfigError(jkerrors.ConfigInvalid,
			"both <dockerFile> (%s) and <dockerArchive> (%s) are set, only one of them can be used", b.DockerFile, b.DockerArchive)
	}
	if b.From == "" && b.DockerFile == "" && b.DockerArchive == "" {
		return "", jkerrors.ConfigError(jkerrors.ConfigInvalid, "build configuration needs a base image <from>, a <dockerFile> or a <dockerArchive>")
	}
	if _, err := b.ExposedPorts(); err != nil {
		return "", err
	}

	var minVersion string
	if len(b.Args) > 0 {
		minVersion = apiVersionBuildArgs
	}
	if b.HealthCheck != nil {
		if err := b.HealthCheck.Validate(); err != nil {
			return "", err
		}
		minVersion = apiVersionHealthCheck
	}
	return minVersion, nil
}

// ExposedPorts parses the declared ports, e.g. "8080", "9779/tcp" or "53/udp".
func (b *BuildConfiguration) ExposedPorts() ([]nat.Port, error) {
	var ports []nat.Port
	for _, spec := range b.Ports {
		proto, port := nat.SplitProtoPort(spec)
		if _, err := nat.ParsePort(port); err != nil || port == "" {
			return nil, jkerrors.ConfigError(jkerrors.ConfigInvalidPort, "invalid port specification %q", spec)
		}
		p, err := nat.NewPort(proto, port)
		if err != nil {
			return nil, jkerrors.NewError(err, jkerrors.ActionableErr{
				Message: fmt.Sprintf("invalid port specification %q: %v", spec, err),
				ErrCode: jkerrors.ConfigInvalidPort,
			})
		}
		ports = append(ports, p)
	}
	return ports, nil
}

// Validate checks that the health check mode and command agree.
func (h *HealthCheck) Validate() error {
	switch h.Mode {
	case "", "cmd", "shell":
		if h.Cmd == "" {
			return jkerrors.ConfigError(jkerrors.ConfigInvalid, "health check mode %q requires a <cmd>", h.modeOrDefault())
		}
	case "none":
		if h.Cmd != "" || h.Interval != "" || h.Timeout != "" || h.Retries != 0 {
			return jkerrors.ConfigError(jkerrors.ConfigInvalid, "health check mode none does not take any other option")
		}
	default:
		return jkerrors.ConfigError(jkerrors.ConfigInvalid, "unknown health check mode %q", h.Mode)
	}
	return nil
}

func (h *HealthCheck) modeOrDefault() string {
	if h.Mode == "" {
		return "cmd"
	}
	return h.Mode
}

// DeepCopy returns an independent copy.
func (b *BuildConfiguration) DeepCopy() *BuildConfiguration {
	if b == nil {
		return nil
	}
	out := *b
	out.Ports = copySlice(b.Ports)
	out.Env = copyMap(b.Env)
	out.Labels = copyMap(b.Labels)
	out.Args = copyMap(b.Args)
	out.Tags = copySlice(b.Tags)
	if b.HealthCheck != nil {
		hc := *b.HealthCheck
		out.HealthCheck = &hc
	}
	return &out
}
