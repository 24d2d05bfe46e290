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

	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
)

// RunConfiguration describes how a container is started from the image.
type RunConfiguration struct {
	// ContainerNamePattern may use %n, %a, %t and %i.
	ContainerNamePattern string            `yaml:"containerNamePattern,omitempty"`
	Links                []string          `yaml:"links,omitempty"`
	DependsOn            []string          `yaml:"dependsOn,omitempty"`
	Volumes              *RunVolumes       `yaml:"volumes,omitempty"`
	Network              *Network          `yaml:"network,omitempty"`
	Env                  map[string]string `yaml:"env,omitempty"`
	Ports                []string          `yaml:"ports,omitempty"`
	Wait                 *Wait             `yaml:"wait,omitempty"`
}

// RunVolumes lists volumes to bind and images to take volumes from.
type RunVolumes struct {
	From []string `yaml:"from,omitempty"`
	Bind []string `yaml:"bind,omitempty"`
}

// Network is the network mode of the container: bridge, host, none, container:<name> or custom.
type Network struct {
	Mode    string   `yaml:"mode,omitempty"`
	Name    string   `yaml:"name,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// Wait holds the post start conditions of a container.
type Wait struct {
	Time      int    `yaml:"time,omitempty"`
	Log       string `yaml:"log,omitempty"`
	URL       string `yaml:"url,omitempty"`
	PostStart string `yaml:"postStart,omitempty"`
	PreStop   string `yaml:"preStop,omitempty"`
}

const apiVersionCustomNetwork = "1.21"

var standardNetworkModes = []string{"bridge", "host", "none"}

// Dependencies returns the images the container needs started first: volumes-from images,
// the image part of links, the container of a container network and explicit dependsOn entries.
func (r *RunConfiguration) Dependencies() []string {
	var deps []string
	add := func(name string) {
		if name == "" {
			return
		}
		for _, d := range deps {
			if d == name {
				return
			}
		}
		deps = append(deps, name)
	}

	if r.Volumes != nil {
		for _, from := range r.Volumes.From {
			add(from)
		}
	}
	for _, link := range r.Links {
		add(linkTarget(link))
	}
	if r.Network != nil {
		if container, ok := strings.CutPrefix(r.Network.Mode, "container:"); ok {
			add(container)
		}
	}
	for _, d := range r.DependsOn {
		add(d)
	}
	return deps
}

// linkTarget extracts the container of a "container:alias" link.
func linkTarget(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.Index(link, ":"); i >= 0 {
		return link[:i]
	}
	return link
}

// Validate checks the run configuration and returns the minimal API version it requires.
func (r *RunConfiguration) Validate() (string, error) {
	if r.Network != nil {
		if r.Network.IsCustom() {
			if r.Network.Name == "" && r.Network.Mode == "custom" {
				return "", jkerrors.ConfigError(jkerrors.ConfigInvalid, "custom network mode needs a network <name>")
			}
			return apiVersionCustomNetwork, nil
		}
	}
	return "", nil
}

// IsCustom reports whether the container joins a user defined network.
func (n *Network) IsCustom() bool {
	if n.Mode == "custom" {
		return true
	}
	if n.Mode == "" {
		return n.Name != "" && !util.StrSliceContains(standardNetworkModes, n.Name)
	}
	return false
}

// DeepCopy returns an independent copy.
func (r *RunConfiguration) DeepCopy() *RunConfiguration {
	if r == nil {
		return nil
	}
	out := *r
	out.Links = copySlice(r.Links)
	out.DependsOn = copySlice(r.DependsOn)
	out.Env = copyMap(r.Env)
	out.Ports = copySlice(r.Ports)
	if r.Volumes != nil {
		out.Volumes = &RunVolumes{From: copySlice(r.Volumes.From), Bind: copySlice(r.Volumes.Bind)}
	}
	if r.Network != nil {
		n := *r.Network
		n.Aliases = copySlice(r.Network.Aliases)
		out.Network = &n
	}
	if r.Wait != nil {
		w := *r.Wait
		out.Wait = &w
	}
	return &out
}
