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
	"sort"
	"strconv"
	"strings"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
)

const (
	externalType       = "type"
	externalPrefix     = "prefix"
	externalProperties = "properties"
)

// PropertyResolver builds image configurations from project properties for images declaring
// external: {type: properties, prefix: <prefix>}. A comma separated prefix list yields one
// configuration per prefix that defines properties.
type PropertyResolver struct {
	Project *project.JavaProject
}

// Resolve implements Resolver.
func (r *PropertyResolver) Resolve(img *image.ImageConfiguration) ([]*image.ImageConfiguration, error) {
	prefixes, ok := r.prefixes(img)
	if !ok {
		return []*image.ImageConfiguration{img}, nil
	}

	var resolved []*image.ImageConfiguration
	matched := false
	for _, prefix := range prefixes {
		props := r.group(prefix)
		if len(props) == 0 {
			continue
		}
		matched = true
		if skip, _ := strconv.ParseBool(props["skip"]); skip {
			continue
		}
		resolved = append(resolved, apply(img.DeepCopy(), props))
	}
	if !matched {
		base := img.DeepCopy()
		base.External = nil
		return []*image.ImageConfiguration{base}, nil
	}
	return resolved, nil
}

// prefixes returns the property prefixes configured for img, if property resolution applies.
func (r *PropertyResolver) prefixes(img *image.ImageConfiguration) ([]string, bool) {
	if img.HasExternalConfig() {
		if img.External[externalType] != externalProperties {
			return nil, false
		}
		prefix := img.External[externalPrefix]
		if strings.TrimSpace(prefix) == "" {
			prefix = constants.DefaultImagePropertyPrefix
		}
		return util.SplitTrimmed(prefix), true
	}
	if v, ok := r.Project.Property(constants.PropertyImagePropertyActivation); ok && strings.TrimSpace(v) != "" {
		return []string{constants.DefaultImagePropertyPrefix}, true
	}
	return nil, false
}

// group returns the properties below prefix, with the prefix and its dot removed.
func (r *PropertyResolver) group(prefix string) map[string]string {
	group := map[string]string{}
	for k, v := range r.Project.Properties {
		if key, ok := strings.CutPrefix(k, prefix+"."); ok && key != "" {
			group[key] = v
		}
	}
	return group
}

func apply(img *image.ImageConfiguration, props map[string]string) *image.ImageConfiguration {
	img.External = nil
	if v, ok := props["name"]; ok {
		img.Name = v
	}
	if v, ok := props["alias"]; ok {
		img.Alias = v
	}

	build := img.Build
	if build == nil {
		build = &image.BuildConfiguration{}
	}
	setString(&build.From, props, "from")
	setString(&build.DockerFile, props, "dockerFile")
	setString(&build.User, props, "user")
	setString(&build.Workdir, props, "workdir")
	setList(&build.Ports, props, "ports")
	setList(&build.Tags, props, "tags")
	setMap(&build.Env, props, "env")
	setMap(&build.Labels, props, "labels")
	setMap(&build.Args, props, "args")
	if img.Build != nil || !isEmptyBuild(build) {
		img.Build = build
	}

	run := img.Run
	if run == nil {
		run = &image.RunConfiguration{}
	}
	setString(&run.ContainerNamePattern, props, "containerNamePattern")
	setList(&run.Links, props, "links")
	setList(&run.DependsOn, props, "dependsOn")
	var volumesFrom []string
	setList(&volumesFrom, props, "volumesFrom")
	if len(volumesFrom) > 0 {
		if run.Volumes == nil {
			run.Volumes = &image.RunVolumes{}
		}
		run.Volumes.From = volumesFrom
	}
	if v, ok := props["network"]; ok {
		run.Network = networkOf(v)
	}
	if img.Run != nil || !isEmptyRun(run) {
		img.Run = run
	}
	return img
}

func networkOf(v string) *image.Network {
	switch {
	case v == "bridge" || v == "host" || v == "none" || strings.HasPrefix(v, "container:"):
		return &image.Network{Mode: v}
	default:
		return &image.Network{Mode: "custom", Name: v}
	}
}

func isEmptyBuild(b *image.BuildConfiguration) bool {
	return b.From == "" && b.DockerFile == "" && b.User == "" && b.Workdir == "" && len(b.Ports) == 0 &&
		len(b.Tags) == 0 && len(b.Env) == 0 && len(b.Labels) == 0 && len(b.Args) == 0
}

func isEmptyRun(r *image.RunConfiguration) bool {
	return r.ContainerNamePattern == "" && len(r.Links) == 0 && len(r.DependsOn) == 0 &&
		r.Volumes == nil && r.Network == nil && len(r.Env) == 0 && len(r.Ports) == 0 && r.Wait == nil
}

func setString(dst *string, props map[string]string, key string) {
	if v, ok := props[key]; ok {
		*dst = v
	}
}

// setList collects key.1, key.2, ... in index order. Non numeric suffixes sort after numeric ones.
func setList(dst *[]string, props map[string]string, key string) {
	type entry struct {
		index int
		name  string
		value string
	}
	var entries []entry
	for k, v := range props {
		suffix, ok := strings.CutPrefix(k, key+".")
		if !ok {
			continue
		}
		index, err := strconv.Atoi(suffix)
		if err != nil {
			index = int(^uint(0) >> 1)
		}
		entries = append(entries, entry{index: index, name: suffix, value: v})
	}
	if len(entries) == 0 {
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].index != entries[j].index {
			return entries[i].index < entries[j].index
		}
		return entries[i].name < entries[j].name
	})
	list := make([]string, 0, len(entries))
	for _, e := range entries {
		list = append(list, e.value)
	}
	*dst = list
}

func setMap(dst *map[string]string, props map[string]string, key string) {
	for k, v := range props {
		name, ok := strings.CutPrefix(k, key+".")
		if !ok || name == "" {
			continue
		}
		if *dst == nil {
			*dst = map[string]string{}
		}
		(*dst)[name] = v
	}
}
