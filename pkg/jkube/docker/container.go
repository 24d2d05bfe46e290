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

package docker

import (
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
)

// Container is a read-only view of a container known to the runtime.
type Container struct {
	ID         string
	Name       string
	IPAddress  string
	NetworkIPs map[string]string
}

func fromSummary(c types.Container) Container {
	ctr := Container{
		ID:         c.ID,
		NetworkIPs: map[string]string{},
	}
	if len(c.Names) > 0 {
		ctr.Name = strings.TrimPrefix(c.Names[0], "/")
	}
	if c.NetworkSettings != nil {
		for network, settings := range c.NetworkSettings.Networks {
			if settings == nil {
				continue
			}
			ctr.NetworkIPs[network] = settings.IPAddress
			if network == "bridge" || ctr.IPAddress == "" {
				ctr.IPAddress = settings.IPAddress
			}
		}
	}
	return ctr
}

// Names returns the set of container names.
func Names(containers []Container) map[string]bool {
	names := make(map[string]bool, len(containers))
	for _, c := range containers {
		names[c.Name] = true
	}
	return names
}

// SortByName orders containers by name, in place.
func SortByName(containers []Container) {
	sort.SliceStable(containers, func(i, j int) bool {
		return containers[i].Name < containers[j].Name
	})
}
