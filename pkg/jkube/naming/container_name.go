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

package naming

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/docker"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
)

// maxIndex bounds the index search of %i. No finite set of containers reaches it.
var maxIndex int64 = math.MaxInt64

// FormatContainerName resolves the container name pattern of an image and, when it contains %i,
// picks the lowest index that is not taken by one of the existing containers.
func FormatContainerName(img *image.ImageConfiguration, defaultPattern string, buildTimestamp time.Time, existing []docker.Container) (string, error) {
	partial, err := partialContainerName(img, defaultPattern, buildTimestamp)
	if err != nil {
		return "", err
	}
	if !strings.Contains(partial, constants.IndexPlaceholder) {
		return partial, nil
	}

	taken := docker.Names(existing)
	for i := int64(1); i > 0 && i <= maxIndex; i++ {
		candidate := indexed(partial, i)
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", jkerrors.ConfigError(jkerrors.ContainerNameExhausted,
		"cannot find a free container name for pattern %q of image %s", partial, img.Name)
}

// GetContainersToStop drops all containers of the indexed naming scheme except the one with
// the highest contiguous index. Containers outside the scheme are kept.
func GetContainersToStop(img *image.ImageConfiguration, defaultPattern string, buildTimestamp time.Time, containers []docker.Container) ([]docker.Container, error) {
	partial, err := partialContainerName(img, defaultPattern, buildTimestamp)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(partial, constants.IndexPlaceholder) {
		return containers, nil
	}

	byName := make(map[string]int, len(containers))
	for i, c := range containers {
		byName[c.Name] = i
	}
	removed := map[int]bool{}
	last := -1
	for i := int64(1); i > 0 && i <= maxIndex; i++ {
		pos, found := byName[indexed(partial, i)]
		if !found {
			var result []docker.Container
			for j, c := range containers {
				if !removed[j] || j == last {
					result = append(result, c)
				}
			}
			return result, nil
		}
		removed[pos] = true
		last = pos
	}
	return nil, jkerrors.ConfigError(jkerrors.ContainerNameExhausted,
		"no gap found in container indexes for pattern %q of image %s", partial, img.Name)
}

func indexed(partial string, index int64) string {
	return strings.ReplaceAll(partial, constants.IndexPlaceholder, strconv.FormatInt(index, 10))
}

// partialContainerName resolves every placeholder except %i, which is kept as the index slot.
func partialContainerName(img *image.ImageConfiguration, defaultPattern string, buildTimestamp time.Time) (string, error) {
	r := NewReplacer(map[string]Lookup{
		"a": func() string { return img.Alias },
		"n": func() string { return Sanitize(img.SimpleName()) },
		"t": func() string { return strconv.FormatInt(buildTimestamp.UnixMilli(), 10) },
		"i": func() string { return constants.IndexPlaceholder },
	})
	return r.Replace(containerNamePattern(img, defaultPattern))
}

func containerNamePattern(img *image.ImageConfiguration, defaultPattern string) string {
	if img.Run != nil && img.Run.ContainerNamePattern != "" {
		return img.Run.ContainerNamePattern
	}
	if defaultPattern != "" {
		return defaultPattern
	}
	return constants.DefaultContainerNamePattern
}
