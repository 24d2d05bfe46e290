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

package runner

import (
	"context"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/docker"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/graph"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/naming"
)

// StartOrder returns the images in the order their containers must be started.
func (r *Runner) StartOrder(ctx context.Context) ([]*image.ImageConfiguration, error) {
	images, _, err := r.Images(ctx)
	if err != nil {
		return nil, err
	}
	hasContainer := func(ctx context.Context, name string) (bool, error) {
		q, err := r.containerQuery()
		if err != nil {
			return false, err
		}
		return q.HasContainer(ctx, name)
	}
	return graph.ResolveImages(ctx, images, hasContainer)
}

// ContainerName returns the name of the next container for the image with the given name or alias.
func (r *Runner) ContainerName(ctx context.Context, nameOrAlias, defaultPattern string) (string, error) {
	img, containers, err := r.imageAndContainers(ctx, nameOrAlias)
	if err != nil {
		return "", err
	}
	return naming.FormatContainerName(img, r.defaultPattern(defaultPattern), r.buildTimestamp, containers)
}

// ContainersToStop returns the containers of the image that should be stopped, sorted by name.
func (r *Runner) ContainersToStop(ctx context.Context, nameOrAlias, defaultPattern string) ([]docker.Container, error) {
	img, containers, err := r.imageAndContainers(ctx, nameOrAlias)
	if err != nil {
		return nil, err
	}
	toStop, err := naming.GetContainersToStop(img, r.defaultPattern(defaultPattern), r.buildTimestamp, containers)
	if err != nil {
		return nil, err
	}
	docker.SortByName(toStop)
	return toStop, nil
}

func (r *Runner) defaultPattern(pattern string) string {
	if pattern != "" {
		return pattern
	}
	return r.descriptor.Project.PropertyOrDefault(constants.PropertyContainerNamePattern, "")
}

func (r *Runner) imageAndContainers(ctx context.Context, nameOrAlias string) (*image.ImageConfiguration, []docker.Container, error) {
	images, _, err := r.Images(ctx)
	if err != nil {
		return nil, nil, err
	}
	var img *image.ImageConfiguration
	for _, candidate := range images {
		if candidate.Name == nameOrAlias || (candidate.Alias != "" && candidate.Alias == nameOrAlias) {
			img = candidate
			break
		}
	}
	if img == nil {
		return nil, nil, jkerrors.ConfigError(jkerrors.ConfigInvalid, "no image with name or alias %q", nameOrAlias)
	}

	q, err := r.containerQuery()
	if err != nil {
		return nil, nil, err
	}
	containers, err := q.ListContainers(ctx)
	if err != nil {
		return nil, nil, err
	}
	return img, containers, nil
}
