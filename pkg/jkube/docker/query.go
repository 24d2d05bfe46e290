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
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// containerLister is the part of the Docker API used to look up containers.
type containerLister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
}

// QueryService answers questions about the containers of the local runtime.
type QueryService struct {
	api containerLister
}

// NewQueryService connects to the daemon configured by the DOCKER_* environment.
func NewQueryService() (*QueryService, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	return &QueryService{api: cli}, nil
}

// ListContainers returns all containers, including stopped ones.
func (q *QueryService) ListContainers(ctx context.Context) ([]Container, error) {
	return q.list(ctx, container.ListOptions{All: true})
}

// HasContainer reports whether a container with exactly this name exists.
func (q *QueryService) HasContainer(ctx context.Context, name string) (bool, error) {
	containers, err := q.list(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("name", "^/"+name+"$")),
	})
	if err != nil {
		return false, err
	}
	for _, c := range containers {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (q *QueryService) list(ctx context.Context, opts container.ListOptions) ([]Container, error) {
	summaries, err := q.api.ContainerList(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}
	containers := make([]Container, 0, len(summaries))
	for _, s := range summaries {
		containers = append(containers, fromSummary(s))
	}
	log.Entry(ctx).Debugf("found %d containers", len(containers))
	return containers, nil
}
