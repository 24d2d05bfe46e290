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

package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// maxResolvePasses bounds the passes over images with dependencies.
const maxResolvePasses = 10

// ContainerExists reports whether a container with the given name exists outside of the configured images.
type ContainerExists func(ctx context.Context, name string) (bool, error)

// Resolvable is anything that can be ordered by its dependencies.
type Resolvable interface {
	Name() string
	Alias() string
	Dependencies() []string
}

type imageResolvable struct {
	img *image.ImageConfiguration
}

func (r imageResolvable) Name() string           { return r.img.Name }
func (r imageResolvable) Alias() string          { return r.img.Alias }
func (r imageResolvable) Dependencies() []string { return r.img.DependentImages() }

// ResolveImages orders image configurations so that every image comes after the images it depends on.
func ResolveImages(ctx context.Context, images []*image.ImageConfiguration, hasContainer ContainerExists) ([]*image.ImageConfiguration, error) {
	resolvables := make([]Resolvable, len(images))
	for i, img := range images {
		resolvables[i] = imageResolvable{img: img}
	}
	ordered, err := Resolve(ctx, resolvables, hasContainer)
	if err != nil {
		return nil, err
	}
	out := make([]*image.ImageConfiguration, len(ordered))
	for i, r := range ordered {
		out[i] = r.(imageResolvable).img
	}
	return out, nil
}

// Resolve computes a start order. Images without dependencies come first, in input order, followed
// by the others in the order their dependencies became satisfied. A dependency is satisfied by an
// already ordered image, matched by name or alias, or by an existing container.
func Resolve(ctx context.Context, resolvables []Resolvable, hasContainer ContainerExists) ([]Resolvable, error) {
	ctx = log.WithTask(ctx, constants.Start, constants.SubtaskIDNone)
	s := &resolver{processed: map[string]bool{}, hasContainer: hasContainer}

	for _, r := range resolvables {
		if len(r.Dependencies()) > 0 {
			s.secondPass = append(s.secondPass, r)
		} else {
			s.add(r)
		}
	}
	if len(s.secondPass) == 0 {
		return s.resolved, nil
	}

	for pass := 0; pass < maxResolvePasses; pass++ {
		progress, err := s.resolveRemaining(ctx)
		if err != nil {
			return nil, err
		}
		if len(s.secondPass) == 0 {
			return s.resolved, nil
		}
		if !progress {
			break
		}
	}
	return nil, s.deadlock(ctx)
}

type resolver struct {
	resolved     []Resolvable
	secondPass   []Resolvable
	processed    map[string]bool
	hasContainer ContainerExists
}

func (s *resolver) add(r Resolvable) {
	s.resolved = append(s.resolved, r)
	s.processed[r.Name()] = true
	if r.Alias() != "" {
		s.processed[r.Alias()] = true
	}
}

func (s *resolver) resolveRemaining(ctx context.Context) (bool, error) {
	var remaining []Resolvable
	progress := false
	for _, r := range s.secondPass {
		ok, err := s.satisfied(ctx, r)
		if err != nil {
			return false, err
		}
		if ok {
			s.add(r)
			progress = true
		} else {
			remaining = append(remaining, r)
		}
	}
	s.secondPass = remaining
	return progress, nil
}

func (s *resolver) satisfied(ctx context.Context, r Resolvable) (bool, error) {
	for _, dep := range r.Dependencies() {
		if s.processed[dep] {
			continue
		}
		exists, err := s.external(ctx, dep)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, nil
		}
	}
	return true, nil
}

func (s *resolver) external(ctx context.Context, name string) (bool, error) {
	if s.hasContainer == nil {
		return false, nil
	}
	exists, err := s.hasContainer(ctx, name)
	if err != nil {
		return false, fmt.Errorf("checking for container %s: %w", name, err)
	}
	if exists {
		log.Entry(ctx).Debugf("dependency %s satisfied by an existing container", name)
	}
	return exists, nil
}

func (s *resolver) deadlock(ctx context.Context) error {
	var unresolved []string
	for _, r := range s.secondPass {
		var unmet []string
		for _, dep := range r.Dependencies() {
			if s.processed[dep] {
				continue
			}
			if exists, _ := s.external(ctx, dep); !exists {
				unmet = append(unmet, dep)
			}
		}
		name := r.Alias()
		if name == "" {
			name = r.Name()
		}
		unresolved = append(unresolved, fmt.Sprintf("%s --> %s", name, strings.Join(unmet, ",")))
	}
	return jkerrors.ConfigError(jkerrors.StartOrderDeadlock,
		"cannot resolve image dependencies for start order:\n%s", strings.Join(unresolved, "\n"))
}
