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
	"fmt"
	"time"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/resolve"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/docker"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/naming"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/timestamp"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
)

// Options are the inputs of a jkube run, usually set from command line flags.
type Options struct {
	ConfigFile     string
	PropertiesFile string
	Properties     map[string]string
	// ImageFilter is a comma separated list of image names or aliases. Nil keeps every image.
	ImageFilter *string
	Platform    string
	// BuildTimestamp overrides the timestamp stored in the build directory.
	BuildTimestamp string
}

// ContainerQuery looks up containers of the local runtime.
type ContainerQuery interface {
	ListContainers(ctx context.Context) ([]docker.Container, error)
	HasContainer(ctx context.Context, name string) (bool, error)
}

// For testing
var newContainerQuery = func() (ContainerQuery, error) {
	return docker.NewQueryService()
}

// Runner runs the jkube operations for one project descriptor.
type Runner struct {
	opts           Options
	descriptor     *config.Descriptor
	buildTimestamp time.Time
	query          ContainerQuery
}

// New loads the project descriptor and the build timestamp.
func New(ctx context.Context, opts Options) (*Runner, error) {
	ctx = log.WithTask(ctx, constants.Init, constants.SubtaskIDNone)
	if opts.ConfigFile == "" {
		opts.ConfigFile = constants.DefaultConfigFile
	}
	d, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.PropertiesFile != "" {
		if err := d.LoadProperties(opts.PropertiesFile); err != nil {
			return nil, err
		}
	}
	d.SetProperties(opts.Properties)
	if opts.Platform != "" {
		d.Platform = opts.Platform
	}

	r := &Runner{opts: opts, descriptor: d}
	if r.buildTimestamp, err = r.loadBuildTimestamp(); err != nil {
		return nil, err
	}
	d.Project.BuildTimestamp = r.buildTimestamp
	log.Entry(ctx).Debugf("project %s:%s:%s, build timestamp %s",
		d.Project.GroupID, d.Project.ArtifactID, d.Project.Version, timestamp.FromTime(r.buildTimestamp))
	return r, nil
}

func (r *Runner) loadBuildTimestamp() (time.Time, error) {
	if r.opts.BuildTimestamp != "" {
		ts, err := timestamp.Parse(r.opts.BuildTimestamp)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing build timestamp: %w", err)
		}
		return ts.Time(), nil
	}
	return util.BuildTimestamp(r.descriptor.Project.BuildDir())
}

// Descriptor returns the loaded project descriptor.
func (r *Runner) Descriptor() *config.Descriptor {
	return r.descriptor
}

// Images resolves, formats and validates the image configurations. It also returns the Docker API
// version the images require.
func (r *Runner) Images(ctx context.Context) ([]*image.ImageConfiguration, string, error) {
	p := &r.descriptor.Project
	declared := make([]*image.ImageConfiguration, len(r.descriptor.Images))
	for i, img := range r.descriptor.Images {
		declared[i] = img.DeepCopy()
	}
	if err := resolve.ValidateExternalPropertyActivation(p, declared); err != nil {
		return nil, "", err
	}

	images, err := resolve.ResolveImages(ctx, declared, &resolve.PropertyResolver{Project: p}, r.opts.ImageFilter, nil)
	if err != nil {
		return nil, "", err
	}
	formatter := naming.NewImageNameFormatter(p, r.buildTimestamp)
	apiVersion := p.PropertyOrDefault(constants.PropertyDockerAPIVersion, constants.DefaultDockerAPIVersion)
	apiVersion, err = resolve.InitAndValidate(ctx, images, apiVersion, formatter)
	if err != nil {
		return nil, "", err
	}
	return images, apiVersion, nil
}

func (r *Runner) containerQuery() (ContainerQuery, error) {
	if r.query == nil {
		q, err := newContainerQuery()
		if err != nil {
			return nil, err
		}
		r.query = q
	}
	return r.query, nil
}
