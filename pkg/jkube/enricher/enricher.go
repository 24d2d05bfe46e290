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

package enricher

import (
	"context"
	"regexp"
	"strings"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/resource"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
)

// PlatformMode selects Kubernetes or OpenShift flavored resources.
type PlatformMode string

const (
	Kubernetes PlatformMode = "kubernetes"
	OpenShift  PlatformMode = "openshift"
)

// Enricher adds missing resources in Create and completes resources in Enrich.
// Both phases work on the same ListBuilder.
type Enricher interface {
	Name() string
	Create(ctx context.Context, mode PlatformMode, builder *kubernetes.ListBuilder) error
	Enrich(ctx context.Context, mode PlatformMode, builder *kubernetes.ListBuilder) error
}

// Context is what enrichers know about the project.
type Context struct {
	Project   *project.JavaProject
	Images    []*image.ImageConfiguration
	Resources resource.ResourceConfig
	Config    Configuration
}

// Base implements the parts of Enricher that most enrichers share.
type Base struct {
	name string
	ctx  *Context
}

// NewBase creates the shared part of an enricher.
func NewBase(name string, ctx *Context) Base {
	return Base{name: name, ctx: ctx}
}

func (b Base) Name() string { return b.name }

func (b Base) Create(context.Context, PlatformMode, *kubernetes.ListBuilder) error { return nil }

func (b Base) Enrich(context.Context, PlatformMode, *kubernetes.ListBuilder) error { return nil }

// Context returns the enricher context.
func (b Base) Context() *Context { return b.ctx }

// Get returns an enricher setting, see Configuration.Get.
func (b Base) Get(key, def string) string {
	return b.ctx.Config.Get(b.name, key, def)
}

// GetBool returns a boolean enricher setting.
func (b Base) GetBool(key string, def bool) bool {
	return b.ctx.Config.GetBool(b.name, key, def)
}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// DefaultResourceName is the name of generated resources: the configured controller name,
// or the artifact id made a valid Kubernetes name.
func (c *Context) DefaultResourceName() string {
	if c.Resources.Controller != nil && c.Resources.Controller.Name != "" {
		return c.Resources.Controller.Name
	}
	return KubernetesName(c.Project.ArtifactID)
}

// KubernetesName lowercases s and replaces everything but letters, digits and '-' so that it can be
// used as a resource name.
func KubernetesName(s string) string {
	name := invalidNameChars.ReplaceAllString(strings.ToLower(s), "-")
	name = strings.Trim(name, "-")
	if len(name) > 63 {
		name = strings.TrimRight(name[:63], "-")
	}
	return name
}

// BuildImages returns the images that are built, i.e. have a build section.
func (c *Context) BuildImages() []*image.ImageConfiguration {
	var images []*image.ImageConfiguration
	for _, img := range c.Images {
		if img.Build != nil {
			images = append(images, img)
		}
	}
	return images
}
