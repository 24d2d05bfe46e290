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
	"context"
	"strings"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/apiversion"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/warnings"
)

// Resolver expands one declared image configuration into the configurations it stands for.
type Resolver interface {
	Resolve(img *image.ImageConfiguration) ([]*image.ImageConfiguration, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(img *image.ImageConfiguration) ([]*image.ImageConfiguration, error)

func (f ResolverFunc) Resolve(img *image.ImageConfiguration) ([]*image.ImageConfiguration, error) {
	return f(img)
}

// Identity resolves every configuration to itself.
var Identity = ResolverFunc(func(img *image.ImageConfiguration) ([]*image.ImageConfiguration, error) {
	return []*image.ImageConfiguration{img}, nil
})

// Customizer may rewrite the resolved configurations before they are filtered.
type Customizer func(images []*image.ImageConfiguration) ([]*image.ImageConfiguration, error)

// ResolveImages runs every image through the resolver, applies the customizer and keeps the images
// whose name or alias is listed in the comma separated filter. A nil filter keeps everything.
func ResolveImages(ctx context.Context, images []*image.ImageConfiguration, resolver Resolver, filter *string, customizer Customizer) ([]*image.ImageConfiguration, error) {
	ctx = log.WithTask(ctx, constants.Resolve, constants.SubtaskIDNone)

	var resolved []*image.ImageConfiguration
	for _, img := range images {
		expanded, err := resolver.Resolve(img)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, expanded...)
	}
	for _, img := range resolved {
		if img.Name == "" {
			return nil, jkerrors.ConfigError(jkerrors.ConfigMissingName,
				"configuration error: <image> %s must have a non-null <name>", describe(img))
		}
	}

	if customizer != nil {
		var err error
		if resolved, err = customizer(resolved); err != nil {
			return nil, err
		}
	}

	filtered := filterImages(filter, resolved)
	if len(resolved) > 0 && len(filtered) == 0 {
		var names []string
		for _, img := range resolved {
			names = append(names, img.Name)
		}
		warnings.Printf("None of the resolved images [%s] match the configured filter '%s'", strings.Join(names, ","), *filter)
	}
	log.Entry(ctx).Debugf("resolved %d image configurations, %d after filtering", len(resolved), len(filtered))
	return filtered, nil
}

func describe(img *image.ImageConfiguration) string {
	if img.Alias != "" {
		return "with alias " + img.Alias
	}
	return "without alias"
}

func filterImages(filter *string, images []*image.ImageConfiguration) []*image.ImageConfiguration {
	if filter == nil {
		return images
	}
	allowed := map[string]bool{}
	for _, name := range strings.Split(*filter, ",") {
		allowed[strings.TrimSpace(name)] = true
	}
	filtered := []*image.ImageConfiguration{}
	for _, img := range images {
		if allowed[img.Name] || (img.Alias != "" && allowed[img.Alias]) {
			filtered = append(filtered, img)
		}
	}
	return filtered
}

// InitAndValidate formats and validates every image and returns the most capable of apiVersion
// and the versions the images require.
func InitAndValidate(ctx context.Context, images []*image.ImageConfiguration, apiVersion string, formatter image.NameFormatter) (string, error) {
	ctx = log.WithTask(ctx, constants.Resolve, constants.SubtaskIDNone)

	maxVersion := apiVersion
	for _, img := range images {
		imageVersion, err := img.InitAndValidate(formatter)
		if err != nil {
			return "", err
		}
		if maxVersion, err = apiversion.Max(maxVersion, imageVersion); err != nil {
			return "", err
		}
	}
	log.Entry(ctx).Debugf("docker api version required: %s", maxVersion)
	return maxVersion, nil
}

// ValidateExternalPropertyActivation rejects the activation property when it would apply to more than
// one image that does not declare its own external configuration.
func ValidateExternalPropertyActivation(p *project.JavaProject, images []*image.ImageConfiguration) error {
	activation, ok := p.Property(constants.PropertyImagePropertyActivation)
	if !ok || strings.TrimSpace(activation) == "" {
		return nil
	}
	var eligible []string
	for _, img := range images {
		if !img.HasExternalConfig() {
			eligible = append(eligible, img.Description())
		}
	}
	if len(eligible) > 1 {
		return jkerrors.ConfigError(jkerrors.ConfigAmbiguousActivation,
			"configuration error: cannot use property %s on projects with multiple images without explicit image external configuration (images: %s)",
			constants.PropertyImagePropertyActivation, strings.Join(eligible, ", "))
	}
	return nil
}
