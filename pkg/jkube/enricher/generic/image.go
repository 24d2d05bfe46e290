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

package generic

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
)

// imageEnricher fills the containers of every controller with the built images, the pull policy and the
// configured environment.
type imageEnricher struct {
	enricher.Base
}

func newImageEnricher(ctx *enricher.Context) enricher.Enricher {
	return &imageEnricher{Base: enricher.NewBase(ImageEnricher, ctx)}
}

func (e *imageEnricher) Enrich(_ context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	images := e.Context().BuildImages()
	if len(images) == 0 {
		return nil
	}
	policy, err := e.pullPolicy()
	if err != nil {
		return err
	}
	env := envVars(e.Context().Resources.Env)

	return visitPodTemplates(builder, func(_ runtime.Object, tmpl *corev1.PodTemplateSpec) error {
		containers := tmpl.Spec.Containers
		for i, img := range images {
			defaults := corev1.Container{
				Name:            containerName(img),
				Image:           img.Name,
				ImagePullPolicy: corev1.PullPolicy(policy.String()),
			}
			if i < len(containers) {
				kubernetes.MergeContainer(&containers[i], defaults)
			} else {
				containers = append(containers, defaults)
			}
		}
		for i := range containers {
			kubernetes.MergeEnv(&containers[i], env)
		}
		tmpl.Spec.Containers = containers
		return nil
	})
}

// pullPolicy is taken from jkube.imagePullPolicy, then the enricher or controller configuration,
// then derived from jkube.docker.autoPull. IfNotPresent is the default.
func (e *imageEnricher) pullPolicy() (image.ImagePullPolicy, error) {
	p := e.Context().Project
	if v, ok := p.Property(constants.PropertyImagePullPolicy); ok {
		return image.ParseImagePullPolicy(v)
	}
	configured := ""
	if ctrl := e.Context().Resources.Controller; ctrl != nil {
		configured = ctrl.ImagePullPolicy
	}
	if v := e.Get("pullPolicy", configured); v != "" {
		return image.ParseImagePullPolicy(v)
	}
	if v, ok := p.Property(constants.PropertyDockerAutoPull); ok {
		mode, err := image.ParseAutoPullMode(v)
		if err != nil {
			return image.ImagePullPolicy{}, err
		}
		return image.PullPolicyFromAutoPull(mode), nil
	}
	return image.PullIfNotPresent, nil
}
