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

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
)

// containerEnvEnricher merges the build environment of each image into the containers running it.
// JAVA_OPTIONS values are accumulated.
type containerEnvEnricher struct {
	enricher.Base
}

func newContainerEnvEnricher(ctx *enricher.Context) enricher.Enricher {
	return &containerEnvEnricher{Base: enricher.NewBase(ContainerEnvEnricher, ctx)}
}

func (e *containerEnvEnricher) Enrich(_ context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	if e.GetBool("disable", false) {
		return nil
	}
	envByImage := map[string][]corev1.EnvVar{}
	for _, img := range e.Context().BuildImages() {
		if len(img.Build.Env) > 0 {
			envByImage[img.Name] = envVars(img.Build.Env)
		}
	}
	if len(envByImage) == 0 {
		return nil
	}
	return visitPodTemplates(builder, func(_ runtime.Object, tmpl *corev1.PodTemplateSpec) error {
		for i := range tmpl.Spec.Containers {
			if env, ok := envByImage[tmpl.Spec.Containers[i].Image]; ok {
				kubernetes.MergeEnv(&tmpl.Spec.Containers[i], env)
			}
		}
		return nil
	})
}
