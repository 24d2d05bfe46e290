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

package kubernetes

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/warnings"
)

// accumulatingEnv lists variables whose values are concatenated instead of replaced.
var accumulatingEnv = map[string]bool{
	"JAVA_OPTIONS": true,
}

// MergeEnv adds env to the container. Existing variables win, except the accumulating ones where the new
// value is prepended to the existing one. A suppressed conflicting value is reported as a warning.
func MergeEnv(container *corev1.Container, env []corev1.EnvVar) {
	for _, add := range env {
		i := envIndex(container.Env, add.Name)
		if i < 0 {
			container.Env = append(container.Env, add)
			continue
		}
		existing := &container.Env[i]
		if existing.ValueFrom != nil || add.ValueFrom != nil || existing.Value == add.Value {
			continue
		}
		if accumulatingEnv[add.Name] {
			existing.Value = add.Value + " " + existing.Value
			continue
		}
		warnings.Printf("Environment variable %s in container %s is already set to %q, ignoring the new value %q",
			add.Name, container.Name, existing.Value, add.Value)
	}
}

func envIndex(env []corev1.EnvVar, name string) int {
	for i, e := range env {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// MergeService fills what target lacks from defaults: ports, selector, type and metadata entries.
// Values already present on target are never replaced.
func MergeService(target, defaults *corev1.Service) {
	target.Labels = MergeIfAbsent(target.Labels, defaults.Labels)
	target.Annotations = MergeIfAbsent(target.Annotations, defaults.Annotations)
	if len(target.Spec.Ports) == 0 {
		target.Spec.Ports = append([]corev1.ServicePort(nil), defaults.Spec.Ports...)
	} else {
		for i := range target.Spec.Ports {
			p := &target.Spec.Ports[i]
			for _, d := range defaults.Spec.Ports {
				if p.Port != d.Port {
					continue
				}
				if p.Name == "" {
					p.Name = d.Name
				}
				if p.TargetPort.IntVal == 0 && p.TargetPort.StrVal == "" {
					p.TargetPort = d.TargetPort
				}
				if p.Protocol == "" {
					p.Protocol = d.Protocol
				}
			}
		}
	}
	if len(target.Spec.Selector) == 0 && len(defaults.Spec.Selector) > 0 {
		target.Spec.Selector = MergeIfAbsent(nil, defaults.Spec.Selector)
	}
	if target.Spec.Type == "" {
		target.Spec.Type = defaults.Spec.Type
	}
	if target.Spec.ClusterIP == "" {
		target.Spec.ClusterIP = defaults.Spec.ClusterIP
	}
}

// MergeContainer fills what target lacks from defaults. The environments are merged with MergeEnv.
func MergeContainer(target *corev1.Container, defaults corev1.Container) {
	if target.Name == "" {
		target.Name = defaults.Name
	}
	if target.Image == "" {
		target.Image = defaults.Image
	}
	if target.ImagePullPolicy == "" {
		target.ImagePullPolicy = defaults.ImagePullPolicy
	}
	if len(target.Ports) == 0 {
		target.Ports = append([]corev1.ContainerPort(nil), defaults.Ports...)
	}
	MergeEnv(target, defaults.Env)
}
