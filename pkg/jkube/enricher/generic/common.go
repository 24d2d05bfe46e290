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
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
)

var controllerKinds = []kubernetes.Kind{
	kubernetes.KindDeployment,
	kubernetes.KindStatefulSet,
	kubernetes.KindDaemonSet,
	kubernetes.KindReplicaSet,
	kubernetes.KindReplicationController,
	kubernetes.KindJob,
}

// visitPodTemplates calls visit for the pod template of every controller.
func visitPodTemplates(builder *kubernetes.ListBuilder, visit func(obj runtime.Object, tmpl *corev1.PodTemplateSpec) error) error {
	visitors := kubernetes.Visitors{}
	for _, kind := range controllerKinds {
		visitors[kind] = func(obj runtime.Object) error {
			tmpl, ok := kubernetes.PodTemplate(obj)
			if !ok {
				return nil
			}
			return visit(obj, tmpl)
		}
	}
	return builder.Accept(visitors)
}

// findNamedOrUnnamed returns the resource of the kind named name, or else the first unnamed one.
func findNamedOrUnnamed(builder *kubernetes.ListBuilder, kind kubernetes.Kind, name string) runtime.Object {
	if obj := builder.Find(kind, name); obj != nil {
		return obj
	}
	return builder.Find(kind, "")
}

// containerName is the alias of the image, or its simple name made a valid Kubernetes name.
func containerName(img *image.ImageConfiguration) string {
	if img.Alias != "" {
		return enricher.KubernetesName(img.Alias)
	}
	return enricher.KubernetesName(img.SimpleName())
}

func envVars(env map[string]string) []corev1.EnvVar {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vars := make([]corev1.EnvVar, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, corev1.EnvVar{Name: k, Value: env[k]})
	}
	return vars
}

type fileAnnotation struct {
	key     string
	dataKey string
	path    string
}

// fileAnnotations returns the annotations starting with one of the prefixes, sorted by key.
// The data key is what follows the prefix.
func fileAnnotations(annotations map[string]string, prefixes []string) []fileAnnotation {
	var files []fileAnnotation
	for key, path := range annotations {
		for _, prefix := range prefixes {
			if dataKey, ok := strings.CutPrefix(key, prefix); ok && dataKey != "" {
				files = append(files, fileAnnotation{key: key, dataKey: dataKey, path: path})
				break
			}
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].key < files[j].key })
	return files
}
