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
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/scheme"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/yaml"
)

type fragmentKind struct {
	apiVersion string
	kind       string
}

// fragmentKinds maps the kind part of a fragment file name to the kind it declares by default.
var fragmentKinds = map[string]fragmentKind{
	"cm":               {"v1", "ConfigMap"},
	"configmap":        {"v1", "ConfigMap"},
	"secret":           {"v1", "Secret"},
	"sa":               {"v1", "ServiceAccount"},
	"serviceaccount":   {"v1", "ServiceAccount"},
	"svc":              {"v1", "Service"},
	"service":          {"v1", "Service"},
	"pvc":              {"v1", "PersistentVolumeClaim"},
	"rc":               {"v1", "ReplicationController"},
	"deployment":       {"apps/v1", "Deployment"},
	"statefulset":      {"apps/v1", "StatefulSet"},
	"daemonset":        {"apps/v1", "DaemonSet"},
	"replicaset":       {"apps/v1", "ReplicaSet"},
	"job":              {"batch/v1", "Job"},
	"ingress":          {"networking.k8s.io/v1", "Ingress"},
	"dc":               {"apps.openshift.io/v1", "DeploymentConfig"},
	"deploymentconfig": {"apps.openshift.io/v1", "DeploymentConfig"},
}

// DecodeFragment decodes a YAML or JSON fragment into objects. Kind and name may be omitted in the
// document when the file is named "<name>-<kind>.yml" or "<kind>.yml".
func DecodeFragment(filename string, content []byte) ([]runtime.Object, error) {
	var objs []runtime.Object
	for _, doc := range yaml.SplitDocuments(content) {
		raw := map[string]interface{}{}
		if err := k8syaml.Unmarshal(doc, &raw); err != nil {
			return nil, fmt.Errorf("parsing fragment %s: %w", filename, err)
		}
		if len(raw) == 0 {
			continue
		}
		applyFileNameDefaults(filename, raw)

		decoded, err := decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding fragment %s: %w", filename, err)
		}
		objs = append(objs, decoded...)
	}
	return objs, nil
}

func applyFileNameDefaults(filename string, raw map[string]interface{}) {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	name, kindPart := "", base
	if i := strings.LastIndex(base, "-"); i >= 0 {
		if _, known := fragmentKinds[base[i+1:]]; known {
			name, kindPart = base[:i], base[i+1:]
		}
	}
	fk, known := fragmentKinds[kindPart]
	if !known {
		return
	}
	if _, ok := raw["kind"]; !ok {
		raw["kind"] = fk.kind
	}
	if _, ok := raw["apiVersion"]; !ok && raw["kind"] == fk.kind {
		raw["apiVersion"] = fk.apiVersion
	}
	if name == "" {
		return
	}
	metadata, _ := raw["metadata"].(map[string]interface{})
	if metadata == nil {
		metadata = map[string]interface{}{}
		raw["metadata"] = metadata
	}
	if _, ok := metadata["name"]; !ok {
		metadata["name"] = name
	}
}

func decodeObject(raw map[string]interface{}) ([]runtime.Object, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	u := &unstructured.Unstructured{}
	if err := u.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	if u.IsList() {
		var objs []runtime.Object
		err := u.EachListItem(func(item runtime.Object) error {
			decoded, err := decodeObject(item.(*unstructured.Unstructured).Object)
			objs = append(objs, decoded...)
			return err
		})
		return objs, err
	}

	typed, _, err := scheme.Codecs.UniversalDeserializer().Decode(data, nil, nil)
	if err != nil {
		if runtime.IsNotRegisteredError(err) {
			return []runtime.Object{u}, nil
		}
		return nil, err
	}
	return []runtime.Object{typed}, nil
}

// ToUnstructured converts an object to its map form, dropping empty status and creation timestamps.
func ToUnstructured(obj runtime.Object) (map[string]interface{}, error) {
	setTypeMeta(obj)
	m, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}
	prune(m)
	return m, nil
}

func prune(m map[string]interface{}) {
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			if k == "creationTimestamp" {
				delete(m, k)
			}
		case map[string]interface{}:
			prune(t)
			if k == "status" && isEmpty(t) {
				delete(m, k)
			}
		case []interface{}:
			for _, item := range t {
				if im, ok := item.(map[string]interface{}); ok {
					prune(im)
				}
			}
		}
	}
}

// isEmpty reports whether m holds nothing but empty maps.
func isEmpty(m map[string]interface{}) bool {
	for _, v := range m {
		sub, ok := v.(map[string]interface{})
		if !ok || !isEmpty(sub) {
			return false
		}
	}
	return true
}

// Serialize renders the objects as a YAML v1 List.
func Serialize(objs []runtime.Object) ([]byte, error) {
	items := make([]interface{}, 0, len(objs))
	for _, obj := range objs {
		m, err := ToUnstructured(obj)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", Describe(obj), err)
		}
		items = append(items, m)
	}
	list := map[string]interface{}{
		"apiVersion": corev1.SchemeGroupVersion.String(),
		"kind":       "List",
		"items":      items,
	}
	return k8syaml.Marshal(list)
}

// DeploymentConfigGVK identifies OpenShift deployment configs.
var DeploymentConfigGVK = schema.GroupVersionKind{Group: "apps.openshift.io", Version: "v1", Kind: "DeploymentConfig"}
