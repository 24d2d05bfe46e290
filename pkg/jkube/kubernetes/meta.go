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
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// podTemplate returns the pod template of a controller.
type podTemplate func(runtime.Object) (*corev1.PodTemplateSpec, bool)

// selector returns the label selector map of a resource, creating it when create is set.
type selector func(obj runtime.Object, create bool) (map[string]string, bool)

var podTemplates = map[Kind]podTemplate{
	KindDeployment: func(r runtime.Object) (*corev1.PodTemplateSpec, bool) {
		obj, ok := r.(*appsv1.Deployment)
		if !ok {
			return nil, false
		}
		return &obj.Spec.Template, true
	},
	KindStatefulSet: func(r runtime.Object) (*corev1.PodTemplateSpec, bool) {
		obj, ok := r.(*appsv1.StatefulSet)
		if !ok {
			return nil, false
		}
		return &obj.Spec.Template, true
	},
	KindDaemonSet: func(r runtime.Object) (*corev1.PodTemplateSpec, bool) {
		obj, ok := r.(*appsv1.DaemonSet)
		if !ok {
			return nil, false
		}
		return &obj.Spec.Template, true
	},
	KindReplicaSet: func(r runtime.Object) (*corev1.PodTemplateSpec, bool) {
		obj, ok := r.(*appsv1.ReplicaSet)
		if !ok {
			return nil, false
		}
		return &obj.Spec.Template, true
	},
	KindReplicationController: func(r runtime.Object) (*corev1.PodTemplateSpec, bool) {
		obj, ok := r.(*corev1.ReplicationController)
		if !ok {
			return nil, false
		}
		if obj.Spec.Template == nil {
			obj.Spec.Template = &corev1.PodTemplateSpec{}
		}
		return obj.Spec.Template, true
	},
	KindJob: func(r runtime.Object) (*corev1.PodTemplateSpec, bool) {
		obj, ok := r.(*batchv1.Job)
		if !ok {
			return nil, false
		}
		return &obj.Spec.Template, true
	},
}

func labelSelector(s **metav1.LabelSelector, create bool) (map[string]string, bool) {
	if *s == nil {
		if !create {
			return nil, false
		}
		*s = &metav1.LabelSelector{}
	}
	if (*s).MatchLabels == nil {
		if !create {
			return nil, false
		}
		(*s).MatchLabels = map[string]string{}
	}
	return (*s).MatchLabels, true
}

var selectors = map[Kind]selector{
	KindService: func(r runtime.Object, create bool) (map[string]string, bool) {
		obj, ok := r.(*corev1.Service)
		if !ok {
			return nil, false
		}
		if obj.Spec.Selector == nil {
			if !create {
				return nil, false
			}
			obj.Spec.Selector = map[string]string{}
		}
		return obj.Spec.Selector, true
	},
	KindDeployment: func(r runtime.Object, create bool) (map[string]string, bool) {
		obj, ok := r.(*appsv1.Deployment)
		if !ok {
			return nil, false
		}
		return labelSelector(&obj.Spec.Selector, create)
	},
	KindStatefulSet: func(r runtime.Object, create bool) (map[string]string, bool) {
		obj, ok := r.(*appsv1.StatefulSet)
		if !ok {
			return nil, false
		}
		return labelSelector(&obj.Spec.Selector, create)
	},
	KindDaemonSet: func(r runtime.Object, create bool) (map[string]string, bool) {
		obj, ok := r.(*appsv1.DaemonSet)
		if !ok {
			return nil, false
		}
		return labelSelector(&obj.Spec.Selector, create)
	},
	KindReplicaSet: func(r runtime.Object, create bool) (map[string]string, bool) {
		obj, ok := r.(*appsv1.ReplicaSet)
		if !ok {
			return nil, false
		}
		return labelSelector(&obj.Spec.Selector, create)
	},
	KindReplicationController: func(r runtime.Object, create bool) (map[string]string, bool) {
		obj, ok := r.(*corev1.ReplicationController)
		if !ok {
			return nil, false
		}
		if obj.Spec.Selector == nil {
			if !create {
				return nil, false
			}
			obj.Spec.Selector = map[string]string{}
		}
		return obj.Spec.Selector, true
	},
}

// PodTemplate returns the pod template of a controller resource.
func PodTemplate(obj runtime.Object) (*corev1.PodTemplateSpec, bool) {
	if f, ok := podTemplates[KindOf(obj)]; ok {
		return f(obj)
	}
	return nil, false
}

// MergeLabels adds every label missing on the object. Existing values are kept.
func MergeLabels(obj runtime.Object, labels map[string]string) {
	m, err := meta.Accessor(obj)
	if err != nil || len(labels) == 0 {
		return
	}
	m.SetLabels(MergeIfAbsent(m.GetLabels(), labels))
}

// MergeAnnotations adds every annotation missing on the object. Existing values are kept.
func MergeAnnotations(obj runtime.Object, annotations map[string]string) {
	m, err := meta.Accessor(obj)
	if err != nil || len(annotations) == 0 {
		return
	}
	m.SetAnnotations(MergeIfAbsent(m.GetAnnotations(), annotations))
}

// MergeSelector adds the missing selector entries of resources that select pods.
// Resources without a selector get one only when create is set.
func MergeSelector(obj runtime.Object, labels map[string]string, create bool) {
	f, ok := selectors[KindOf(obj)]
	if !ok || len(labels) == 0 {
		return
	}
	sel, ok := f(obj, create)
	if !ok {
		return
	}
	for k, v := range labels {
		if _, found := sel[k]; !found {
			sel[k] = v
		}
	}
}

// Selector returns the selector entries of a resource, if any.
func Selector(obj runtime.Object) map[string]string {
	f, ok := selectors[KindOf(obj)]
	if !ok {
		return nil
	}
	sel, _ := f(obj, false)
	return sel
}

// MergeIfAbsent returns dst with every key of src that dst lacks. dst may be nil.
func MergeIfAbsent(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		if _, found := dst[k]; !found {
			dst[k] = v
		}
	}
	return dst
}

// Name returns the metadata name of an object.
func Name(obj runtime.Object) string {
	if m, err := meta.Accessor(obj); err == nil {
		return m.GetName()
	}
	return ""
}
