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
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/pointer"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/resource"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/warnings"
)

// controllerEnricher creates the workload controller running the built images.
type controllerEnricher struct {
	enricher.Base
}

func newControllerEnricher(ctx *enricher.Context) enricher.Enricher {
	return &controllerEnricher{Base: enricher.NewBase(ControllerEnricher, ctx)}
}

var controllerTypes = map[string]kubernetes.Kind{
	resource.ControllerDeployment:  kubernetes.KindDeployment,
	resource.ControllerStatefulSet: kubernetes.KindStatefulSet,
	resource.ControllerDaemonSet:   kubernetes.KindDaemonSet,
	resource.ControllerReplicaSet:  kubernetes.KindReplicaSet,
	resource.ControllerJob:         kubernetes.KindJob,
}

func (e *controllerEnricher) Create(ctx context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	ectx := e.Context()
	images := ectx.BuildImages()
	if len(images) == 0 {
		log.Entry(ctx).Debug("no images to build, skipping controller")
		return nil
	}

	cfg := resource.ControllerConfig{}
	if ectx.Resources.Controller != nil {
		cfg = *ectx.Resources.Controller
	}
	controllerType := e.Get("type", cfg.Type)
	if controllerType == "" {
		controllerType = resource.ControllerDeployment
	}
	kind, ok := controllerTypes[controllerType]
	if !ok {
		return jkerrors.ConfigError(jkerrors.ConfigInvalid, "unknown controller type %q", controllerType)
	}
	if hasOtherController(builder, kind) {
		log.Entry(ctx).Debug("user supplied a controller, skipping default controller")
		return nil
	}

	name := e.Get("name", ectx.DefaultResourceName())
	replicas := cfg.Replicas
	if v := e.Get("replicas", ""); v != "" {
		r, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			warnings.Printf("Ignoring invalid replicas %q of enricher %s", v, e.Name())
		} else {
			replicas = pointer.Int32(int32(r))
		}
	}
	if replicas == nil {
		replicas = pointer.Int32(1)
	}

	tmpl := corev1.PodTemplateSpec{
		Spec: corev1.PodSpec{
			ServiceAccountName: cfg.ServiceAccount,
		},
	}
	for _, img := range images {
		tmpl.Spec.Containers = append(tmpl.Spec.Containers, e.container(img))
	}
	if kind == kubernetes.KindJob {
		tmpl.Spec.RestartPolicy = corev1.RestartPolicyOnFailure
	}

	if existing := findNamedOrUnnamed(builder, kind, name); existing != nil {
		mergeController(existing, replicas, tmpl)
		return nil
	}
	builder.Add(newController(kind, name, *replicas, tmpl))
	return nil
}

func (e *controllerEnricher) container(img *image.ImageConfiguration) corev1.Container {
	c := corev1.Container{
		Name:  containerName(img),
		Image: img.Name,
	}
	ports, err := img.Build.ExposedPorts()
	if err != nil {
		warnings.Printf("Ignoring ports of image %s: %v", img.Name, err)
	}
	for _, p := range ports {
		proto, _ := kubernetes.Protocol(p.Proto())
		c.Ports = append(c.Ports, corev1.ContainerPort{
			ContainerPort: int32(p.Int()),
			Protocol:      proto,
		})
	}
	return c
}

func hasOtherController(builder *kubernetes.ListBuilder, kind kubernetes.Kind) bool {
	for _, k := range controllerKinds {
		if k != kind && builder.HasKind(k) {
			return true
		}
	}
	return false
}

func mergeController(obj runtime.Object, replicas *int32, defaults corev1.PodTemplateSpec) {
	switch o := obj.(type) {
	case *appsv1.Deployment:
		if o.Spec.Replicas == nil {
			o.Spec.Replicas = replicas
		}
	case *appsv1.StatefulSet:
		if o.Spec.Replicas == nil {
			o.Spec.Replicas = replicas
		}
	case *appsv1.ReplicaSet:
		if o.Spec.Replicas == nil {
			o.Spec.Replicas = replicas
		}
	}
	tmpl, ok := kubernetes.PodTemplate(obj)
	if !ok {
		return
	}
	if tmpl.Spec.ServiceAccountName == "" {
		tmpl.Spec.ServiceAccountName = defaults.Spec.ServiceAccountName
	}
	if tmpl.Spec.RestartPolicy == "" {
		tmpl.Spec.RestartPolicy = defaults.Spec.RestartPolicy
	}
	for i, c := range defaults.Spec.Containers {
		if i < len(tmpl.Spec.Containers) {
			kubernetes.MergeContainer(&tmpl.Spec.Containers[i], c)
		} else {
			tmpl.Spec.Containers = append(tmpl.Spec.Containers, c)
		}
	}
}

func newController(kind kubernetes.Kind, name string, replicas int32, tmpl corev1.PodTemplateSpec) runtime.Object {
	meta := metav1.ObjectMeta{Name: name}
	switch kind {
	case kubernetes.KindStatefulSet:
		return &appsv1.StatefulSet{
			ObjectMeta: meta,
			Spec:       appsv1.StatefulSetSpec{Replicas: &replicas, ServiceName: name, Template: tmpl},
		}
	case kubernetes.KindDaemonSet:
		return &appsv1.DaemonSet{ObjectMeta: meta, Spec: appsv1.DaemonSetSpec{Template: tmpl}}
	case kubernetes.KindReplicaSet:
		return &appsv1.ReplicaSet{ObjectMeta: meta, Spec: appsv1.ReplicaSetSpec{Replicas: &replicas, Template: tmpl}}
	case kubernetes.KindJob:
		return &batchv1.Job{ObjectMeta: meta, Spec: batchv1.JobSpec{Template: tmpl}}
	default:
		return &appsv1.Deployment{ObjectMeta: meta, Spec: appsv1.DeploymentSpec{Replicas: &replicas, Template: tmpl}}
	}
}
