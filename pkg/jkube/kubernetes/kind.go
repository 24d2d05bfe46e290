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
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// Kind discriminates the resources of a ListBuilder.
type Kind int

// Kinds with dedicated dispatch. KindAny matches every object and is used for object metadata.
const (
	KindAny Kind = iota
	KindService
	KindDeployment
	KindStatefulSet
	KindDaemonSet
	KindReplicaSet
	KindReplicationController
	KindJob
	KindDeploymentConfig
	KindConfigMap
	KindSecret
	KindServiceAccount
	KindIngress
	KindPersistentVolumeClaim
	KindPod
	KindOther
)

var kindNames = map[Kind]string{
	KindAny:                   "*",
	KindService:               "Service",
	KindDeployment:            "Deployment",
	KindStatefulSet:           "StatefulSet",
	KindDaemonSet:             "DaemonSet",
	KindReplicaSet:            "ReplicaSet",
	KindReplicationController: "ReplicationController",
	KindJob:                   "Job",
	KindDeploymentConfig:      "DeploymentConfig",
	KindConfigMap:             "ConfigMap",
	KindSecret:                "Secret",
	KindServiceAccount:        "ServiceAccount",
	KindIngress:               "Ingress",
	KindPersistentVolumeClaim: "PersistentVolumeClaim",
	KindPod:                   "Pod",
	KindOther:                 "Other",
}

func (k Kind) String() string {
	return kindNames[k]
}

// IsController reports whether the kind manages pods through a pod template.
func (k Kind) IsController() bool {
	switch k {
	case KindDeployment, KindStatefulSet, KindDaemonSet, KindReplicaSet, KindReplicationController, KindJob, KindDeploymentConfig:
		return true
	}
	return false
}

// KindOf returns the kind of a resource. Unstructured objects other than DeploymentConfig are KindOther.
func KindOf(obj runtime.Object) Kind {
	switch o := obj.(type) {
	case *corev1.Service:
		return KindService
	case *appsv1.Deployment:
		return KindDeployment
	case *appsv1.StatefulSet:
		return KindStatefulSet
	case *appsv1.DaemonSet:
		return KindDaemonSet
	case *appsv1.ReplicaSet:
		return KindReplicaSet
	case *corev1.ReplicationController:
		return KindReplicationController
	case *batchv1.Job:
		return KindJob
	case *corev1.ConfigMap:
		return KindConfigMap
	case *corev1.Secret:
		return KindSecret
	case *corev1.ServiceAccount:
		return KindServiceAccount
	case *networkingv1.Ingress:
		return KindIngress
	case *corev1.PersistentVolumeClaim:
		return KindPersistentVolumeClaim
	case *corev1.Pod:
		return KindPod
	case *unstructured.Unstructured:
		if o.GetKind() == kindNames[KindDeploymentConfig] {
			return KindDeploymentConfig
		}
	}
	return KindOther
}
