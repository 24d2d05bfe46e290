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
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
)

// Enricher names.
const (
	NameEnricher             = "jkube-name"
	ControllerEnricher       = "jkube-controller"
	ServiceEnricher          = "jkube-service"
	ImageEnricher            = "jkube-image"
	ConfigMapFileEnricher    = "jkube-configmap-file"
	SecretFileEnricher       = "jkube-secret-file"
	ServiceAccountEnricher   = "jkube-service-account"
	ProjectLabelEnricher     = "jkube-project-label"
	ContainerEnvEnricher     = "jkube-container-env"
	MetadataEnricher         = "jkube-metadata"
	IngressEnricher          = "jkube-ingress"
	StorageClassEnricher     = "jkube-persistentvolumeclaim-storage-class"
	DeploymentConfigEnricher = "jkube-openshift-deploymentconfig"
)

// DefaultRegistry returns the generic enrichers in their default order.
func DefaultRegistry() *enricher.Registry {
	r := &enricher.Registry{}
	r.Register(NameEnricher, newNameEnricher)
	r.Register(ControllerEnricher, newControllerEnricher)
	r.Register(ServiceEnricher, newServiceEnricher)
	r.Register(ImageEnricher, newImageEnricher)
	r.Register(ConfigMapFileEnricher, newConfigMapFileEnricher)
	r.Register(SecretFileEnricher, newSecretFileEnricher)
	r.Register(ServiceAccountEnricher, newServiceAccountEnricher)
	r.Register(ProjectLabelEnricher, newProjectLabelEnricher)
	r.Register(ContainerEnvEnricher, newContainerEnvEnricher)
	r.Register(MetadataEnricher, newMetadataEnricher)
	r.Register(IngressEnricher, newIngressEnricher)
	r.Register(StorageClassEnricher, newStorageClassEnricher)
	r.Register(DeploymentConfigEnricher, newDeploymentConfigEnricher)
	return r
}
