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

const storageClassAnnotation = "volume.beta.kubernetes.io/storage-class"

// storageClassEnricher sets the storage class of persistent volume claims that have none.
type storageClassEnricher struct {
	enricher.Base
}

func newStorageClassEnricher(ctx *enricher.Context) enricher.Enricher {
	return &storageClassEnricher{Base: enricher.NewBase(StorageClassEnricher, ctx)}
}

func (e *storageClassEnricher) Enrich(_ context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	class := e.Get("defaultStorageClass", e.Context().Resources.StorageClass)
	if class == "" {
		return nil
	}
	useAnnotation := e.GetBool("useStorageClassAnnotation", false)
	return builder.Accept(kubernetes.Visitors{
		kubernetes.KindPersistentVolumeClaim: func(obj runtime.Object) error {
			pvc := obj.(*corev1.PersistentVolumeClaim)
			if useAnnotation {
				kubernetes.MergeAnnotations(pvc, map[string]string{storageClassAnnotation: class})
				return nil
			}
			if pvc.Spec.StorageClassName == nil {
				pvc.Spec.StorageClassName = &class
			}
			return nil
		},
	})
}
