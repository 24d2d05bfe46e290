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
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
)

// metadataEnricher adds the labels, annotations and namespace of the resource configuration.
type metadataEnricher struct {
	enricher.Base
}

func newMetadataEnricher(ctx *enricher.Context) enricher.Enricher {
	return &metadataEnricher{Base: enricher.NewBase(MetadataEnricher, ctx)}
}

func (e *metadataEnricher) Enrich(_ context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	cfg := e.Context().Resources
	err := builder.Accept(kubernetes.Visitors{
		kubernetes.KindAny: func(obj runtime.Object) error {
			kind := kubernetes.KindOf(obj).String()
			kubernetes.MergeLabels(obj, cfg.Labels.ForKind(kind))
			kubernetes.MergeAnnotations(obj, cfg.Annotations.ForKind(kind))
			if m, err := meta.Accessor(obj); err == nil && cfg.Namespace != "" && m.GetNamespace() == "" {
				m.SetNamespace(cfg.Namespace)
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	return visitPodTemplates(builder, func(_ runtime.Object, tmpl *corev1.PodTemplateSpec) error {
		tmpl.Labels = kubernetes.MergeIfAbsent(tmpl.Labels, cfg.Labels.ForKind("Pod"))
		tmpl.Annotations = kubernetes.MergeIfAbsent(tmpl.Annotations, cfg.Annotations.ForKind("Pod"))
		return nil
	})
}
