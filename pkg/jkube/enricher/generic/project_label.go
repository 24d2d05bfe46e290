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

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
)

// projectLabelEnricher labels every resource with the project coordinates and makes services
// and controllers select on them.
type projectLabelEnricher struct {
	enricher.Base
}

func newProjectLabelEnricher(ctx *enricher.Context) enricher.Enricher {
	return &projectLabelEnricher{Base: enricher.NewBase(ProjectLabelEnricher, ctx)}
}

// labels returns the project labels. The version label is left out of selectors so that
// a new version still selects the pods of the old one.
func (e *projectLabelEnricher) labels(withVersion bool) map[string]string {
	p := e.Context().Project
	appLabel := constants.Labels.App
	useProjectLabel := false
	if v, ok := p.Property(constants.PropertyUseProjectLabel); ok {
		useProjectLabel, _ = strconv.ParseBool(v)
	}
	if e.GetBool("useProjectLabel", useProjectLabel) {
		appLabel = "project"
	}

	labels := map[string]string{
		constants.Labels.Provider: constants.Provider,
	}
	if p.ArtifactID != "" {
		labels[appLabel] = p.ArtifactID
	}
	if p.GroupID != "" {
		labels[constants.Labels.Group] = p.GroupID
	}
	if withVersion && p.Version != "" {
		labels[constants.Labels.Version] = p.Version
	}
	return labels
}

func (e *projectLabelEnricher) Create(_ context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	selector := e.labels(false)
	visitors := kubernetes.Visitors{
		kubernetes.KindService: func(obj runtime.Object) error {
			kubernetes.MergeSelector(obj, selector, true)
			return nil
		},
	}
	for _, kind := range controllerKinds {
		if kind == kubernetes.KindJob {
			continue
		}
		visitors[kind] = func(obj runtime.Object) error {
			kubernetes.MergeSelector(obj, selector, true)
			return nil
		}
	}
	return builder.Accept(visitors)
}

func (e *projectLabelEnricher) Enrich(_ context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	labels := e.labels(true)
	err := builder.Accept(kubernetes.Visitors{
		kubernetes.KindAny: func(obj runtime.Object) error {
			kubernetes.MergeLabels(obj, labels)
			return nil
		},
	})
	if err != nil {
		return err
	}
	return visitPodTemplates(builder, func(obj runtime.Object, tmpl *corev1.PodTemplateSpec) error {
		tmpl.Labels = kubernetes.MergeIfAbsent(tmpl.Labels, kubernetes.Selector(obj))
		tmpl.Labels = kubernetes.MergeIfAbsent(tmpl.Labels, labels)
		return nil
	})
}
