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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// serviceAccountEnricher creates the configured service accounts and the ones referenced by controllers,
// and binds accounts to the controllers named in their deploymentRef.
type serviceAccountEnricher struct {
	enricher.Base
}

func newServiceAccountEnricher(ctx *enricher.Context) enricher.Enricher {
	return &serviceAccountEnricher{Base: enricher.NewBase(ServiceAccountEnricher, ctx)}
}

func (e *serviceAccountEnricher) Create(ctx context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	for _, sa := range e.Context().Resources.ServiceAccounts {
		if sa.Name == "" || !sa.IsGenerate() {
			continue
		}
		addServiceAccount(ctx, builder, sa.Name)
	}
	return visitPodTemplates(builder, func(_ runtime.Object, tmpl *corev1.PodTemplateSpec) error {
		name := tmpl.Spec.ServiceAccountName
		if name == "" {
			name = tmpl.Spec.DeprecatedServiceAccount
		}
		if name != "" {
			addServiceAccount(ctx, builder, name)
		}
		return nil
	})
}

func (e *serviceAccountEnricher) Enrich(_ context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	refs := map[string]string{}
	for _, sa := range e.Context().Resources.ServiceAccounts {
		if sa.Name != "" && sa.DeploymentRef != "" {
			refs[sa.DeploymentRef] = sa.Name
		}
	}
	if len(refs) == 0 {
		return nil
	}
	return visitPodTemplates(builder, func(obj runtime.Object, tmpl *corev1.PodTemplateSpec) error {
		if name, ok := refs[kubernetes.Name(obj)]; ok && tmpl.Spec.ServiceAccountName == "" {
			tmpl.Spec.ServiceAccountName = name
		}
		return nil
	})
}

func addServiceAccount(ctx context.Context, builder *kubernetes.ListBuilder, name string) {
	if builder.Find(kubernetes.KindServiceAccount, name) != nil {
		return
	}
	log.Entry(ctx).Debugf("adding service account %s", name)
	builder.Add(&corev1.ServiceAccount{ObjectMeta: metav1.ObjectMeta{Name: name}})
}
