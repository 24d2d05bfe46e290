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
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// ingressEnricher creates an Ingress for every service labeled expose=true.
// It is active only in Kubernetes mode and when a host is configured.
type ingressEnricher struct {
	enricher.Base
}

func newIngressEnricher(ctx *enricher.Context) enricher.Enricher {
	return &ingressEnricher{Base: enricher.NewBase(IngressEnricher, ctx)}
}

func (e *ingressEnricher) Create(ctx context.Context, mode enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	if mode != enricher.Kubernetes {
		return nil
	}
	var host, className string
	if cfg := e.Context().Resources.Ingress; cfg != nil {
		host, className = cfg.Host, cfg.IngressClassName
	}
	host = e.Get("host", host)
	className = e.Get("ingressClassName", className)
	if host == "" {
		log.Entry(ctx).Debug("no ingress host configured, skipping ingress")
		return nil
	}

	return builder.Accept(kubernetes.Visitors{
		kubernetes.KindService: func(obj runtime.Object) error {
			svc := obj.(*corev1.Service)
			if svc.Labels[constants.Labels.Expose] != "true" || len(svc.Spec.Ports) == 0 {
				return nil
			}
			if builder.Find(kubernetes.KindIngress, svc.Name) != nil {
				return nil
			}
			builder.Add(newIngress(svc, host, className))
			return nil
		},
	})
}

func newIngress(svc *corev1.Service, host, className string) *networkingv1.Ingress {
	pathType := networkingv1.PathTypeImplementationSpecific
	port := svc.Spec.Ports[0]
	backend := networkingv1.IngressServiceBackend{Name: svc.Name}
	if port.Name != "" {
		backend.Port.Name = port.Name
	} else {
		backend.Port.Number = port.Port
	}
	ing := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{Name: svc.Name},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{{
				Host: svc.Name + "." + host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{
						Paths: []networkingv1.HTTPIngressPath{{
							Path:     "/",
							PathType: &pathType,
							Backend:  networkingv1.IngressBackend{Service: &backend},
						}},
					},
				},
			}},
		},
	}
	if className != "" {
		ing.Spec.IngressClassName = &className
	}
	return ing
}
