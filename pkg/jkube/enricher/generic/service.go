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
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/resource"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/warnings"
)

// serviceEnricher creates services for the configured services or, without configuration,
// one service exposing the ports of the built images.
type serviceEnricher struct {
	enricher.Base
}

func newServiceEnricher(ctx *enricher.Context) enricher.Enricher {
	return &serviceEnricher{Base: enricher.NewBase(ServiceEnricher, ctx)}
}

func (e *serviceEnricher) Create(ctx context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	configs := e.Context().Resources.Services
	if len(configs) == 0 {
		configs = []resource.ServiceConfig{e.defaultServiceConfig()}
	}
	for _, cfg := range configs {
		svc := e.serviceFor(cfg)
		if existing, ok := findNamedOrUnnamed(builder, kubernetes.KindService, svc.Name).(*corev1.Service); ok {
			log.Entry(ctx).Debugf("merging default service into %s", kubernetes.Describe(existing))
			kubernetes.MergeService(existing, svc)
			continue
		}
		if len(svc.Spec.Ports) == 0 && svc.Spec.ClusterIP != corev1.ClusterIPNone {
			log.Entry(ctx).Debugf("no ports for service %s, skipping", svc.Name)
			continue
		}
		builder.Add(svc)
	}
	return nil
}

func (e *serviceEnricher) defaultServiceConfig() resource.ServiceConfig {
	cfg := resource.ServiceConfig{
		Name:     e.Get("name", e.Context().DefaultResourceName()),
		Type:     e.Get("type", ""),
		Headless: e.GetBool("headless", false),
		Expose:   e.GetBool("expose", false),
	}
	if port := e.Get("port", ""); port != "" {
		cfg.Ports = []string{port}
		return cfg
	}
	for _, img := range e.Context().BuildImages() {
		cfg.Ports = append(cfg.Ports, img.Build.Ports...)
	}
	if !e.GetBool("multiPort", false) && len(cfg.Ports) > 1 {
		cfg.Ports = cfg.Ports[:1]
	}
	return cfg
}

func (e *serviceEnricher) serviceFor(cfg resource.ServiceConfig) *corev1.Service {
	name := cfg.Name
	if name == "" {
		name = e.Context().DefaultResourceName()
	}
	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec:       corev1.ServiceSpec{Type: corev1.ServiceType(cfg.Type)},
	}
	if cfg.Expose {
		svc.Labels = map[string]string{constants.Labels.Expose: "true"}
	}
	if cfg.Headless {
		svc.Spec.ClusterIP = corev1.ClusterIPNone
	}
	for _, spec := range cfg.Ports {
		port, err := kubernetes.ParseServicePort(spec)
		if err != nil {
			warnings.Printf("Skipping port %q of service %s: %v", spec, name, err)
			continue
		}
		if port.Name == "" {
			warnings.Printf("Cannot determine a well known name for port %d of service %s", port.Port, name)
			port.Name = strings.ToLower(string(port.Protocol)) + "-" + strconv.Itoa(int(port.Port))
		}
		svc.Spec.Ports = append(svc.Spec.Ports, port)
	}
	return svc
}
