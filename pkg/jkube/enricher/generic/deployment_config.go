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

	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// deploymentConfigEnricher replaces Deployments with OpenShift DeploymentConfigs.
// It runs last so that every other enricher sees the Deployment.
type deploymentConfigEnricher struct {
	enricher.Base
}

func newDeploymentConfigEnricher(ctx *enricher.Context) enricher.Enricher {
	return &deploymentConfigEnricher{Base: enricher.NewBase(DeploymentConfigEnricher, ctx)}
}

func (e *deploymentConfigEnricher) Enrich(ctx context.Context, mode enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	if mode != enricher.OpenShift || e.GetBool("switchToDeployment", false) {
		return nil
	}
	return builder.Accept(kubernetes.Visitors{
		kubernetes.KindDeployment: func(obj runtime.Object) error {
			dc, err := toDeploymentConfig(obj.(*appsv1.Deployment))
			if err != nil {
				return err
			}
			log.Entry(ctx).Debugf("converting %s to DeploymentConfig", kubernetes.Describe(obj))
			builder.Replace(obj, dc)
			return nil
		},
	})
}

func toDeploymentConfig(d *appsv1.Deployment) (*unstructured.Unstructured, error) {
	m, err := kubernetes.ToUnstructured(d)
	if err != nil {
		return nil, err
	}
	dc := &unstructured.Unstructured{Object: map[string]interface{}{}}
	dc.SetGroupVersionKind(kubernetes.DeploymentConfigGVK)
	if metadata, ok := m["metadata"].(map[string]interface{}); ok {
		dc.Object["metadata"] = metadata
	}

	spec := map[string]interface{}{
		"triggers": []interface{}{
			map[string]interface{}{"type": "ConfigChange"},
		},
	}
	if d.Spec.Replicas != nil {
		spec["replicas"] = int64(*d.Spec.Replicas)
	}
	if d.Spec.RevisionHistoryLimit != nil {
		spec["revisionHistoryLimit"] = int64(*d.Spec.RevisionHistoryLimit)
	}
	if d.Spec.Selector != nil && len(d.Spec.Selector.MatchLabels) > 0 {
		selector := map[string]interface{}{}
		for k, v := range d.Spec.Selector.MatchLabels {
			selector[k] = v
		}
		spec["selector"] = selector
	}
	if tmpl, found, _ := unstructured.NestedMap(m, "spec", "template"); found {
		spec["template"] = tmpl
	}
	strategy := "Rolling"
	if d.Spec.Strategy.Type == appsv1.RecreateDeploymentStrategyType {
		strategy = "Recreate"
	}
	spec["strategy"] = map[string]interface{}{"type": strategy}
	dc.Object["spec"] = spec
	return dc, nil
}
