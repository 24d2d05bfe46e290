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

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// nameEnricher names every unnamed resource after the project.
type nameEnricher struct {
	enricher.Base
}

func newNameEnricher(ctx *enricher.Context) enricher.Enricher {
	return &nameEnricher{Base: enricher.NewBase(NameEnricher, ctx)}
}

func (e *nameEnricher) Create(ctx context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	name := e.Get("name", e.Context().DefaultResourceName())
	return builder.Accept(kubernetes.Visitors{
		kubernetes.KindAny: func(obj runtime.Object) error {
			m, err := meta.Accessor(obj)
			if err != nil {
				return nil
			}
			if m.GetName() == "" {
				log.Entry(ctx).Debugf("naming %s %s", kubernetes.KindOf(obj), name)
				m.SetName(name)
			}
			return nil
		},
	})
}
