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

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// secretFileEnricher injects files referenced by jkube.eclipse.org/secret/<key> annotations into secrets.
type secretFileEnricher struct {
	enricher.Base
}

func newSecretFileEnricher(ctx *enricher.Context) enricher.Enricher {
	return &secretFileEnricher{Base: enricher.NewBase(SecretFileEnricher, ctx)}
}

func (e *secretFileEnricher) Enrich(ctx context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	baseDir := e.Context().Project.BaseDir()
	return builder.Accept(kubernetes.Visitors{
		kubernetes.KindSecret: func(obj runtime.Object) error {
			secret := obj.(*corev1.Secret)
			for _, fa := range fileAnnotations(secret.Annotations, constants.SecretAnnotationPrefixes) {
				files, err := readSideChannel(baseDir, fa.dataKey, fa.path)
				if err != nil {
					return err
				}
				for _, f := range files {
					if _, found := secret.Data[f.key]; found {
						continue
					}
					if secret.Data == nil {
						secret.Data = map[string][]byte{}
					}
					log.Entry(ctx).Debugf("adding %s to secret %s as %s", fa.path, secret.Name, f.key)
					secret.Data[f.key] = f.content
				}
				delete(secret.Annotations, fa.key)
			}
			if len(secret.Annotations) == 0 {
				secret.Annotations = nil
			}
			return nil
		},
	})
}
