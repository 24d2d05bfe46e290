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
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/resource"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestConfigMapFileEnricherAnnotations(t *testing.T) {
	testutil.Run(t, "file and directory", func(t *testutil.T) {
		fs := t.NewFakeFs(&util.Fs)
		t.WriteFakeFile(fs, "/project/src/main/config/app.properties", "greeting=hello")
		t.WriteFakeFile(fs, "/project/static/a.txt", "A")
		t.WriteFakeFile(fs, "/project/static/b.bin", "\xff\xfe")
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name: "config",
				Annotations: map[string]string{
					"jkube.eclipse.org/cm/application.properties": "src/main/config/app.properties",
					"maven.jkube.io/cm/static":                    "static",
				},
			},
			Data: map[string]string{"a.txt": "already there"},
		}
		builder := kubernetes.NewListBuilder(cm)

		runEnricher(t, newConfigMapFileEnricher(testContext()), enricher.Kubernetes, builder)

		t.CheckDeepEqual(map[string]string{
			"application.properties": "greeting=hello",
			"a.txt":                  "already there",
		}, cm.Data)
		t.CheckDeepEqual(map[string][]byte{"b.bin": []byte("\xff\xfe")}, cm.BinaryData)
		t.CheckNil(cm.Annotations)
	})

	testutil.Run(t, "other annotations are kept", func(t *testutil.T) {
		fs := t.NewFakeFs(&util.Fs)
		t.WriteFakeFile(fs, "/etc/app.yaml", "a: b")
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name: "config",
				Annotations: map[string]string{
					"jkube.eclipse.org/cm/app.yaml": "/etc/app.yaml",
					"owner":                         "me",
				},
			},
		}
		builder := kubernetes.NewListBuilder(cm)

		runEnricher(t, newConfigMapFileEnricher(testContext()), enricher.Kubernetes, builder)

		t.CheckDeepEqual(map[string]string{"app.yaml": "a: b"}, cm.Data)
		t.CheckDeepEqual(map[string]string{"owner": "me"}, cm.Annotations)
	})

	testutil.Run(t, "missing file", func(t *testutil.T) {
		t.NewFakeFs(&util.Fs)
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:        "config",
				Annotations: map[string]string{"jkube.eclipse.org/cm/app.yaml": "missing.yaml"},
			},
		}
		builder := kubernetes.NewListBuilder(cm)

		err := newConfigMapFileEnricher(testContext()).Enrich(context.Background(), enricher.Kubernetes, builder)

		t.CheckErrorContains("cannot read missing.yaml", err)
		t.CheckDeepEqual(jkerrors.EnrichSideChannelIO, jkerrors.StatusCodeOf(err))
	})
}

func TestConfigMapFileEnricherConfiguration(t *testing.T) {
	testutil.Run(t, "new config map", func(t *testutil.T) {
		fs := t.NewFakeFs(&util.Fs)
		t.WriteFakeFile(fs, "/project/conf/logging.xml", "<configuration/>")
		ctx := testContext()
		ctx.Resources.ConfigMap = &resource.ConfigMapConfig{
			Entries: []resource.ConfigMapEntry{
				{Name: "mode", Value: "dev"},
				{File: "conf/logging.xml"},
				{Name: "log.xml", File: "conf/logging.xml"},
			},
		}
		builder := kubernetes.NewListBuilder()

		runEnricher(t, newConfigMapFileEnricher(ctx), enricher.Kubernetes, builder)

		cm := builder.Find(kubernetes.KindConfigMap, "my-app").(*corev1.ConfigMap)
		t.CheckDeepEqual(map[string]string{
			"mode":        "dev",
			"logging.xml": "<configuration/>",
			"log.xml":     "<configuration/>",
		}, cm.Data)
	})

	testutil.Run(t, "merged into fragment", func(t *testutil.T) {
		t.NewFakeFs(&util.Fs)
		ctx := testContext()
		ctx.Resources.ConfigMap = &resource.ConfigMapConfig{
			Name:    "settings",
			Entries: []resource.ConfigMapEntry{{Name: "mode", Value: "dev"}, {Name: "region", Value: "eu"}},
		}
		existing := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "settings"},
			Data:       map[string]string{"mode": "prod"},
		}
		builder := kubernetes.NewListBuilder(existing)

		runEnricher(t, newConfigMapFileEnricher(ctx), enricher.Kubernetes, builder)

		t.CheckDeepEqual(1, builder.Len())
		t.CheckDeepEqual(map[string]string{"mode": "prod", "region": "eu"}, existing.Data)
	})

	testutil.Run(t, "entry without name", func(t *testutil.T) {
		ctx := testContext()
		ctx.Resources.ConfigMap = &resource.ConfigMapConfig{
			Entries: []resource.ConfigMapEntry{{Value: "dev"}},
		}

		err := newConfigMapFileEnricher(ctx).Create(context.Background(), enricher.Kubernetes, kubernetes.NewListBuilder())

		t.CheckErrorContains("config map my-app has an entry without name", err)
	})
}

func TestSecretFileEnricher(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		fs := t.NewFakeFs(&util.Fs)
		t.WriteFakeFile(fs, "/project/secrets/key.pem", "KEY")
		secret := &corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{
				Name:        "tls",
				Annotations: map[string]string{"jkube.eclipse.org/secret/tls.key": "secrets/key.pem"},
			},
		}
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:        "untouched",
				Annotations: map[string]string{"jkube.eclipse.org/secret/tls.key": "secrets/key.pem"},
			},
		}
		builder := kubernetes.NewListBuilder(secret, cm)

		runEnricher(t, newSecretFileEnricher(testContext()), enricher.Kubernetes, builder)

		t.CheckDeepEqual(map[string][]byte{"tls.key": []byte("KEY")}, secret.Data)
		t.CheckNil(secret.Annotations)
		t.CheckNil(cm.Data)
		t.CheckDeepEqual(1, len(cm.Annotations))
	})
}
