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

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func testProject() *project.JavaProject {
	return &project.JavaProject{
		GroupID:       "org.acme",
		ArtifactID:    "my-app",
		Version:       "1.0.0",
		BaseDirectory: "/project",
		Properties:    map[string]string{},
	}
}

func testContext(images ...*image.ImageConfiguration) *enricher.Context {
	p := testProject()
	return &enricher.Context{
		Project: p,
		Images:  images,
		Config:  enricher.Configuration{Project: p, Values: map[string]map[string]string{}},
	}
}

func buildImage(name string, ports ...string) *image.ImageConfiguration {
	return &image.ImageConfiguration{
		Name:  name,
		Build: &image.BuildConfiguration{From: "eclipse-temurin:17", Ports: ports},
	}
}

func runEnricher(t *testutil.T, e enricher.Enricher, mode enricher.PlatformMode, builder *kubernetes.ListBuilder) {
	t.Helper()
	t.CheckNoError(e.Create(context.Background(), mode, builder))
	t.CheckNoError(e.Enrich(context.Background(), mode, builder))
}

func kinds(builder *kubernetes.ListBuilder) []string {
	var out []string
	for _, obj := range builder.Items() {
		out = append(out, kubernetes.KindOf(obj).String()+"/"+kubernetes.Name(obj))
	}
	return out
}

func podTemplateOf(t *testutil.T, obj runtime.Object) *corev1.PodTemplateSpec {
	t.Helper()
	tmpl, ok := kubernetes.PodTemplate(obj)
	if !ok {
		t.Fatalf("%s has no pod template", kubernetes.Describe(obj))
	}
	return tmpl
}

func TestDefaultRegistryOrder(t *testing.T) {
	names := DefaultRegistry().Names()
	testutil.CheckDeepEqual(t, NameEnricher, names[0])
	testutil.CheckDeepEqual(t, DeploymentConfigEnricher, names[len(names)-1])
	testutil.CheckDeepEqual(t, 13, len(names))
}

func TestDefaultPipeline(t *testing.T) {
	testutil.Run(t, "zero config project", func(t *testutil.T) {
		ctx := testContext(buildImage("org.acme/my-app:1.0.0", "8080"))
		p, err := enricher.NewProcessor(ctx, DefaultRegistry(), nil, nil)
		t.RequireNoError(err)

		builder := kubernetes.NewListBuilder()
		t.CheckNoError(p.Run(context.Background(), enricher.Kubernetes, builder))

		t.CheckDeepEqual([]string{"Deployment/my-app", "Service/my-app"}, kinds(builder))

		svc := builder.Find(kubernetes.KindService, "my-app").(*corev1.Service)
		t.CheckDeepEqual(map[string]string{"app": "my-app", "provider": "jkube", "group": "org.acme"}, svc.Spec.Selector)
		t.CheckDeepEqual("http", svc.Spec.Ports[0].Name)

		d := builder.Find(kubernetes.KindDeployment, "my-app").(*appsv1.Deployment)
		t.CheckDeepEqual(map[string]string{"app": "my-app", "provider": "jkube", "group": "org.acme"}, d.Spec.Selector.MatchLabels)
		t.CheckDeepEqual(map[string]string{"app": "my-app", "provider": "jkube", "group": "org.acme", "version": "1.0.0"}, d.Spec.Template.Labels)
		t.CheckDeepEqual(int32(1), *d.Spec.Replicas)
		t.CheckDeepEqual(1, len(d.Spec.Template.Spec.Containers))
		c := d.Spec.Template.Spec.Containers[0]
		t.CheckDeepEqual("my-app", c.Name)
		t.CheckDeepEqual("org.acme/my-app:1.0.0", c.Image)
		t.CheckDeepEqual(corev1.PullIfNotPresent, c.ImagePullPolicy)
	})

	testutil.Run(t, "fragment is completed, not replaced", func(t *testutil.T) {
		ctx := testContext(buildImage("org.acme/my-app:1.0.0", "8080"))
		p, err := enricher.NewProcessor(ctx, DefaultRegistry(), nil, nil)
		t.RequireNoError(err)

		fragment := &appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{"app": "custom"}},
			Spec: appsv1.DeploymentSpec{
				Template: corev1.PodTemplateSpec{
					Spec: corev1.PodSpec{
						Containers: []corev1.Container{{
							Env: []corev1.EnvVar{{Name: "FOO", Value: "bar"}},
						}},
					},
				},
			},
		}
		builder := kubernetes.NewListBuilder(fragment)
		t.CheckNoError(p.Run(context.Background(), enricher.Kubernetes, builder))

		t.CheckDeepEqual([]string{"Deployment/my-app", "Service/my-app"}, kinds(builder))
		t.CheckDeepEqual("custom", fragment.Labels["app"])
		t.CheckDeepEqual("jkube", fragment.Labels["provider"])
		c := fragment.Spec.Template.Spec.Containers[0]
		t.CheckDeepEqual("org.acme/my-app:1.0.0", c.Image)
		t.CheckDeepEqual([]corev1.EnvVar{{Name: "FOO", Value: "bar"}}, c.Env)
	})

	testutil.Run(t, "openshift", func(t *testutil.T) {
		ctx := testContext(buildImage("org.acme/my-app:1.0.0", "8080"))
		p, err := enricher.NewProcessor(ctx, DefaultRegistry(), nil, nil)
		t.RequireNoError(err)

		builder := kubernetes.NewListBuilder()
		t.CheckNoError(p.Run(context.Background(), enricher.OpenShift, builder))

		t.CheckDeepEqual([]string{"DeploymentConfig/my-app", "Service/my-app"}, kinds(builder))
	})

	testutil.Run(t, "no images", func(t *testutil.T) {
		p, err := enricher.NewProcessor(testContext(), DefaultRegistry(), nil, nil)
		t.RequireNoError(err)

		builder := kubernetes.NewListBuilder()
		t.CheckNoError(p.Run(context.Background(), enricher.Kubernetes, builder))

		t.CheckEmpty(kinds(builder))
	})
}

func TestNameEnricher(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		named := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Name: "keep"}}
		unnamed := &corev1.ConfigMap{}
		builder := kubernetes.NewListBuilder(named, unnamed)

		runEnricher(t, newNameEnricher(testContext()), enricher.Kubernetes, builder)

		t.CheckDeepEqual("keep", named.Name)
		t.CheckDeepEqual("my-app", unnamed.Name)
	})
}

func TestMetadataEnricher(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		ctx := testContext()
		ctx.Resources.Labels.All = map[string]string{"team": "a"}
		ctx.Resources.Labels.Service = map[string]string{"kind": "svc"}
		ctx.Resources.Labels.Pod = map[string]string{"pod": "x"}
		ctx.Resources.Annotations.Deployment = map[string]string{"owner": "me"}
		ctx.Resources.Namespace = "team-a"

		svc := &corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "s", Labels: map[string]string{"team": "b"}}}
		d := &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Name: "d", Namespace: "other"}}
		builder := kubernetes.NewListBuilder(svc, d)

		runEnricher(t, newMetadataEnricher(ctx), enricher.Kubernetes, builder)

		t.CheckDeepEqual(map[string]string{"team": "b", "kind": "svc"}, svc.Labels)
		t.CheckNil(svc.Annotations)
		t.CheckDeepEqual(map[string]string{"team": "a"}, d.Labels)
		t.CheckDeepEqual(map[string]string{"owner": "me"}, d.Annotations)
		t.CheckDeepEqual(map[string]string{"team": "a", "pod": "x"}, d.Spec.Template.Labels)
		t.CheckDeepEqual("team-a", svc.Namespace)
		t.CheckDeepEqual("other", d.Namespace)
	})
}
