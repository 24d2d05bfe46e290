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

package kubernetes

import (
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func service(name string) *corev1.Service {
	return &corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func deployment(name string) *appsv1.Deployment {
	return &appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func TestListBuilderAddSetsTypeMeta(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		b := NewListBuilder(service("web"), deployment("web"))

		t.CheckDeepEqual(2, b.Len())
		t.CheckDeepEqual("Service", b.Items()[0].GetObjectKind().GroupVersionKind().Kind)
		t.CheckDeepEqual("apps/v1", b.Items()[1].GetObjectKind().GroupVersionKind().GroupVersion().String())
	})
}

func TestListBuilderFind(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		svc := service("web")
		b := NewListBuilder(deployment("web"), svc)

		t.CheckTrue(b.Find(KindService, "web") == svc)
		t.CheckNil(b.Find(KindService, "other"))
		t.CheckTrue(b.HasKind(KindDeployment))
		t.CheckFalse(b.HasKind(KindConfigMap))
	})
}

func TestListBuilderReplaceAndRemove(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		d := deployment("web")
		b := NewListBuilder(service("a"), d, service("b"))
		replacement := &unstructured.Unstructured{}
		replacement.SetGroupVersionKind(DeploymentConfigGVK)
		replacement.SetName("web")

		t.CheckTrue(b.Replace(d, replacement))
		t.CheckFalse(b.Replace(d, replacement))
		t.CheckTrue(b.Items()[1] == runtime.Object(replacement))
		t.CheckDeepEqual(KindDeploymentConfig, KindOf(b.Items()[1]))

		b.Remove(replacement)
		t.CheckDeepEqual([]string{"a", "b"}, names(b.Items()))
	})
}

func TestAcceptSnapshot(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		b := NewListBuilder(service("a"), deployment("a"))
		var services, all int

		err := b.Accept(Visitors{
			KindService: func(obj runtime.Object) error {
				services++
				b.Add(service("added-" + Name(obj)))
				return nil
			},
			KindAny: func(runtime.Object) error {
				all++
				return nil
			},
		})

		t.CheckNoError(err)
		t.CheckDeepEqual(1, services)
		t.CheckDeepEqual(2, all)
		t.CheckDeepEqual(3, b.Len())
	})
}

func TestKindOf(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		other := &unstructured.Unstructured{}
		other.SetKind("Route")

		t.CheckDeepEqual(KindService, KindOf(service("a")))
		t.CheckDeepEqual(KindDeployment, KindOf(deployment("a")))
		t.CheckDeepEqual(KindOther, KindOf(other))
		t.CheckTrue(KindDeployment.IsController())
		t.CheckFalse(KindService.IsController())
		t.CheckDeepEqual("StatefulSet", KindStatefulSet.String())
	})
}

func names(objs []runtime.Object) []string {
	var out []string
	for _, o := range objs {
		out = append(out, Name(o))
	}
	return out
}
