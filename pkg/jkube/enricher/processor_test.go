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

package enricher

import (
	"context"
	"errors"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
	"github.com/eclipse-jkube/jkube-kit/testutil"
)

type recording struct {
	Base
	calls     *[]string
	createErr error
}

func (r recording) Create(_ context.Context, _ PlatformMode, b *kubernetes.ListBuilder) error {
	*r.calls = append(*r.calls, "create:"+r.Name())
	b.Add(&corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Name: r.Name()}})
	return r.createErr
}

func (r recording) Enrich(_ context.Context, _ PlatformMode, b *kubernetes.ListBuilder) error {
	*r.calls = append(*r.calls, "enrich:"+r.Name())
	return nil
}

func registry(calls *[]string, failing string) *Registry {
	r := &Registry{}
	for _, name := range []string{"first", "second", "third"} {
		name := name
		r.Register(name, func(ctx *Context) Enricher {
			e := recording{Base: NewBase(name, ctx), calls: calls}
			if name == failing {
				e.createErr = errors.New("cannot create")
			}
			return e
		})
	}
	return r
}

func TestProcessorRunsCreateThenEnrich(t *testing.T) {
	tests := []struct {
		description string
		includes    []string
		excludes    []string
		expected    []string
	}{
		{
			description: "default order",
			expected:    []string{"create:first", "create:second", "create:third", "enrich:first", "enrich:second", "enrich:third"},
		},
		{
			description: "explicit order",
			includes:    []string{"third", "first"},
			expected:    []string{"create:third", "create:first", "enrich:third", "enrich:first"},
		},
		{
			description: "excluded",
			excludes:    []string{"second"},
			expected:    []string{"create:first", "create:third", "enrich:first", "enrich:third"},
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			var calls []string
			p, err := NewProcessor(&Context{}, registry(&calls, ""), test.includes, test.excludes)
			t.RequireNoError(err)
			builder := kubernetes.NewListBuilder()

			err = p.Run(context.Background(), Kubernetes, builder)

			t.CheckNoError(err)
			t.CheckDeepEqual(test.expected, calls)
			t.CheckDeepEqual(len(p.Enrichers()), builder.Len())
		})
	}
}

func TestProcessorErrors(t *testing.T) {
	testutil.Run(t, "unknown enricher", func(t *testutil.T) {
		var calls []string
		_, err := NewProcessor(&Context{}, registry(&calls, ""), []string{"fourth"}, nil)

		t.CheckErrorContains(`unknown enricher "fourth"`, err)
	})
	testutil.Run(t, "create failure stops the run", func(t *testutil.T) {
		var calls []string
		p, err := NewProcessor(&Context{}, registry(&calls, "second"), nil, nil)
		t.RequireNoError(err)

		err = p.Run(context.Background(), Kubernetes, kubernetes.NewListBuilder())

		t.CheckErrorContains("enricher second: cannot create", err)
		t.CheckDeepEqual(jkerrors.ConfigInvalid, jkerrors.StatusCodeOf(err))
		t.CheckDeepEqual([]string{"create:first", "create:second"}, calls)
	})
}

func TestConfiguration(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		c := Configuration{
			Project: &project.JavaProject{Properties: map[string]string{
				"jkube.enricher.jkube-service.type":     "LoadBalancer",
				"jkube.enricher.jkube-service.headless": "yes please",
			}},
			Values: map[string]map[string]string{
				"jkube-service": {"type": "NodePort", "expose": "true"},
			},
		}

		t.CheckDeepEqual("LoadBalancer", c.Get("jkube-service", "type", "ClusterIP"))
		t.CheckDeepEqual("true", c.Get("jkube-service", "expose", "false"))
		t.CheckDeepEqual("x", c.Get("jkube-other", "type", "x"))
		t.CheckTrue(c.GetBool("jkube-service", "expose", false))
		t.CheckTrue(c.GetBool("jkube-service", "headless", true))
		t.CheckFalse(c.GetBool("jkube-service", "missing", false))
	})
}

func TestKubernetesName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"demo", "demo"},
		{"Demo_App.Service", "demo-app-service"},
		{"--x--", "x"},
	}
	for _, test := range tests {
		testutil.Run(t, test.input, func(t *testutil.T) {
			t.CheckDeepEqual(test.expected, KubernetesName(test.input))
		})
	}
}
