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
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/scheme"
)

// ListBuilder is the ordered collection of resources shared by all enrichers of a run.
// It is not safe for concurrent use.
type ListBuilder struct {
	items []runtime.Object
}

// NewListBuilder creates a builder holding the given resources.
func NewListBuilder(objs ...runtime.Object) *ListBuilder {
	b := &ListBuilder{}
	b.Add(objs...)
	return b
}

// Add appends resources, filling in their apiVersion and kind when missing.
func (b *ListBuilder) Add(objs ...runtime.Object) {
	for _, obj := range objs {
		setTypeMeta(obj)
		b.items = append(b.items, obj)
	}
}

// Items returns a snapshot of the resources.
func (b *ListBuilder) Items() []runtime.Object {
	return append([]runtime.Object(nil), b.items...)
}

// Len returns the number of resources.
func (b *ListBuilder) Len() int {
	return len(b.items)
}

// HasKind reports whether a resource of the kind is present.
func (b *ListBuilder) HasKind(kind Kind) bool {
	for _, obj := range b.items {
		if KindOf(obj) == kind {
			return true
		}
	}
	return false
}

// Find returns the first resource of the kind with the given name, or nil.
func (b *ListBuilder) Find(kind Kind, name string) runtime.Object {
	for _, obj := range b.items {
		if KindOf(obj) != kind {
			continue
		}
		if m, err := meta.Accessor(obj); err == nil && m.GetName() == name {
			return obj
		}
	}
	return nil
}

// Replace swaps old for replacement at the same position. It reports whether old was found.
func (b *ListBuilder) Replace(old, replacement runtime.Object) bool {
	for i, obj := range b.items {
		if obj == old {
			setTypeMeta(replacement)
			b.items[i] = replacement
			return true
		}
	}
	return false
}

// Remove drops a resource.
func (b *ListBuilder) Remove(old runtime.Object) {
	for i, obj := range b.items {
		if obj == old {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

// Visitors dispatches objects by kind. The KindAny entry sees every object.
type Visitors map[Kind]func(obj runtime.Object) error

// Accept calls the matching visitors for every object present when Accept is called.
// Objects added by a visitor are not visited by the same Accept call.
func (b *ListBuilder) Accept(visitors Visitors) error {
	for _, obj := range b.Items() {
		if visit, ok := visitors[KindOf(obj)]; ok {
			if err := visit(obj); err != nil {
				return err
			}
		}
		if visit, ok := visitors[KindAny]; ok {
			if err := visit(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

// Describe returns "Kind/name" for log messages.
func Describe(obj runtime.Object) string {
	name := ""
	if m, err := meta.Accessor(obj); err == nil {
		name = m.GetName()
	}
	return fmt.Sprintf("%s/%s", obj.GetObjectKind().GroupVersionKind().Kind, name)
}

func setTypeMeta(obj runtime.Object) {
	if !obj.GetObjectKind().GroupVersionKind().Empty() {
		return
	}
	gvks, _, err := scheme.Scheme.ObjectKinds(obj)
	if err != nil || len(gvks) == 0 {
		return
	}
	obj.GetObjectKind().SetGroupVersionKind(gvks[0])
}
