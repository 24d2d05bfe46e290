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

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
)

// Factory creates an enricher for a run.
type Factory func(ctx *Context) Enricher

type registration struct {
	name    string
	factory Factory
}

// Registry holds the known enrichers in their default order.
type Registry struct {
	registrations []registration
}

// Register appends an enricher to the default order.
func (r *Registry) Register(name string, factory Factory) {
	r.registrations = append(r.registrations, registration{name: name, factory: factory})
}

// Names returns the registered enrichers in default order.
func (r *Registry) Names() []string {
	var names []string
	for _, reg := range r.registrations {
		names = append(names, reg.name)
	}
	return names
}

func (r *Registry) lookup(name string) (Factory, bool) {
	for _, reg := range r.registrations {
		if reg.name == name {
			return reg.factory, true
		}
	}
	return nil, false
}

// Processor runs the create phase of all enrichers, then the enrich phase of all enrichers.
type Processor struct {
	enrichers []Enricher
}

// NewProcessor selects enrichers from the registry. A non empty includes list is the exact order to use;
// excludes are removed afterwards.
func NewProcessor(ctx *Context, registry *Registry, includes, excludes []string) (*Processor, error) {
	names := includes
	if len(names) == 0 {
		names = registry.Names()
	}
	p := &Processor{}
	for _, name := range names {
		if util.StrSliceContains(excludes, name) {
			continue
		}
		factory, found := registry.lookup(name)
		if !found {
			return nil, jkerrors.ConfigError(jkerrors.ConfigInvalid, "unknown enricher %q, known enrichers: %v", name, registry.Names())
		}
		p.enrichers = append(p.enrichers, factory(ctx))
	}
	return p, nil
}

// Enrichers returns the selected enrichers in execution order.
func (p *Processor) Enrichers() []Enricher {
	return p.enrichers
}

// CreateDefaultResources runs the create phase.
func (p *Processor) CreateDefaultResources(ctx context.Context, mode PlatformMode, builder *kubernetes.ListBuilder) error {
	for _, e := range p.enrichers {
		ctx := log.WithTask(ctx, constants.Enrich, e.Name())
		log.Entry(ctx).Debugf("create: %s", e.Name())
		if err := e.Create(ctx, mode, builder); err != nil {
			return wrap(e, err)
		}
	}
	return nil
}

// Enrich runs the enrich phase.
func (p *Processor) Enrich(ctx context.Context, mode PlatformMode, builder *kubernetes.ListBuilder) error {
	for _, e := range p.enrichers {
		ctx := log.WithTask(ctx, constants.Enrich, e.Name())
		log.Entry(ctx).Debugf("enrich: %s", e.Name())
		if err := e.Enrich(ctx, mode, builder); err != nil {
			return wrap(e, err)
		}
	}
	return nil
}

// Run runs both phases.
func (p *Processor) Run(ctx context.Context, mode PlatformMode, builder *kubernetes.ListBuilder) error {
	if err := p.CreateDefaultResources(ctx, mode, builder); err != nil {
		return err
	}
	return p.Enrich(ctx, mode, builder)
}

func wrap(e Enricher, err error) error {
	code := jkerrors.StatusCodeOf(err)
	if code == jkerrors.UnknownError {
		code = jkerrors.ConfigInvalid
	}
	return jkerrors.NewError(err, jkerrors.ActionableErr{
		Message: "enricher " + e.Name() + ": " + err.Error(),
		ErrCode: code,
	})
}
