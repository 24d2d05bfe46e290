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

package resource

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/yaml"
)

// Step transforms the content of one source file. existing is the content of the target before
// the run, nil if it did not exist. previous is the output of the preceding step, nil for the first step.
// A step returning nil content fails the file.
type Step func(source, target string, existing, previous []byte) ([]byte, error)

// Processor runs the steps over source files and writes one file per target name into OutputDir.
type Processor struct {
	OutputDir string
	Steps     []Step

	// TargetName maps a source file to its target file name. Defaults to the base name.
	TargetName func(source string) string
}

type target struct {
	path    string
	sources []string
}

// Process writes the targets and returns their paths in first occurrence order.
// Sources sharing a target are processed in order; YAML outputs are deep merged,
// other outputs replace the previous one.
func (p *Processor) Process(ctx context.Context, sources []string) ([]string, error) {
	targets := p.group(sources)
	written := make([]string, 0, len(targets))
	for _, t := range targets {
		content, err := p.processTarget(ctx, t)
		if err != nil {
			return nil, err
		}
		if err := util.WriteFile(t.path, content); err != nil {
			return nil, processingError(fmt.Sprintf("writing %s", t.path), err)
		}
		written = append(written, t.path)
	}
	return written, nil
}

func (p *Processor) group(sources []string) []*target {
	targetName := p.TargetName
	if targetName == nil {
		targetName = filepath.Base
	}
	var targets []*target
	byPath := map[string]*target{}
	for _, source := range sources {
		path := filepath.Join(p.OutputDir, targetName(source))
		t, found := byPath[path]
		if !found {
			t = &target{path: path}
			byPath[path] = t
			targets = append(targets, t)
		}
		t.sources = append(t.sources, source)
	}
	return targets
}

func (p *Processor) processTarget(ctx context.Context, t *target) ([]byte, error) {
	existing, err := readExisting(t.path)
	if err != nil {
		return nil, err
	}
	isYaml := yaml.IsYamlFile(t.path)

	var result []byte
	for i, source := range t.sources {
		out, err := p.run(source, t.path, existing)
		if err != nil {
			return nil, err
		}
		switch {
		case i == 0:
			result = out
		case isYaml:
			log.Entry(ctx).Debugf("merging %s into %s", source, t.path)
			if result, err = yaml.MergeDocuments(result, out); err != nil {
				return nil, processingError(fmt.Sprintf("merging %s into %s", source, t.path), err)
			}
		default:
			log.Entry(ctx).Debugf("%s replaces the content of %s", source, t.path)
			result = out
		}
	}
	return result, nil
}

func (p *Processor) run(source, target string, existing []byte) ([]byte, error) {
	var content []byte
	for i, step := range p.Steps {
		out, err := step(source, target, existing, content)
		if err != nil {
			return nil, processingError(fmt.Sprintf("processing %s", source), err)
		}
		if out == nil {
			return nil, jkerrors.NewErrorWithStatusCode(jkerrors.ActionableErr{
				Message: fmt.Sprintf("processing %s: step %d returned no content", source, i+1),
				ErrCode: jkerrors.ResourceProcessing,
			})
		}
		content = out
	}
	if content == nil {
		return nil, jkerrors.NewErrorWithStatusCode(jkerrors.ActionableErr{
			Message: fmt.Sprintf("processing %s: no steps configured", source),
			ErrCode: jkerrors.ResourceProcessing,
		})
	}
	return content, nil
}

func readExisting(path string) ([]byte, error) {
	exists, err := afero.Exists(util.Fs, path)
	if err != nil {
		return nil, processingError(fmt.Sprintf("checking %s", path), err)
	}
	if !exists {
		return nil, nil
	}
	content, err := afero.ReadFile(util.Fs, path)
	if err != nil {
		return nil, processingError(fmt.Sprintf("reading %s", path), err)
	}
	return content, nil
}

func processingError(msg string, err error) error {
	return jkerrors.NewError(err, jkerrors.ActionableErr{
		Message: fmt.Sprintf("%s: %v", msg, err),
		ErrCode: jkerrors.ResourceProcessing,
	})
}
