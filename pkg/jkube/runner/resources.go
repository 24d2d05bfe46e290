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

package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config"
	cfgresource "github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/resource"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher/generic"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/resource"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
)

const fragmentPattern = "**/*.{yml,yaml,json}"

// Resources generates the manifest of the project and returns the path it was written to.
func (r *Runner) Resources(ctx context.Context) (string, error) {
	images, _, err := r.Images(ctx)
	if err != nil {
		return "", err
	}

	ctx = log.WithTask(ctx, constants.Enrich, constants.SubtaskIDNone)
	fragments, err := r.loadFragments(ctx)
	if err != nil {
		return "", err
	}
	resources, err := cfgresource.WithDefaults(r.descriptor.Resources)
	if err != nil {
		return "", fmt.Errorf("applying resource defaults: %w", err)
	}

	p := &r.descriptor.Project
	ectx := &enricher.Context{
		Project:   p,
		Images:    images,
		Resources: resources,
		Config:    enricher.Configuration{Project: p, Values: r.descriptor.Enricher.Config},
	}
	processor, err := enricher.NewProcessor(ectx, generic.DefaultRegistry(), r.descriptor.Enricher.Includes, r.descriptor.Enricher.Excludes)
	if err != nil {
		return "", err
	}
	builder := kubernetes.NewListBuilder(fragments...)
	if err := processor.Run(ctx, r.platformMode(), builder); err != nil {
		return "", err
	}

	out, err := kubernetes.Serialize(builder.Items())
	if err != nil {
		return "", err
	}
	ctx = log.WithTask(ctx, constants.Write, constants.SubtaskIDNone)
	manifest := filepath.Join(p.BuildDir(), constants.ManifestOutputDirectory, string(r.platformMode())+".yml")
	if err := util.WriteFile(manifest, out); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	log.Entry(ctx).Infof("wrote %d resources (%s) to %s", builder.Len(), humanize.Bytes(uint64(len(out))), manifest)
	return manifest, nil
}

func (r *Runner) platformMode() enricher.PlatformMode {
	if r.descriptor.Platform == config.PlatformOpenShift {
		return enricher.OpenShift
	}
	return enricher.Kubernetes
}

// loadFragments processes the fragment sources into the build directory and decodes them.
func (r *Runner) loadFragments(ctx context.Context) ([]runtime.Object, error) {
	p := &r.descriptor.Project
	dir := filepath.Join(p.BaseDir(), constants.DefaultFragmentDirectory)
	sources, err := findFragments(dir)
	if err != nil || len(sources) == 0 {
		return nil, err
	}
	log.Entry(ctx).Debugf("found %d fragments in %s", len(sources), dir)

	processor := &resource.Processor{
		OutputDir: filepath.Join(p.BuildDir(), constants.FragmentOutputDirectory),
		Steps:     resource.DefaultSteps(p.Properties, p.PropertyOrDefault(constants.PropertyResourceFilter, "")),
	}
	written, err := processor.Process(ctx, sources)
	if err != nil {
		return nil, err
	}

	var objs []runtime.Object
	for _, file := range written {
		content, err := afero.ReadFile(util.Fs, file)
		if err != nil {
			return nil, err
		}
		decoded, err := kubernetes.DecodeFragment(file, content)
		if err != nil {
			return nil, err
		}
		objs = append(objs, decoded...)
	}
	return objs, nil
}

// findFragments returns the fragment files below dir, sorted by path.
func findFragments(dir string) ([]string, error) {
	exists, err := afero.DirExists(util.Fs, dir)
	if err != nil || !exists {
		return nil, err
	}
	var files []string
	err = afero.Walk(util.Fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		matches, err := doublestar.PathMatch(filepath.FromSlash(fragmentPattern), rel)
		if err != nil {
			return err
		}
		if matches {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing fragments in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
