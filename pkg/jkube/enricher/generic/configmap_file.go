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
	"fmt"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/spf13/afero"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/enricher"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/kubernetes"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
)

// configMapFileEnricher creates the configured config map and injects files referenced by
// jkube.eclipse.org/cm/<key> annotations into config maps.
type configMapFileEnricher struct {
	enricher.Base
}

func newConfigMapFileEnricher(ctx *enricher.Context) enricher.Enricher {
	return &configMapFileEnricher{Base: enricher.NewBase(ConfigMapFileEnricher, ctx)}
}

func (e *configMapFileEnricher) Create(ctx context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	cfg := e.Context().Resources.ConfigMap
	if cfg == nil || len(cfg.Entries) == 0 {
		return nil
	}
	name := cfg.Name
	if name == "" {
		name = e.Context().DefaultResourceName()
	}
	cm, _ := builder.Find(kubernetes.KindConfigMap, name).(*corev1.ConfigMap)
	if cm == nil {
		cm = &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Name: name}}
		builder.Add(cm)
	}
	for _, entry := range cfg.Entries {
		if entry.File != "" {
			key := entry.Name
			if key == "" {
				key = filepath.Base(entry.File)
			}
			if err := e.addFile(ctx, cm, key, entry.File); err != nil {
				return err
			}
			continue
		}
		if entry.Name == "" {
			return jkerrors.ConfigError(jkerrors.ConfigInvalid, "config map %s has an entry without name", name)
		}
		if _, found := cm.Data[entry.Name]; !found {
			if cm.Data == nil {
				cm.Data = map[string]string{}
			}
			cm.Data[entry.Name] = entry.Value
		}
	}
	return nil
}

func (e *configMapFileEnricher) Enrich(ctx context.Context, _ enricher.PlatformMode, builder *kubernetes.ListBuilder) error {
	return builder.Accept(kubernetes.Visitors{
		kubernetes.KindConfigMap: func(obj runtime.Object) error {
			cm := obj.(*corev1.ConfigMap)
			for _, fa := range fileAnnotations(cm.Annotations, constants.ConfigMapAnnotationPrefixes) {
				if err := e.addFile(ctx, cm, fa.dataKey, fa.path); err != nil {
					return err
				}
				delete(cm.Annotations, fa.key)
			}
			if len(cm.Annotations) == 0 {
				cm.Annotations = nil
			}
			return nil
		},
	})
}

// addFile adds a file, or every file of a directory, to the config map. Binary content goes to binaryData.
func (e *configMapFileEnricher) addFile(ctx context.Context, cm *corev1.ConfigMap, key, path string) error {
	files, err := readSideChannel(e.Context().Project.BaseDir(), key, path)
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, found := cm.Data[f.key]; found {
			continue
		}
		if _, found := cm.BinaryData[f.key]; found {
			continue
		}
		log.Entry(ctx).Debugf("adding %s to config map %s as %s", path, cm.Name, f.key)
		if utf8.Valid(f.content) {
			if cm.Data == nil {
				cm.Data = map[string]string{}
			}
			cm.Data[f.key] = string(f.content)
		} else {
			if cm.BinaryData == nil {
				cm.BinaryData = map[string][]byte{}
			}
			cm.BinaryData[f.key] = f.content
		}
	}
	return nil
}

type sideChannelFile struct {
	key     string
	content []byte
}

// readSideChannel reads a file referenced from the configuration. A directory yields one entry per
// regular file, keyed by file name.
func readSideChannel(baseDir, key, path string) ([]sideChannelFile, error) {
	resolved := util.ResolvePath(baseDir, path)
	info, err := util.Fs.Stat(resolved)
	if err != nil {
		return nil, sideChannelError(path, err)
	}
	if !info.IsDir() {
		content, err := afero.ReadFile(util.Fs, resolved)
		if err != nil {
			return nil, sideChannelError(path, err)
		}
		return []sideChannelFile{{key: key, content: content}}, nil
	}

	entries, err := afero.ReadDir(util.Fs, resolved)
	if err != nil {
		return nil, sideChannelError(path, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var files []sideChannelFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := afero.ReadFile(util.Fs, filepath.Join(resolved, entry.Name()))
		if err != nil {
			return nil, sideChannelError(path, err)
		}
		files = append(files, sideChannelFile{key: entry.Name(), content: content})
	}
	return files, nil
}

func sideChannelError(path string, err error) error {
	return jkerrors.NewError(err, jkerrors.ActionableErr{
		Message: fmt.Sprintf("cannot read %s: %v", path, err),
		ErrCode: jkerrors.EnrichSideChannelIO,
	})
}
