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
	"strings"

	"github.com/spf13/afero"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/util"
)

// ReadStep returns the previous content or, for the first step, the source file.
func ReadStep(source, _ string, _, previous []byte) ([]byte, error) {
	if previous != nil {
		return previous, nil
	}
	content, err := afero.ReadFile(util.Fs, source)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = []byte{}
	}
	return content, nil
}

// InterpolateStep replaces delimited property references in the content.
func InterpolateStep(props map[string]string, delimiters []util.Delimiters) Step {
	return func(source, target string, existing, previous []byte) ([]byte, error) {
		content, err := ReadStep(source, target, existing, previous)
		if err != nil {
			return nil, err
		}
		return []byte(util.Interpolate(string(content), props, delimiters)), nil
	}
}

// FilterDelimiters returns the delimiters configured by a jkube.resource.filter value.
// An unset filter uses the default delimiters, "false" turns interpolation off.
func FilterDelimiters(filter string) ([]util.Delimiters, bool) {
	if d, ok := util.ExtractDelimiters(filter); ok {
		return []util.Delimiters{d}, true
	}
	if strings.TrimSpace(filter) == "false" {
		return nil, false
	}
	return util.DefaultDelimiters, true
}

// DefaultSteps returns the steps applied to resource fragments for the given filter.
func DefaultSteps(props map[string]string, filter string) []Step {
	delimiters, enabled := FilterDelimiters(filter)
	if !enabled {
		return []Step{ReadStep}
	}
	return []Step{InterpolateStep(props, delimiters)}
}
