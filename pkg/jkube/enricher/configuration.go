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
	"strconv"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
)

// Configuration resolves enricher settings. A project property jkube.enricher.<name>.<key> wins over
// the descriptor value, which wins over the default.
type Configuration struct {
	Project *project.JavaProject
	Values  map[string]map[string]string
}

// Get returns the setting key of the named enricher.
func (c Configuration) Get(enricher, key, def string) string {
	if c.Project != nil {
		if v, ok := c.Project.Property(constants.PropertyEnricherPrefix + enricher + "." + key); ok {
			return v
		}
	}
	if v, ok := c.Values[enricher][key]; ok {
		return v
	}
	return def
}

// GetBool returns a boolean setting. Unparsable values fall back to def.
func (c Configuration) GetBool(enricher, key string, def bool) bool {
	v := c.Get(enricher, key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
