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

package flags

import (
	"fmt"
	"sort"
	"strings"
)

// Properties collects repeated key=value flags into project property overrides.
type Properties struct {
	values map[string]string
}

func (p *Properties) String() string {
	var pairs []string
	for k, v := range p.values {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (p *Properties) Type() string {
	return fmt.Sprintf("%T", p)
}

// Set adds one key=value pair. A bare key sets the property to "true".
func (p *Properties) Set(value string) error {
	key, val, found := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("invalid property %q, expected key=value", value)
	}
	if !found {
		val = "true"
	}
	if p.values == nil {
		p.values = map[string]string{}
	}
	p.values[key] = val
	return nil
}

// Values returns the collected properties.
func (p *Properties) Values() map[string]string {
	return p.values
}
