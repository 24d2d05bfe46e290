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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"sigs.k8s.io/yaml"
)

// templateFuncs take precedence over the sprig functions of the same name.
var templateFuncs = template.FuncMap{
	"json": func(v interface{}) (string, error) {
		buf, err := json.Marshal(v)
		return string(buf), err
	},
	"yaml": func(v interface{}) (string, error) {
		buf, err := yaml.Marshal(v)
		return strings.TrimSuffix(string(buf), "\n"), err
	},
	"join":  strings.Join,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// TemplateFlag holds the go-template given with --output.
type TemplateFlag struct {
	raw  string
	tmpl *template.Template
}

// NewTemplateFlag returns a flag preset to a default template, which must be valid.
func NewTemplateFlag(value string) *TemplateFlag {
	f := &TemplateFlag{}
	if err := f.Set(value); err != nil {
		panic(err)
	}
	return f
}

func (f *TemplateFlag) String() string {
	return f.raw
}

func (f *TemplateFlag) Type() string {
	return fmt.Sprintf("%T", f)
}

func (f *TemplateFlag) Set(value string) error {
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Funcs(templateFuncs).Parse(value)
	if err != nil {
		return fmt.Errorf("parsing output template: %w", err)
	}
	f.raw = value
	f.tmpl = tmpl
	return nil
}

// Execute renders data with the template.
func (f *TemplateFlag) Execute(out io.Writer, data interface{}) error {
	return f.tmpl.Execute(out, data)
}
