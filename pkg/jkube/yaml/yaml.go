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

package yaml

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

func UnmarshalStrict(in []byte, out interface{}) error {
	return unmarshal(in, out, true)
}

func Unmarshal(in []byte, out interface{}) error {
	return unmarshal(in, out, false)
}

func Marshal(in interface{}) (out []byte, err error) {
	var b bytes.Buffer
	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(2)
	if err := encoder.Encode(in); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func unmarshal(in []byte, out interface{}, strict bool) error {
	b := bytes.NewReader(in)
	decoder := yaml.NewDecoder(b)
	decoder.KnownFields(strict)
	if err := decoder.Decode(out); err != nil {
		// yamlv3.Unmarshal swallows EOF to return empty object for empty string.
		if err != io.EOF {
			return err
		}
	}
	return nil
}

var separator = regexp.MustCompile(`(?m)^---\s*$`)

// SplitDocuments splits a multi document YAML stream, dropping empty documents.
func SplitDocuments(in []byte) [][]byte {
	var docs [][]byte
	for _, part := range separator.Split(string(in), -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		docs = append(docs, []byte(strings.TrimLeft(part, "\n")))
	}
	return docs
}

// JoinDocuments joins YAML documents into one multi document stream.
func JoinDocuments(docs [][]byte) []byte {
	var buf bytes.Buffer
	for i, doc := range docs {
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(doc)
		if len(doc) > 0 && doc[len(doc)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// MergeDocuments deep merges two YAML streams document by document. Keys of overlay win over
// base unless both values are maps, in which case they are merged recursively. Documents without
// a counterpart on the other side are kept as they are.
func MergeDocuments(base, overlay []byte) ([]byte, error) {
	baseDocs, overlayDocs := SplitDocuments(base), SplitDocuments(overlay)
	count := len(baseDocs)
	if len(overlayDocs) > count {
		count = len(overlayDocs)
	}
	merged := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		switch {
		case i >= len(overlayDocs):
			merged = append(merged, baseDocs[i])
		case i >= len(baseDocs):
			merged = append(merged, overlayDocs[i])
		default:
			doc, err := mergeDocument(baseDocs[i], overlayDocs[i])
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", i+1, err)
			}
			merged = append(merged, doc)
		}
	}
	return JoinDocuments(merged), nil
}

func mergeDocument(base, overlay []byte) ([]byte, error) {
	b := map[string]interface{}{}
	if err := Unmarshal(base, &b); err != nil {
		return nil, fmt.Errorf("parsing base document: %w", err)
	}
	o := map[string]interface{}{}
	if err := Unmarshal(overlay, &o); err != nil {
		return nil, fmt.Errorf("parsing overlay document: %w", err)
	}
	return Marshal(MergeMaps(b, o))
}

// MergeMaps returns the recursive union of base and overlay.
func MergeMaps(base, overlay map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if bv, ok := out[k].(map[string]interface{}); ok {
			if ov, ok := v.(map[string]interface{}); ok {
				out[k] = MergeMaps(bv, ov)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// IsYamlFile reports whether the file name has a YAML extension.
func IsYamlFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".yaml")
}
