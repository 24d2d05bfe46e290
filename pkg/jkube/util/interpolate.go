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

package util

import (
	"strings"
)

// Delimiters is a start/end pair surrounding an interpolated key.
type Delimiters struct {
	Start string
	End   string
}

// DefaultDelimiters are used when no filter is configured: @key@ and ${key}.
var DefaultDelimiters = []Delimiters{
	{Start: "@", End: "@"},
	{Start: "${", End: "}"},
}

// Interpolate replaces every delimited key found in props. Keys without a value
// are left untouched.
func Interpolate(text string, props map[string]string, delimiters []Delimiters) string {
	if len(delimiters) == 0 {
		delimiters = DefaultDelimiters
	}
	for _, d := range delimiters {
		text = interpolate(text, props, d)
	}
	return text
}

func interpolate(text string, props map[string]string, d Delimiters) string {
	if d.Start == "" || d.End == "" {
		return text
	}
	var out strings.Builder
	rest := text
	for {
		start := strings.Index(rest, d.Start)
		if start < 0 {
			break
		}
		afterStart := rest[start+len(d.Start):]
		end := strings.Index(afterStart, d.End)
		if end < 0 {
			break
		}
		key := afterStart[:end]
		value, found := props[key]
		if !found || key == "" || strings.ContainsAny(key, " \t\n") {
			// keep the start delimiter and rescan after it, the end delimiter may open the next key
			out.WriteString(rest[:start+len(d.Start)])
			rest = afterStart
			continue
		}
		out.WriteString(rest[:start])
		out.WriteString(value)
		rest = afterStart[end+len(d.End):]
	}
	out.WriteString(rest)
	return out.String()
}

// ExtractDelimiters derives the interpolation delimiters from a filter such as "${*}" or "@*@".
// A filter of the shape prefix*suffix yields {prefix, suffix}, anything else yields {filter, filter}.
// An empty filter or "false" disables filtering.
func ExtractDelimiters(filter string) (Delimiters, bool) {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == "false" {
		return Delimiters{}, false
	}
	if strings.Contains(filter, "*") {
		parts := strings.Split(filter, "*")
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return Delimiters{Start: parts[0], End: parts[1]}, true
		}
	}
	return Delimiters{Start: filter, End: filter}, true
}
