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

package naming

import (
	"strings"
	"unicode"
)

// Sanitize strips a name down to what is allowed in an image repository component:
// letters, digits, '-', at most two consecutive '_' and no consecutive '.'. The result is lowercased.
func Sanitize(name string) string {
	var ret strings.Builder
	underscores := 0
	lastWasADot := false
	for _, c := range name {
		if c == '_' {
			underscores++
			if underscores <= 2 {
				ret.WriteRune(c)
			}
			continue
		}
		if c == '.' {
			if !lastWasADot {
				ret.WriteRune(c)
			}
			lastWasADot = true
			continue
		}
		underscores = 0
		lastWasADot = false
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' {
			ret.WriteRune(c)
		}
	}
	return strings.ToLower(ret.String())
}
