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

package testutil

import (
	"os"
	"strings"
)

// SetEnvs sets environment variables for the duration of the test.
func (t *T) SetEnvs(envs map[string]string) {
	for key, value := range envs {
		t.Setenv(key, value)
	}
}

// ClearPropertyEnvs removes the environment fallbacks of the given project property keys
// (jkube.image.user -> JKUBE_IMAGE_USER) until the test ends.
func (t *T) ClearPropertyEnvs(keys ...string) {
	for _, key := range keys {
		name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
		if prev, ok := os.LookupEnv(name); ok {
			t.Setenv(name, prev)
			os.Unsetenv(name)
		}
	}
}
