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

import "fmt"

// ImageFilter is a comma separated list of image names or aliases. It distinguishes an
// unset flag, which keeps every image, from an empty one, which keeps none.
type ImageFilter struct {
	value string
	set   bool
}

func (f *ImageFilter) String() string {
	return f.value
}

func (f *ImageFilter) Type() string {
	return fmt.Sprintf("%T", f)
}

func (f *ImageFilter) Set(value string) error {
	f.value = value
	f.set = true
	return nil
}

// Value returns the filter, or nil when the flag was not given.
func (f *ImageFilter) Value() *string {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}
