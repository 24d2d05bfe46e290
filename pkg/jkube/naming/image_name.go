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
	"fmt"
	"strings"
	"time"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/project"
)

// ImageNameFormatter fills %g, %a, %v, %t and %l in image names from project coordinates.
type ImageNameFormatter struct {
	replacer *Replacer
}

// NewImageNameFormatter creates a formatter for the project. now seeds the snapshot tag of %t.
func NewImageNameFormatter(p *project.JavaProject, now time.Time) *ImageNameFormatter {
	return &ImageNameFormatter{
		replacer: NewReplacer(map[string]Lookup{
			"g": func() string { return imageUser(p) },
			"a": func() string { return Sanitize(p.ArtifactID) },
			"v": func() string { return p.Version },
			"t": func() string { return snapshotTag(p.Version, now) },
			"l": func() string { return latestTag(p.Version) },
		}),
	}
}

// Format resolves the placeholders of name. A nil name stays nil.
func (f *ImageNameFormatter) Format(name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}
	formatted, err := f.FormatString(*name)
	if err != nil {
		return nil, err
	}
	return &formatted, nil
}

// FormatString resolves the placeholders of a non-nil name.
func (f *ImageNameFormatter) FormatString(name string) (string, error) {
	return f.replacer.Replace(name)
}

func imageUser(p *project.JavaProject) string {
	if user, ok := p.Property(constants.PropertyImageUser); ok {
		return Sanitize(user)
	}
	group := strings.TrimRight(p.GroupID, ".")
	if i := strings.LastIndex(group, "."); i >= 0 {
		group = group[i+1:]
	}
	return Sanitize(group)
}

func snapshotTag(version string, now time.Time) string {
	if !strings.HasSuffix(version, constants.SnapshotSuffix) {
		return version
	}
	stamp := fmt.Sprintf("snapshot-%s-%04d", now.Format("060102-150405"), now.Nanosecond()/int(time.Millisecond))
	return strings.TrimSuffix(version, "SNAPSHOT") + stamp
}

func latestTag(version string) string {
	if strings.HasSuffix(version, constants.SnapshotSuffix) {
		return "latest"
	}
	return version
}
