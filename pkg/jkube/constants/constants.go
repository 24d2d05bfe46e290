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

package constants

import (
	"github.com/sirupsen/logrus"
)

// Phase is a step of a jkube run, used to tag log entries.
type Phase string

const (
	Init     = Phase("Init")
	Resolve  = Phase("Resolve")
	Enrich   = Phase("Enrich")
	Write    = Phase("Write")
	Start    = Phase("Start")
	JKubeRun = Phase("JKubeRun")

	SubtaskIDNone = "-1"
)

const (
	// DefaultLogLevel is the default global verbosity
	DefaultLogLevel = logrus.WarnLevel

	// DefaultConfigFile is the project descriptor read when no --filename is given.
	DefaultConfigFile = "jkube.yaml"

	DefaultBuildDirectory    = "target"
	DefaultFragmentDirectory = "src/main/jkube"
	FragmentOutputDirectory  = "jkube/fragments"
	ManifestOutputDirectory  = "classes/META-INF/jkube"

	// LastModifiedMarkerFile stores the build timestamp as epoch millis.
	LastModifiedMarkerFile = ".jkube-last-modified"

	// DefaultContainerNamePattern is used when neither the image nor the caller provides one.
	DefaultContainerNamePattern = "%n-%i"

	// IndexPlaceholder marks the slot filled by the indexed container name search.
	IndexPlaceholder = "%i"

	SnapshotSuffix = "-SNAPSHOT"

	// DefaultImagePropertyPrefix is the prefix for property based image configuration.
	DefaultImagePropertyPrefix = "docker"

	DefaultDockerAPIVersion = "1.18"

	Provider = "jkube"
)

// Project properties understood by jkube.
const (
	PropertyImageUser                = "jkube.image.user"
	PropertyImagePropertyActivation  = "jkube.imagePropertyConfiguration"
	PropertyImagePullPolicy          = "jkube.imagePullPolicy"
	PropertyDockerAutoPull           = "jkube.docker.autoPull"
	PropertyResourceFilter           = "jkube.resource.filter"
	PropertyEnricherPrefix           = "jkube.enricher."
	PropertyContainerNamePattern     = "jkube.docker.containerNamePattern"
	PropertyDockerAPIVersion         = "jkube.docker.apiVersion"
	PropertyUseProjectLabel          = "jkube.kubernetes.useProjectLabel"
)

// Annotation prefixes whose values reference files injected into ConfigMaps and Secrets.
var (
	ConfigMapAnnotationPrefixes = []string{"jkube.eclipse.org/cm/", "maven.jkube.io/cm/"}
	SecretAnnotationPrefixes    = []string{"jkube.eclipse.org/secret/", "maven.jkube.io/secret/"}
)

var Labels = struct {
	App       string
	Provider  string
	Version   string
	Group     string
	Expose    string
	Name      string
	PartOf    string
	AppVer    string
	ManagedBy string
}{
	App:       "app",
	Provider:  "provider",
	Version:   "version",
	Group:     "group",
	Expose:    "expose",
	Name:      "app.kubernetes.io/name",
	PartOf:    "app.kubernetes.io/part-of",
	AppVer:    "app.kubernetes.io/version",
	ManagedBy: "app.kubernetes.io/managed-by",
}
