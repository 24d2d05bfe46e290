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

package image

import (
	"strings"

	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
)

// AutoPullMode controls when base images are pulled during a build.
type AutoPullMode struct {
	name               string
	aliases            []string
	doPullIfNotPresent bool
}

var (
	AutoPullOn     = AutoPullMode{name: "on", aliases: []string{"on", "true"}, doPullIfNotPresent: true}
	AutoPullOnce   = AutoPullMode{name: "once", aliases: []string{"once"}, doPullIfNotPresent: true}
	AutoPullOff    = AutoPullMode{name: "off", aliases: []string{"off", "false"}, doPullIfNotPresent: false}
	AutoPullAlways = AutoPullMode{name: "always", aliases: []string{"always"}, doPullIfNotPresent: false}

	autoPullModes = []AutoPullMode{AutoPullOn, AutoPullOnce, AutoPullOff, AutoPullAlways}
)

func (m AutoPullMode) String() string { return m.name }

// DoPullIfNotPresent reports whether a missing image is pulled in this mode.
func (m AutoPullMode) DoPullIfNotPresent() bool { return m.doPullIfNotPresent }

// AlwaysPull reports whether images are pulled even if present.
func (m AutoPullMode) AlwaysPull() bool { return m.name == AutoPullAlways.name }

// ParseAutoPullMode looks a mode up by any of its aliases, ignoring case.
func ParseAutoPullMode(value string) (AutoPullMode, error) {
	for _, m := range autoPullModes {
		if matchAlias(m.aliases, value) {
			return m, nil
		}
	}
	var valid []string
	for _, m := range autoPullModes {
		valid = append(valid, m.aliases...)
	}
	return AutoPullMode{}, invalidValue("autoPull", value, valid)
}

// ImagePullPolicy mirrors the Kubernetes container image pull policy.
type ImagePullPolicy struct {
	name    string
	aliases []string
}

var (
	PullAlways       = ImagePullPolicy{name: "Always", aliases: []string{"Always"}}
	PullIfNotPresent = ImagePullPolicy{name: "IfNotPresent", aliases: []string{"IfNotPresent", "ifnotpresent", "if-not-present"}}
	PullNever        = ImagePullPolicy{name: "Never", aliases: []string{"Never"}}

	imagePullPolicies = []ImagePullPolicy{PullAlways, PullIfNotPresent, PullNever}
)

func (p ImagePullPolicy) String() string { return p.name }

// ParseImagePullPolicy looks a policy up by any of its aliases, ignoring case.
func ParseImagePullPolicy(value string) (ImagePullPolicy, error) {
	for _, p := range imagePullPolicies {
		if matchAlias(p.aliases, value) {
			return p, nil
		}
	}
	var valid []string
	for _, p := range imagePullPolicies {
		valid = append(valid, p.name)
	}
	return ImagePullPolicy{}, invalidValue("imagePullPolicy", value, valid)
}

// PullPolicyFromAutoPull maps an auto pull mode to the equivalent Kubernetes pull policy.
func PullPolicyFromAutoPull(m AutoPullMode) ImagePullPolicy {
	switch {
	case m.AlwaysPull():
		return PullAlways
	case m.DoPullIfNotPresent():
		return PullIfNotPresent
	default:
		return PullNever
	}
}

func matchAlias(aliases []string, value string) bool {
	for _, a := range aliases {
		if strings.EqualFold(a, strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func invalidValue(kind, value string, valid []string) error {
	return jkerrors.ConfigError(jkerrors.ConfigInvalid,
		"invalid %s value %q, must be one of: %s", kind, value, strings.Join(valid, ", "))
}
