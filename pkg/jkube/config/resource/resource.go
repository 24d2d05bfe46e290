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

package resource

import (
	"github.com/imdario/mergo"
)

// ResourceConfig customizes the generated Kubernetes resources.
type ResourceConfig struct {
	Namespace       string                 `yaml:"namespace,omitempty"`
	Labels          MetaData               `yaml:"labels,omitempty"`
	Annotations     MetaData               `yaml:"annotations,omitempty"`
	Controller      *ControllerConfig      `yaml:"controller,omitempty"`
	Services        []ServiceConfig        `yaml:"services,omitempty"`
	ServiceAccounts []ServiceAccountConfig `yaml:"serviceAccounts,omitempty"`
	ConfigMap       *ConfigMapConfig       `yaml:"configMap,omitempty"`
	Ingress         *IngressConfig         `yaml:"ingress,omitempty"`
	Env             map[string]string      `yaml:"env,omitempty"`
	StorageClass    string                 `yaml:"storageClass,omitempty"`
}

// MetaData holds labels or annotations per resource kind. All applies to every resource.
type MetaData struct {
	All         map[string]string `yaml:"all,omitempty"`
	Deployment  map[string]string `yaml:"deployment,omitempty"`
	Pod         map[string]string `yaml:"pod,omitempty"`
	Service     map[string]string `yaml:"service,omitempty"`
	ConfigMap   map[string]string `yaml:"configMap,omitempty"`
	Secret      map[string]string `yaml:"secret,omitempty"`
	Ingress     map[string]string `yaml:"ingress,omitempty"`
	ServiceAcct map[string]string `yaml:"serviceAccount,omitempty"`
}

// ControllerConfig describes the workload controller generated for the images.
type ControllerConfig struct {
	Name            string `yaml:"name,omitempty"`
	Type            string `yaml:"type,omitempty"`
	Replicas        *int32 `yaml:"replicas,omitempty"`
	ImagePullPolicy string `yaml:"imagePullPolicy,omitempty"`
	ServiceAccount  string `yaml:"serviceAccount,omitempty"`
}

// ServiceConfig describes one service. Ports use "port:targetPort/protocol" notation.
type ServiceConfig struct {
	Name     string   `yaml:"name,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Headless bool     `yaml:"headless,omitempty"`
	Expose   bool     `yaml:"expose,omitempty"`
	Ports    []string `yaml:"ports,omitempty"`
}

// ServiceAccountConfig declares a service account and the deployment using it.
type ServiceAccountConfig struct {
	Name          string `yaml:"name,omitempty"`
	DeploymentRef string `yaml:"deploymentRef,omitempty"`
	// Generate controls whether the account is created. Unset means true.
	Generate *bool `yaml:"generate,omitempty"`
}

// IsGenerate reports whether the service account should be created.
func (s ServiceAccountConfig) IsGenerate() bool {
	return s.Generate == nil || *s.Generate
}

// ConfigMapConfig declares a config map built from literal entries and files.
type ConfigMapConfig struct {
	Name    string           `yaml:"name,omitempty"`
	Entries []ConfigMapEntry `yaml:"entries,omitempty"`
}

// ConfigMapEntry is either a literal value or a file whose content becomes the value.
type ConfigMapEntry struct {
	Name  string `yaml:"name,omitempty"`
	Value string `yaml:"value,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// IngressConfig describes the generated ingress rules.
type IngressConfig struct {
	Host             string `yaml:"host,omitempty"`
	IngressClassName string `yaml:"ingressClassName,omitempty"`
}

// Controller types understood by the controller enricher.
const (
	ControllerDeployment  = "Deployment"
	ControllerStatefulSet = "StatefulSet"
	ControllerDaemonSet   = "DaemonSet"
	ControllerReplicaSet  = "ReplicaSet"
	ControllerJob         = "Job"
)

var defaultReplicas int32 = 1

// Defaults is the configuration applied under every user configuration.
func Defaults() ResourceConfig {
	replicas := defaultReplicas
	return ResourceConfig{
		Controller: &ControllerConfig{
			Type:     ControllerDeployment,
			Replicas: &replicas,
		},
	}
}

// WithDefaults fills every unset field of c from Defaults. Values set by the user win.
func WithDefaults(c ResourceConfig) (ResourceConfig, error) {
	merged := c.DeepCopy()
	if err := mergo.Merge(&merged, Defaults()); err != nil {
		return ResourceConfig{}, err
	}
	return merged, nil
}

// ForKind returns the entries of All overlaid with the kind specific entries.
func (m MetaData) ForKind(kind string) map[string]string {
	out := map[string]string{}
	for k, v := range m.All {
		out[k] = v
	}
	var specific map[string]string
	switch kind {
	case "Deployment", "StatefulSet", "DaemonSet", "ReplicaSet", "ReplicationController", "Job", "DeploymentConfig":
		specific = m.Deployment
	case "Pod":
		specific = m.Pod
	case "Service":
		specific = m.Service
	case "ConfigMap":
		specific = m.ConfigMap
	case "Secret":
		specific = m.Secret
	case "Ingress":
		specific = m.Ingress
	case "ServiceAccount":
		specific = m.ServiceAcct
	}
	for k, v := range specific {
		out[k] = v
	}
	return out
}

// DeepCopy returns an independent copy of the configuration.
func (c ResourceConfig) DeepCopy() ResourceConfig {
	out := c
	out.Labels = c.Labels.deepCopy()
	out.Annotations = c.Annotations.deepCopy()
	out.Env = copyMap(c.Env)
	if c.Controller != nil {
		ctrl := *c.Controller
		if c.Controller.Replicas != nil {
			r := *c.Controller.Replicas
			ctrl.Replicas = &r
		}
		out.Controller = &ctrl
	}
	if c.Services != nil {
		out.Services = make([]ServiceConfig, len(c.Services))
		for i, s := range c.Services {
			s.Ports = append([]string(nil), s.Ports...)
			out.Services[i] = s
		}
	}
	if c.ServiceAccounts != nil {
		out.ServiceAccounts = make([]ServiceAccountConfig, len(c.ServiceAccounts))
		for i, sa := range c.ServiceAccounts {
			if sa.Generate != nil {
				g := *sa.Generate
				sa.Generate = &g
			}
			out.ServiceAccounts[i] = sa
		}
	}
	if c.ConfigMap != nil {
		cm := *c.ConfigMap
		cm.Entries = append([]ConfigMapEntry(nil), c.ConfigMap.Entries...)
		out.ConfigMap = &cm
	}
	if c.Ingress != nil {
		ing := *c.Ingress
		out.Ingress = &ing
	}
	return out
}

func (m MetaData) deepCopy() MetaData {
	return MetaData{
		All:         copyMap(m.All),
		Deployment:  copyMap(m.Deployment),
		Pod:         copyMap(m.Pod),
		Service:     copyMap(m.Service),
		ConfigMap:   copyMap(m.ConfigMap),
		Secret:      copyMap(m.Secret),
		Ingress:     copyMap(m.Ingress),
		ServiceAcct: copyMap(m.ServiceAcct),
	}
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
