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

package cmd

import (
	"github.com/spf13/pflag"

	"github.com/eclipse-jkube/jkube-kit/cmd/jkube/app/flags"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/runner"
)

var (
	opts        runner.Options
	properties  flags.Properties
	imageFilter flags.ImageFilter
)

func resetOptions() {
	opts = runner.Options{}
	properties = flags.Properties{}
	imageFilter = flags.ImageFilter{}
}

func addCommonFlags(f *pflag.FlagSet) {
	f.StringVarP(&opts.ConfigFile, "filename", "f", constants.DefaultConfigFile, "Path to the jkube.yaml project descriptor")
	f.StringVar(&opts.PropertiesFile, "properties-file", "", "Properties file merged over the project properties, relative to the project directory")
	f.VarP(&properties, "property", "D", "Set a project property as key=value. Set multiple times for multiple properties.")
	f.Var(&imageFilter, "filter", "Comma separated image names or aliases to work on (all images when unset)")
	f.StringVar(&opts.Platform, "platform", "", "Target platform, kubernetes or openshift (overrides the descriptor)")
	f.StringVar(&opts.BuildTimestamp, "build-timestamp", "", "Build timestamp in ISO-8601 format (defaults to the timestamp stored in the build directory)")
}

// runnerOptions returns the options collected from the common flags.
func runnerOptions() runner.Options {
	o := opts
	o.Properties = properties.Values()
	o.ImageFilter = imageFilter.Value()
	return o
}
