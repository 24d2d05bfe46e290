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
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/eclipse-jkube/jkube-kit/cmd/jkube/app/flags"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/version"
)

var versionFormat = flags.NewTemplateFlag("{{.Version}}\n")

func NewCmdVersion() *cobra.Command {
	versionFormat = flags.NewTemplateFlag("{{.Version}}\n")
	return NewCmd("version").
		WithDescription("Print the version information").
		WithFlags(addOutputFlag(versionFormat)).
		NoArgs(doVersion)
}

func doVersion(_ context.Context, out io.Writer) error {
	return versionFormat.Execute(out, version.Get())
}
