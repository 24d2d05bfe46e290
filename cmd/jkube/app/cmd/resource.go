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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/runner"
)

// NewCmdResource describes the CLI command to generate the project manifest.
func NewCmdResource() *cobra.Command {
	return NewCmd("resource").
		WithDescription("Generate the Kubernetes or OpenShift manifest of the project").
		WithLongDescription("Processes the fragments in src/main/jkube, completes them with the enricher pipeline and writes the manifest below the build directory.").
		WithExample("Generate the Kubernetes manifest", "resource").
		WithExample("Generate the OpenShift manifest with a property override", "resource --platform openshift -D jkube.image.user=team").
		WithCommonFlags().
		NoArgs(doResource)
}

func doResource(ctx context.Context, out io.Writer) error {
	return withRunner(ctx, func(r *runner.Runner) error {
		manifest, err := r.Resources(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, manifest)
		return nil
	})
}
