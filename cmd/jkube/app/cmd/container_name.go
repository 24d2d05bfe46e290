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
	"github.com/spf13/pflag"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/runner"
)

var (
	namePattern string
	stop        bool
)

// NewCmdContainerName describes the CLI command to compute container names.
func NewCmdContainerName() *cobra.Command {
	namePattern, stop = "", false
	return NewCmd("container-name <image>").
		WithDescription("Print the name of the next container of an image").
		WithLongDescription("The image is given by name or alias. With --stop, the containers that should be stopped are printed instead, one per line.").
		WithExample("Name the next container of the image aliased db", "container-name db").
		WithExample("List the containers to stop", "container-name db --stop").
		WithCommonFlags().
		WithFlags(func(f *pflag.FlagSet) {
			f.StringVar(&namePattern, "pattern", "", "Default container name pattern for images without one (%n-%i when unset)")
			f.BoolVar(&stop, "stop", false, "Print the containers to stop instead of the next container name")
		}).
		ExactArgs(1, doContainerName)
}

func doContainerName(ctx context.Context, out io.Writer, args []string) error {
	return withRunner(ctx, func(r *runner.Runner) error {
		if stop {
			containers, err := r.ContainersToStop(ctx, args[0], namePattern)
			if err != nil {
				return err
			}
			for _, c := range containers {
				fmt.Fprintln(out, c.Name)
			}
			return nil
		}

		name, err := r.ContainerName(ctx, args[0], namePattern)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, name)
		return nil
	})
}
