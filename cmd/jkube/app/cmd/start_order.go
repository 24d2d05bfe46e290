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

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/runner"
)

// NewCmdStartOrder describes the CLI command to print the container start order.
func NewCmdStartOrder() *cobra.Command {
	return NewCmd("start-order").
		WithDescription("Print the images in the order their containers must be started").
		WithLongDescription("Dependencies declared through links, volumes or a container network must be started first. A dependency may also be satisfied by a running container.").
		WithCommonFlags().
		WithFlags(addOutputFlag(imagesFormat)).
		NoArgs(doStartOrder)
}

func doStartOrder(ctx context.Context, out io.Writer) error {
	return withRunner(ctx, func(r *runner.Runner) error {
		images, err := r.StartOrder(ctx)
		if err != nil {
			return err
		}
		return printImages(out, images, "")
	})
}
