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
	"github.com/spf13/pflag"

	"github.com/eclipse-jkube/jkube-kit/cmd/jkube/app/flags"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/config/image"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/runner"
)

const defaultImageFormat = "{{.Name}}{{if .Alias}} ({{.Alias}}){{end}}\n"

var imagesFormat = flags.NewTemplateFlag(defaultImageFormat)

// imageOutput is the data passed to the --output template for each image.
type imageOutput struct {
	Name       string
	Alias      string
	APIVersion string
	Ports      []string
	DependsOn  []string
}

// NewCmdImages describes the CLI command to list the resolved images.
func NewCmdImages() *cobra.Command {
	imagesFormat = flags.NewTemplateFlag(defaultImageFormat)
	return NewCmd("images").
		WithDescription("List the resolved image configurations of the project").
		WithExample("List the images with their ports", `images -o '{{.Name}} {{join .Ports ","}}{{"\n"}}'`).
		WithCommonFlags().
		WithFlags(addOutputFlag(imagesFormat)).
		NoArgs(doImages)
}

func addOutputFlag(format *flags.TemplateFlag) func(*pflag.FlagSet) {
	return func(f *pflag.FlagSet) {
		f.VarP(format, "output", "o", "Format output with go-template")
	}
}

func doImages(ctx context.Context, out io.Writer) error {
	return withRunner(ctx, func(r *runner.Runner) error {
		images, apiVersion, err := r.Images(ctx)
		if err != nil {
			return err
		}
		return printImages(out, images, apiVersion)
	})
}

func printImages(out io.Writer, images []*image.ImageConfiguration, apiVersion string) error {
	for _, img := range images {
		data := imageOutput{
			Name:       img.Name,
			Alias:      img.Alias,
			APIVersion: apiVersion,
			DependsOn:  img.DependentImages(),
		}
		if img.Build != nil {
			data.Ports = img.Build.Ports
		}
		if err := imagesFormat.Execute(out, data); err != nil {
			return err
		}
	}
	return nil
}
