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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/runner"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/version"
)

var v string

// For testing
var newRunner = runner.New

// NewJKubeCommand creates the jkube root command.
func NewJKubeCommand(out, errOut io.Writer) *cobra.Command {
	resetOptions()

	rootCmd := &cobra.Command{
		Use:           "jkube",
		Short:         "Generate Kubernetes and OpenShift manifests and container plans for Java projects.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := SetUpLogs(errOut, v); err != nil {
			return err
		}
		log.Entry(cmd.Context()).Debugf("jkube %+v", version.Get())
		return nil
	}

	rootCmd.AddCommand(NewCmdResource())
	rootCmd.AddCommand(NewCmdImages())
	rootCmd.AddCommand(NewCmdStartOrder())
	rootCmd.AddCommand(NewCmdContainerName())
	rootCmd.AddCommand(NewCmdVersion())

	rootCmd.PersistentFlags().StringVarP(&v, "verbosity", "v", constants.DefaultLogLevel.String(), "Log level (debug, info, warn, error, fatal, panic)")
	return rootCmd
}

// SetUpLogs sends log output to out at the given level.
func SetUpLogs(out io.Writer, level string) error {
	logrus.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	logrus.SetLevel(lvl)
	return nil
}

func withRunner(ctx context.Context, action func(*runner.Runner) error) error {
	r, err := newRunner(ctx, runnerOptions())
	if err != nil {
		return errors.Wrap(err, "loading project")
	}
	return action(r)
}
