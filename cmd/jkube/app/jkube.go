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

package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/eclipse-jkube/jkube-kit/cmd/jkube/app/cmd"
	jkerrors "github.com/eclipse-jkube/jkube-kit/pkg/jkube/errors"
	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/output/log"
)

// Run executes the jkube command line, reading arguments from os.Args.
func Run(out, stderr io.Writer) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cmd.NewJKubeCommand(out, stderr)
	c.SetArgs(os.Args[1:])
	err := c.ExecuteContext(ctx)
	if err != nil {
		log.Entry(ctx).Error(err)
	}
	return err
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch code := jkerrors.StatusCodeOf(err); {
	case jkerrors.IsConfigError(err):
		return 2
	case code == jkerrors.StartOrderDeadlock:
		return 3
	case code == jkerrors.EnrichSideChannelIO, code == jkerrors.ResourceProcessing:
		return 4
	default:
		return 1
	}
}
