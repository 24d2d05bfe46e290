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

package log

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/eclipse-jkube/jkube-kit/pkg/jkube/constants"
)

type contextKey struct{}

// Task is the phase of a run and the enricher, image or file being worked on.
type Task struct {
	Phase   constants.Phase
	Subtask string
}

// WithTask returns a context whose log entries carry the given phase and subtask.
func WithTask(ctx context.Context, phase constants.Phase, subtask string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, Task{Phase: phase, Subtask: subtask})
}

// TaskOf returns the task stored in ctx. Without one, entries belong to the whole run.
func TaskOf(ctx context.Context) Task {
	if ctx != nil {
		if t, ok := ctx.Value(contextKey{}).(Task); ok {
			return t
		}
	}
	return Task{Phase: constants.JKubeRun, Subtask: constants.SubtaskIDNone}
}

// Entry returns a logrus entry tagged with the task of ctx.
func Entry(ctx context.Context) *logrus.Entry {
	t := TaskOf(ctx)
	return logrus.WithFields(logrus.Fields{
		"task":    t.Phase,
		"subtask": t.Subtask,
	})
}
