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

package errors

import (
	"errors"
	"fmt"
)

// StatusCode classifies a failure so that callers can map it to an exit code.
type StatusCode int

const (
	UnknownError StatusCode = iota
	ConfigInvalid
	ConfigMissingName
	ConfigAmbiguousActivation
	ConfigInvalidPort
	ContainerNameExhausted
	StartOrderDeadlock
	EnrichSideChannelIO
	ResourceProcessing
)

var codeNames = map[StatusCode]string{
	UnknownError:              "UNKNOWN_ERROR",
	ConfigInvalid:             "CONFIG_INVALID",
	ConfigMissingName:         "CONFIG_MISSING_NAME",
	ConfigAmbiguousActivation: "CONFIG_AMBIGUOUS_ACTIVATION",
	ConfigInvalidPort:         "CONFIG_INVALID_PORT",
	ContainerNameExhausted:    "CONTAINER_NAME_EXHAUSTED",
	StartOrderDeadlock:        "START_ORDER_DEADLOCK",
	EnrichSideChannelIO:       "ENRICH_SIDE_CHANNEL_IO",
	ResourceProcessing:        "RESOURCE_PROCESSING",
}

func (c StatusCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("STATUS_CODE_%d", int(c))
}

// ActionableErr carries the user facing message and the status code of an error.
type ActionableErr struct {
	Message string
	ErrCode StatusCode
}

// ErrDef wraps a cause with an ActionableErr.
type ErrDef struct {
	err error
	ae  ActionableErr
}

func (e *ErrDef) Error() string {
	if e.ae.Message != "" {
		return e.ae.Message
	}
	if e.err != nil {
		return e.err.Error()
	}
	return e.ae.ErrCode.String()
}

func (e *ErrDef) Unwrap() error {
	return e.err
}

func (e *ErrDef) StatusCode() StatusCode {
	return e.ae.ErrCode
}

// NewError creates an actionable error from a cause.
func NewError(err error, ae ActionableErr) error {
	return &ErrDef{
		err: err,
		ae:  ae,
	}
}

// NewErrorWithStatusCode creates an actionable error without cause.
func NewErrorWithStatusCode(ae ActionableErr) error {
	return &ErrDef{
		ae: ae,
	}
}

// ConfigError reports a fatal configuration problem.
func ConfigError(code StatusCode, format string, args ...interface{}) error {
	return NewErrorWithStatusCode(ActionableErr{
		Message: fmt.Sprintf(format, args...),
		ErrCode: code,
	})
}

// StatusCodeOf returns the status code of the first actionable error in the chain.
func StatusCodeOf(err error) StatusCode {
	var e *ErrDef
	if errors.As(err, &e) {
		return e.StatusCode()
	}
	return UnknownError
}

// IsConfigError reports whether err belongs to the configuration error family.
func IsConfigError(err error) bool {
	switch StatusCodeOf(err) {
	case ConfigInvalid, ConfigMissingName, ConfigAmbiguousActivation, ConfigInvalidPort, ContainerNameExhausted:
		return true
	}
	return false
}
