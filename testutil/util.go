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

package testutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

type T struct {
	*testing.T
}

func (t *T) Override(dest, tmp interface{}) {
	t.Helper()
	teardown, err := override(dest, tmp)
	if err != nil {
		t.Errorf("temporary override value is invalid: %v", err)
		return
	}

	t.Cleanup(teardown)
}

// NewFakeFs installs an in-memory filesystem in place of the given afero.Fs variable.
func (t *T) NewFakeFs(dest *afero.Fs) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	t.Override(dest, fs)
	return fs
}

func (t *T) WriteFakeFile(fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func (t *T) CheckFakeFileContent(fs afero.Fs, path, expected string) {
	t.Helper()
	actual, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	t.CheckDeepEqual(expected, string(actual))
}

func (t *T) CheckNil(actual interface{}) {
	t.Helper()
	if !isNil(actual) {
		t.Errorf("expected `nil`, but was `%+v`", actual)
	}
}

func (t *T) CheckNotNil(actual interface{}) {
	t.Helper()
	if isNil(actual) {
		t.Error("expected `not nil`, but was `nil`")
	}
}

func isNil(actual interface{}) bool {
	if actual == nil {
		return true
	}
	v := reflect.ValueOf(actual)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func (t *T) CheckTrue(actual bool) {
	t.Helper()
	if !actual {
		t.Error("expected `true`, but was `false`")
	}
}

func (t *T) CheckFalse(actual bool) {
	t.Helper()
	if actual {
		t.Error("expected `false`, but was `true`")
	}
}

func (t *T) CheckEmpty(actual interface{}) {
	t.Helper()
	if actual == nil {
		return
	}
	v := reflect.ValueOf(actual)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		if v.Len() != 0 {
			t.Errorf("expected empty, but was `%+v`", actual)
		}
	default:
		t.Errorf("CheckEmpty doesn't support %T", actual)
	}
}

func (t *T) CheckContains(expected, actual string) {
	t.Helper()
	CheckContains(t.T, expected, actual)
}

func (t *T) CheckDeepEqual(expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	CheckDeepEqual(t.T, expected, actual, opts...)
}

func (t *T) CheckElementsMatch(expected, actual interface{}) {
	t.Helper()
	CheckElementsMatch(t.T, expected, actual)
}

func (t *T) CheckErrorAndDeepEqual(shouldErr bool, err error, expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	CheckErrorAndDeepEqual(t.T, shouldErr, err, expected, actual, opts...)
}

func (t *T) CheckError(shouldErr bool, err error) {
	t.Helper()
	CheckError(t.T, shouldErr, err)
}

// CheckErrorContains checks that an error is not nil and contains
// a given message.
func (t *T) CheckErrorContains(message string, err error) {
	t.Helper()
	if err == nil {
		t.Error("expected error, but returned none")
		return
	}
	if !strings.Contains(err.Error(), message) {
		t.Errorf("expected message [%s] not found in error: %s", message, err.Error())
	}
}

func (t *T) CheckNoError(err error) {
	t.Helper()
	CheckError(t.T, false, err)
}

func (t *T) RequireNoError(err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

// CheckErrorIs checks that err matches target anywhere in its chain.
func (t *T) CheckErrorIs(target, err error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected error matching %v, got %v", target, err)
	}
}

func Run(t *testing.T, name string, f func(t *T)) {
	if name == "" {
		name = t.Name()
	}
	t.Run(name, func(tt *testing.T) {
		tt.Helper()
		f(&T{T: tt})
	})
}

func CheckContains(t *testing.T, expected, actual string) {
	t.Helper()
	if !strings.Contains(actual, expected) {
		t.Errorf("[%s] does not contain [%s]", actual, expected)
	}
}

func CheckDeepEqual(t *testing.T, expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(actual, expected, opts...); diff != "" {
		t.Errorf("%T differ (-got, +want): %s", expected, diff)
	}
}

func CheckElementsMatch(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if err := checkElementsMatch(expected, actual); err != nil {
		t.Error(err)
	}
}

func checkElementsMatch(expected, actual interface{}) error {
	ev, av := reflect.ValueOf(expected), reflect.ValueOf(actual)
	if ev.Kind() != reflect.Slice || av.Kind() != reflect.Slice {
		return fmt.Errorf("elements are not slices: %T, %T", expected, actual)
	}
	if ev.Len() != av.Len() {
		return fmt.Errorf("length differs. expected %+v, actual %+v", expected, actual)
	}
	used := make([]bool, av.Len())
outer:
	for i := 0; i < ev.Len(); i++ {
		for j := 0; j < av.Len(); j++ {
			if !used[j] && reflect.DeepEqual(ev.Index(i).Interface(), av.Index(j).Interface()) {
				used[j] = true
				continue outer
			}
		}
		return fmt.Errorf("element %+v not found in %+v", ev.Index(i).Interface(), actual)
	}
	return nil
}

func CheckErrorAndDeepEqual(t *testing.T, shouldErr bool, err error, expected, actual interface{}, opts ...cmp.Option) {
	t.Helper()
	if err := checkErr(shouldErr, err); err != nil {
		t.Error(err)
		return
	}
	if !shouldErr {
		CheckDeepEqual(t, expected, actual, opts...)
	}
}

func CheckError(t *testing.T, shouldErr bool, err error) {
	t.Helper()
	if err := checkErr(shouldErr, err); err != nil {
		t.Error(err)
	}
}

func checkErr(shouldErr bool, err error) error {
	if err == nil && shouldErr {
		return errors.New("expected error, but returned none")
	}
	if err != nil && !shouldErr {
		return fmt.Errorf("unexpected error: %s", err)
	}
	return nil
}

// override sets a dest variable to a temporary value and returns a function
// that restores the original value.
func override(dest, tmp interface{}) (f func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	dValue := reflect.ValueOf(dest).Elem()

	curValue := reflect.New(dValue.Type()).Elem()
	curValue.Set(dValue)

	var tmpV reflect.Value
	if tmp == nil {
		tmpV = reflect.Zero(dValue.Type())
	} else {
		tmpV = reflect.ValueOf(tmp)
	}
	dValue.Set(tmpV)

	return func() { dValue.Set(curValue) }, nil
}
