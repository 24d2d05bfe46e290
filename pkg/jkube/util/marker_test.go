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

package util

import (
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/eclipse-jkube/jkube-kit/testutil"
)

func TestBuildTimestamp(t *testing.T) {
	testutil.Run(t, "creates marker when absent", func(t *testutil.T) {
		fs := t.NewFakeFs(&Fs)
		now := time.UnixMilli(1416868440761)
		t.Override(&Now, func() time.Time { return now })

		ts, err := BuildTimestamp("/build")

		t.CheckNoError(err)
		t.CheckDeepEqual(now.UnixMilli(), ts.UnixMilli())
		t.CheckFakeFileContent(fs, "/build/.jkube-last-modified", "1416868440761")
	})

	testutil.Run(t, "reuses existing marker", func(t *testutil.T) {
		fs := t.NewFakeFs(&Fs)
		t.WriteFakeFile(fs, "/build/.jkube-last-modified", "1000\n")
		t.Override(&Now, func() time.Time { return time.UnixMilli(5000) })

		ts, err := BuildTimestamp("/build")

		t.CheckNoError(err)
		t.CheckDeepEqual(int64(1000), ts.UnixMilli())
	})

	testutil.Run(t, "invalid marker", func(t *testutil.T) {
		fs := t.NewFakeFs(&Fs)
		t.WriteFakeFile(fs, "/build/.jkube-last-modified", "yesterday")

		_, err := BuildTimestamp("/build")

		t.CheckErrorContains("parsing", err)
	})
}

func TestResolvePath(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		t.CheckDeepEqual("/abs/file", ResolvePath("/base", "/abs/file"))
		t.CheckDeepEqual("/base/rel/file", ResolvePath("/base", "rel/file"))
	})

	testutil.Run(t, "home directory", func(t *testutil.T) {
		t.Override(&homedir.DisableCache, true)
		t.SetEnvs(map[string]string{"HOME": "/home/dev"})

		t.CheckDeepEqual("/home/dev/jkube.properties", ResolvePath("/base", "~/jkube.properties"))
	})
}

func TestSplitTrimmed(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		t.CheckDeepEqual([]string{"a", "b", "c"}, SplitTrimmed(" a, b ,,c "))
		t.CheckEmpty(SplitTrimmed(""))
	})
}
