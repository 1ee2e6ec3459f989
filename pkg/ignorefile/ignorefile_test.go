// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ignorefile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seemueller-io/toak/pkg/exclude"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, []byte("# comment\n\nsecret.txt\n  /anchored.txt  \n**/*.bak\n"))
	writeFile(t, root, "pkg/sub/"+FileName, []byte("local.json\r\nbuild/\n"))
	writeFile(t, root, "bad/"+FileName, []byte{0xff, 0xfe, 'x'})
	writeFile(t, root, "broken/"+FileName, []byte("ok.txt\nsrc/[\n"))
	writeFile(t, root, ".git/"+FileName, []byte("never\n"))

	buf := &bytes.Buffer{}
	ctx := zerolog.New(buf).WithContext(context.Background())

	patterns, skipped := Load(ctx, root)

	assert.Equal(t, []string{
		"secret.txt",
		"/anchored.txt",
		"**/*.bak",
		"pkg/sub/local.json",
		"pkg/sub/build/",
	}, patterns, "patterns should be resolved in discovery order")

	assert.Equal(t, 2, strings.Count(buf.String(), "skipping override file"), "each malformed file should warn once")

	require.Len(t, skipped, 2)
	assert.Equal(t, "bad/"+FileName, skipped[0].Path)
	assert.Contains(t, skipped[0].Err.Error(), "UTF-8")
	assert.Equal(t, "broken/"+FileName, skipped[1].Path)
	assert.Contains(t, skipped[1].Err.Error(), "invalid pattern")
}

func TestLoad_ScopesToDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/sub/"+FileName, []byte("local.json\n"))

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	rs := exclude.New(nil, nil)
	patterns, skipped := Load(ctx, root)
	assert.Empty(t, skipped)
	rs.Merge(patterns...)

	assert.True(t, rs.IsExcluded("pkg/sub/local.json"))
	assert.False(t, rs.IsExcluded("local.json"))
	assert.False(t, rs.IsExcluded("pkg/local.json"))
}

func TestLoad_MissingRoot(t *testing.T) {
	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	patterns, skipped := Load(ctx, filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, patterns)
	assert.Empty(t, skipped)
}

func TestDiscover_Sources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, []byte("a\n"))
	writeFile(t, root, "x/"+FileName, []byte("b\n"))

	sources, skipped := Discover(context.Background(), root)
	assert.Empty(t, skipped)
	require.Len(t, sources, 2)
	assert.Equal(t, FileName, sources[0].Path)
	assert.Equal(t, []string{"a"}, sources[0].Patterns)
	assert.Equal(t, "x/"+FileName, sources[1].Path)
	assert.Equal(t, []string{"x/b"}, sources[1].Patterns)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		pattern string
		want    string
	}{
		{name: "root_dir", dir: ".", pattern: "local.json", want: "local.json"},
		{name: "empty_dir", dir: "", pattern: "local.json", want: "local.json"},
		{name: "nested_dir", dir: "pkg/sub", pattern: "local.json", want: "pkg/sub/local.json"},
		{name: "nested_dir_marker", dir: "pkg", pattern: "out/", want: "pkg/out/"},
		{name: "dot_slash", dir: "pkg", pattern: "./gen.go", want: "pkg/gen.go"},
		{name: "anchored_slash", dir: "pkg", pattern: "/root.txt", want: "/root.txt"},
		{name: "anchored_globstar", dir: "pkg", pattern: "**/*.tmp", want: "**/*.tmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.dir, tt.pattern))
		})
	}
}

func TestEnsureRoot(t *testing.T) {
	root := t.TempDir()

	created, err := EnsureRoot(root)
	require.NoError(t, err)
	assert.True(t, created, "first call should create the file")

	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultBody, string(data))
	assert.Equal(t, []string{"todo", "prompt.md", FileName}, Parse(string(data)))

	created, err = EnsureRoot(root)
	require.NoError(t, err)
	assert.False(t, created, "second call should leave the file alone")
}
