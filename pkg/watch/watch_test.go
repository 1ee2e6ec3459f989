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

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seemueller-io/toak/pkg/exclude"
)

const waitFor = 5 * time.Second

func startWatch(t *testing.T, opts Options) <-chan []string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 16)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, opts, func(_ context.Context, changed []string) {
			changes <- changed
		})
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(waitFor):
			t.Error("watch did not stop after cancel")
		}
	})

	// give the watcher time to register the tree
	time.Sleep(100 * time.Millisecond)
	return changes
}

func nextChange(t *testing.T, changes <-chan []string) []string {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for change")
		return nil
	}
}

func TestWatch_DebouncesBurst(t *testing.T) {
	root := t.TempDir()
	changes := startWatch(t, Options{Root: root, Debounce: 150 * time.Millisecond})

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("aa"), 0o644))

	assert.Equal(t, []string{"a.go", "b.go"}, nextChange(t, changes))
}

func TestWatch_IgnoresOutputAndExcluded(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(root, "prompt.md")

	changes := startWatch(t, Options{
		Root:     root,
		Debounce: 100 * time.Millisecond,
		Ignore:   []string{output, output + ".lock"},
		RuleSet:  exclude.New([]string{".png"}, []string{"**/todo"}),
		Always:   []string{"todo"},
	})

	require.NoError(t, os.WriteFile(output, []byte("doc"), 0o644))
	require.NoError(t, os.WriteFile(output+".lock", nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "logo.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".toak-tmp-123"), []byte("tmp"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "todo"), []byte("- task"), 0o644))

	assert.Equal(t, []string{"todo"}, nextChange(t, changes))
}

func TestWatch_NewDirectories(t *testing.T) {
	root := t.TempDir()
	changes := startWatch(t, Options{Root: root, Debounce: 100 * time.Millisecond})

	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	assert.Equal(t, []string{"pkg"}, nextChange(t, changes))

	require.NoError(t, os.WriteFile(filepath.Join(sub, "x.go"), []byte("x"), 0o644))
	assert.Equal(t, []string{"pkg/x.go"}, nextChange(t, changes))
}

func TestWatch_SkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "dep"), 0o755))

	w := &watcher{root: root, rules: exclude.New(nil, []string{"**/node_modules/"})}
	assert.True(t, w.dirExcluded("node_modules"))
	assert.True(t, w.dirExcluded("web/node_modules"))
	assert.False(t, w.dirExcluded("src"))

	_, skip := w.skip(filepath.Join(root, "node_modules", "dep", "index.js"))
	assert.True(t, skip)

	rel, skip := w.skip(filepath.Join(root, "pkg", ".toak-ignore"))
	assert.False(t, skip)
	assert.Equal(t, "pkg/.toak-ignore", rel)
}

func TestWatch_MissingRoot(t *testing.T) {
	err := Watch(context.Background(), Options{Root: filepath.Join(t.TempDir(), "missing")}, func(context.Context, []string) {})
	require.Error(t, err)
}
