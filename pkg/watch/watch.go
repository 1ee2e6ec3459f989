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

// Package watch re-runs a callback when files under a project change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/pkg/exclude"
	"github.com/seemueller-io/toak/pkg/ignorefile"
)

// DefaultDebounce is the quiet period before pending changes are delivered.
const DefaultDebounce = 500 * time.Millisecond

// tempPrefix marks the temp files written next to the output document.
const tempPrefix = ".toak-tmp-"

// dirProbe stands in for an arbitrary file when testing directory patterns.
const dirProbe = "\x00"

// 👀 Options configures a watch loop.
type Options struct {
	Root     string
	Debounce time.Duration
	// Ignore lists paths whose events never trigger a change, typically the
	// output document and its lock file.
	Ignore []string
	// RuleSet, when set, drops events for excluded paths and skips excluded
	// directories.
	RuleSet *exclude.RuleSet
	// Always lists root-relative paths that trigger a change even when
	// RuleSet excludes them. Override files always trigger.
	Always []string
}

// ChangeFunc receives the sorted, root-relative paths changed during one
// debounce window.
type ChangeFunc func(ctx context.Context, changed []string)

// 🔁 Watch blocks until ctx is done, calling onChange after each burst of
// filesystem events. Directories created while watching are added.
func Watch(ctx context.Context, opts Options, onChange ChangeFunc) error {
	logger := zerolog.Ctx(ctx)

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return errors.Errorf("resolving watch root: %w", err)
	}
	root = filepath.Clean(root)

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			ignore[filepath.Clean(abs)] = true
		}
	}

	always := make(map[string]bool, len(opts.Always))
	for _, p := range opts.Always {
		always[filepath.ToSlash(filepath.Clean(p))] = true
	}

	w := &watcher{root: root, ignore: ignore, always: always, rules: opts.RuleSet}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, root); err != nil {
		return errors.Errorf("watching %s: %w", root, err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]bool{}

	logger.Debug().Str("root", root).Dur("debounce", debounce).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			path := filepath.Clean(event.Name)
			rel, skip := w.skip(path)
			if skip {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, path); err != nil {
						logger.Warn().Err(err).Str("dir", rel).Msg("could not watch new directory")
					}
				}
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if len(pending) > 0 && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			pending[rel] = true
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]bool{}

			logger.Debug().Strs("changed", changed).Msg("change detected")
			onChange(ctx, changed)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return errors.Errorf("watching %s: %w", root, err)
		}
	}
}

type watcher struct {
	root   string
	ignore map[string]bool
	always map[string]bool
	rules  *exclude.RuleSet
}

func (w *watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if rel, ok := w.rel(path); ok && w.dirExcluded(rel) {
				return filepath.SkipDir
			}
		}
		return fsw.Add(path)
	})
}

// skip reports the root-relative form of path and whether its events are
// dropped.
func (w *watcher) skip(path string) (string, bool) {
	if w.ignore[path] {
		return "", true
	}
	rel, ok := w.rel(path)
	if !ok {
		return "", true
	}
	if rel == ".git" || strings.HasPrefix(rel, ".git/") {
		return rel, true
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, tempPrefix) || strings.HasSuffix(base, ".swp") || strings.HasPrefix(base, ".#") {
		return rel, true
	}
	if w.always[rel] || base == ignorefile.FileName {
		return rel, false
	}
	if w.rules != nil && w.rules.IsExcluded(rel) {
		return rel, true
	}
	return rel, false
}

// dirExcluded reports whether a subtree pattern such as "**/dist/" covers
// everything inside the directory rel.
func (w *watcher) dirExcluded(rel string) bool {
	if w.rules == nil {
		return false
	}
	_, matched := w.rules.Reason(rel + "/" + dirProbe)
	return matched
}

func (w *watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
