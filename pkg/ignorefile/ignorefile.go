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

// Package ignorefile discovers per-directory override files and turns their
// patterns into root-relative exclusion patterns.
package ignorefile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/pkg/exclude"
)

// FileName is the reserved name of an override file.
const FileName = ".toak-ignore"

// DefaultBody is written to the root override file when none exists.
const DefaultBody = `# Patterns listed here are left out of the generated document.
# Patterns are relative to the directory holding this file; start a
# pattern with / or ** to match from the project root instead.
todo
prompt.md
` + FileName + `
`

// 📂 Source is one discovered override file and the patterns it contributed.
type Source struct {
	Path     string   // path relative to the project root, slash separated
	Patterns []string // resolved, root-relative patterns
}

// Skip is an override file, or a path on the way to one, that was left out.
type Skip struct {
	Path string
	Err  error
}

// 🔍 Load discovers every override file under root and returns the resolved
// patterns, in discovery order then file order. Unreadable or malformed
// files are skipped with a warning and reported back; a missing root yields
// no patterns.
func Load(ctx context.Context, root string) ([]string, []Skip) {
	sources, skipped := Discover(ctx, root)
	var patterns []string
	for _, src := range sources {
		patterns = append(patterns, src.Patterns...)
	}
	return patterns, skipped
}

// 🔍 Discover walks root and parses each override file it finds.
func Discover(ctx context.Context, root string) ([]Source, []Skip) {
	logger := zerolog.Ctx(ctx)

	var (
		sources []Source
		skipped []Skip
	)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				logger.Debug().Str("root", root).Msg("project root does not exist, no override files")
				return nil
			}
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable path while looking for override files")
			skipped = append(skipped, Skip{Path: path, Err: err})
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != FileName {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping override file outside project root")
			skipped = append(skipped, Skip{Path: path, Err: err})
			return nil
		}
		rel = filepath.ToSlash(rel)

		resolved, err := readFile(path, filepath.ToSlash(filepath.Dir(rel)))
		if err != nil {
			logger.Warn().Err(err).Str("file", rel).Msg("skipping override file")
			skipped = append(skipped, Skip{Path: rel, Err: err})
			return nil
		}

		logger.Debug().Str("file", rel).Int("patterns", len(resolved)).Msg("loaded override file")
		sources = append(sources, Source{Path: rel, Patterns: resolved})
		return nil
	})

	return sources, skipped
}

func readFile(path, dir string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading override file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, errors.Errorf("override file is not valid UTF-8")
	}

	lines := Parse(string(data))
	resolved := make([]string, 0, len(lines))
	for _, line := range lines {
		if !exclude.ValidPattern(line) {
			return nil, errors.Errorf("invalid pattern %q", line)
		}
		resolved = append(resolved, Resolve(dir, line))
	}
	return resolved, nil
}

// Parse splits override file content into patterns, dropping blank lines and
// lines starting with #.
func Parse(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// 🧭 Resolve scopes a pattern to the directory that declared it. Patterns
// starting with / or ** are already anchored and pass through unchanged.
func Resolve(dir, pattern string) string {
	if strings.HasPrefix(pattern, "/") || strings.HasPrefix(pattern, "**") {
		return pattern
	}
	pattern = strings.TrimPrefix(pattern, "./")
	dir = strings.Trim(filepath.ToSlash(dir), "/")
	if dir == "" || dir == "." {
		return pattern
	}
	return dir + "/" + pattern
}

// 📝 EnsureRoot creates the root override file with DefaultBody when it is
// absent and reports whether it did.
func EnsureRoot(root string) (bool, error) {
	path := filepath.Join(root, FileName)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, errors.Errorf("checking override file: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultBody), 0o644); err != nil {
		return false, errors.Errorf("creating override file: %w", err)
	}
	return true, nil
}
