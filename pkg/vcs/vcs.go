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

// Package vcs lists the files tracked by version control.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Lister returns tracked paths relative to the project directory, in the
// order version control reports them.
type Lister interface {
	ListTrackedFiles(ctx context.Context) ([]string, error)
}

// Git lists tracked files with `git ls-files`.
type Git struct {
	Dir string
}

// NewGit creates a Git lister rooted at dir.
func NewGit(dir string) *Git {
	return &Git{Dir: dir}
}

// ListTrackedFiles runs `git ls-files -z` in Dir.
func (g *Git) ListTrackedFiles(ctx context.Context) ([]string, error) {
	out, err := g.output(ctx, "ls-files", "-z")
	if err != nil {
		return nil, errors.Errorf("git ls-files: %w", err)
	}

	var files []string
	for _, name := range strings.Split(out, "\x00") {
		if name == "" {
			continue
		}
		files = append(files, name)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", g.Dir).Int("files", len(files)).Msg("listed tracked files")
	return files, nil
}

func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", errors.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return string(out), nil
}
