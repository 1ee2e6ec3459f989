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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seemueller-io/toak/pkg/config"
	"github.com/seemueller-io/toak/pkg/exclude"
	"github.com/seemueller-io/toak/pkg/ignorefile"
)

func TestRootCmd_Init(t *testing.T) {
	dir := t.TempDir()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--dir", dir})

	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, ignorefile.FileName))
	assert.FileExists(t, filepath.Join(dir, "todo"))
	assert.Contains(t, out.String(), "created "+ignorefile.FileName)
}

func TestRootCmd_InvalidFlagPattern(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--dir", t.TempDir(), "--exclude", "src/["})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func resolveWith(t *testing.T, args []string) (*config.Config, error) {
	t.Helper()

	f := &rootFlags{}
	cmd := &cobra.Command{Use: "toak"}
	addRootFlags(cmd, f)
	require.NoError(t, cmd.ParseFlags(args))

	cfg := config.Default()
	return cfg, applyFlags(cmd, f, cfg)
}

func TestApplyFlags(t *testing.T) {
	t.Run("overrides_scalars", func(t *testing.T) {
		cfg, err := resolveWith(t, []string{"--dir", "src", "--output", "out.md", "--verbose"})
		require.NoError(t, err)
		assert.Equal(t, "src", cfg.Dir)
		assert.Equal(t, "out.md", cfg.OutputFilePath)
		assert.True(t, cfg.Verbose)
	})

	t.Run("unset_flags_keep_config", func(t *testing.T) {
		cfg, err := resolveWith(t, nil)
		require.NoError(t, err)
		assert.Equal(t, ".", cfg.Dir)
		assert.Equal(t, "./prompt.md", cfg.OutputFilePath)
		assert.Nil(t, cfg.FileExclusions)
	})

	t.Run("extends_default_denylists", func(t *testing.T) {
		cfg, err := resolveWith(t, []string{"--exclude-ext", "CSV", "--exclude", "docs/"})
		require.NoError(t, err)

		rs := cfg.RuleSet()
		assert.True(t, rs.IsExcluded("data/x.csv"))
		assert.True(t, rs.IsExcluded("docs/a.md"))
		assert.True(t, rs.IsExcluded("logo.png"), "defaults should be kept")
		assert.Len(t, rs.Patterns(), len(exclude.DefaultPatterns())+1)
	})
}

func TestSetupLogging_NonTerminalDisablesColor(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := setupLogging(buf, true)
	logger.Debug().Msg("visible at debug")
	assert.Contains(t, buf.String(), "visible at debug")
	assert.NotContains(t, buf.String(), "\x1b[")

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()
	logger = setupLogging(f, false)
	logger.Debug().Msg("hidden")
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Empty(t, data)
}
