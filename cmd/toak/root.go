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
	"context"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/cmd/toak/opts"
	"github.com/seemueller-io/toak/pkg/config"
	"github.com/seemueller-io/toak/pkg/exclude"
	"github.com/seemueller-io/toak/pkg/log"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configFile string
	dir        string
	output     string
	verbose    bool
	debug      bool
	excludeExt []string
	exclude    []string
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	cmd.PersistentFlags().StringVarP(&f.configFile, "config", "c", "", "config file path (default: .toak.{yaml,yml,json,hcl} if present)")
	cmd.PersistentFlags().StringVar(&f.dir, "dir", "", "project root directory")
	cmd.PersistentFlags().StringVarP(&f.output, "output", "o", "", "output document path")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "print one line per file")
	cmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringSliceVar(&f.excludeExt, "exclude-ext", nil, "additional extensions to exclude")
	cmd.PersistentFlags().StringSliceVar(&f.exclude, "exclude", nil, "additional glob patterns to exclude")
}

// setupLogging builds the zerolog logger carried through the command context.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	color.NoColor = noColor

	console := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.Kitchen}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// newRootOpts resolves configuration from the config file and flags.
func newRootOpts(ctx context.Context, cmd *cobra.Command, f *rootFlags, console io.Writer) (*opts.RootOpts, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Discover(ctx, cwd, f.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if err := applyFlags(cmd, f, cfg); err != nil {
		return nil, err
	}

	logger := log.Discard()
	if cfg.Verbose {
		logger = log.New(console, *zerolog.Ctx(ctx))
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("configuration resolved")

	return &opts.RootOpts{
		Config: cfg,
		Logger: logger,
	}, nil
}

// applyFlags overrides file values with explicitly set flags. Exclusion
// flags extend the effective denylists instead of replacing them.
func applyFlags(cmd *cobra.Command, f *rootFlags, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("dir") {
		cfg.Dir = f.dir
	}
	if flags.Changed("output") {
		cfg.OutputFilePath = f.output
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if len(f.excludeExt) > 0 {
		base := cfg.FileTypeExclusions
		if base == nil {
			base = exclude.DefaultExtensions()
		}
		cfg.FileTypeExclusions = append(base, f.excludeExt...)
	}
	if len(f.exclude) > 0 {
		base := cfg.FileExclusions
		if base == nil {
			base = exclude.DefaultPatterns()
		}
		cfg.FileExclusions = append(base, f.exclude...)
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating flags: %w", err)
	}
	return nil
}
