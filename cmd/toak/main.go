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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seemueller-io/toak/cmd/toak/commands"
	"github.com/seemueller-io/toak/cmd/toak/opts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	generate := commands.NewGenerateCmd(rootOpts)

	rootCmd := &cobra.Command{
		Use:   "toak",
		Short: "Turn a repository into one token-counted Markdown document",
		Long: `toak collects the tracked files of a git repository, strips comments,
imports and debug output, redacts credential-shaped values, and writes a single
Markdown document with a token count, ready to paste into an LLM prompt.

Running toak without a subcommand is the same as "toak generate".`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(cmd.ErrOrStderr(), flags.debug)
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			resolved, err := newRootOpts(ctx, cmd, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*rootOpts = *resolved
			return nil
		},
		RunE: generate.RunE,
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		generate,
		commands.NewWatchCmd(rootOpts),
		commands.NewStatsCmd(rootOpts),
		commands.NewInitCmd(rootOpts),
	)

	return rootCmd
}
