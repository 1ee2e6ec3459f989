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

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/cmd/toak/opts"
	"github.com/seemueller-io/toak/pkg/document"
	"github.com/seemueller-io/toak/pkg/watch"
)

// NewWatchCmd creates the watch command
func NewWatchCmd(opts *opts.RootOpts) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the document whenever project files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)
			out := cmd.OutOrStdout()

			gen := opts.Generator(ctx)
			run := func(ctx context.Context) {
				res := gen.Run(ctx)
				if !res.Success {
					logger.Error().Err(res.Err).Msg("generation failed, waiting for next change")
					return
				}
				fmt.Fprint(out, pterm.Info.Sprintfln("%s written: %d files, %d tokens", res.OutputPath, len(res.Sections), res.TokenCount))
			}

			run(ctx)

			output := opts.Config.OutputPath()
			err := watch.Watch(ctx, watch.Options{
				Root:     opts.Config.Dir,
				Debounce: debounce,
				Ignore:   []string{output, output + ".lock"},
				RuleSet:  opts.Config.RuleSet(),
				Always:   []string{document.TodoFileName},
			}, func(ctx context.Context, changed []string) {
				logger.Info().Strs("changed", changed).Msg("regenerating")
				run(ctx)
			})
			if err != nil {
				return errors.Errorf("watching %s: %w", opts.Config.Dir, err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")

	return cmd
}
