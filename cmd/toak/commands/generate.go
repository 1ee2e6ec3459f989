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
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/cmd/toak/opts"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the project document",
		Long: `Generate writes the project document.
It will:
1. Create the root .toak-ignore and the todo file when missing
2. List tracked files with git and drop excluded ones
3. Clean and redact each file, skipping files left empty
4. Write the document and report its token count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			res := opts.Generator(ctx).Run(ctx)
			if !res.Success {
				return errors.Errorf("generating %s: %w", res.OutputPath, res.Err)
			}

			zerolog.Ctx(ctx).Debug().Str("run_id", res.RunID.String()).Msg("generation complete")
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("%s written: %d files, %d tokens", res.OutputPath, len(res.Sections), res.TokenCount))
			return nil
		},
	}

	return cmd
}
