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
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/cmd/toak/opts"
	"github.com/seemueller-io/toak/pkg/document"
	"github.com/seemueller-io/toak/pkg/tokens"
)

// NewStatsCmd creates the stats command
func NewStatsCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [document]",
		Short: "Show per-file token counts of a generated document",
		Long: `Stats reads a generated document (the configured output by default)
and prints the token count of every file section, largest first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := opts.Config.OutputPath()
			if len(args) == 1 {
				path = args[0]
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Errorf("reading document: %w", err)
			}

			sections, err := document.ParseSections(data)
			if err != nil {
				return errors.Errorf("parsing %s: %w", path, err)
			}

			stats, total := document.Stats(sections, tokens.New(ctx))
			return renderStats(cmd.OutOrStdout(), stats, total)
		},
	}

	return cmd
}

func renderStats(w io.Writer, stats []document.SectionStat, total int) error {
	data := pterm.TableData{{"FILE", "TOKENS"}}
	for _, s := range stats {
		data = append(data, []string{s.Path, strconv.Itoa(s.Tokens)})
	}
	data = append(data, []string{"total (" + strconv.Itoa(len(stats)) + " files)", strconv.Itoa(total)})

	out, err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
