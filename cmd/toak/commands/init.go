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
	"io/fs"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/cmd/toak/opts"
	"github.com/seemueller-io/toak/pkg/document"
	"github.com/seemueller-io/toak/pkg/ignorefile"
)

// NewInitCmd creates the init command
func NewInitCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the root .toak-ignore and todo files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := initProject(opts.Config.Dir, opts.Config.Resolve(document.TodoFileName))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(created) == 0 {
				fmt.Fprint(out, pterm.Info.Sprintln("nothing to do, project already initialised"))
				return nil
			}
			for _, name := range created {
				fmt.Fprint(out, pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Sprintfln("created %s", name))
			}
			return nil
		},
	}

	return cmd
}

// initProject creates the missing companion files and returns their names.
func initProject(dir, todoPath string) ([]string, error) {
	var created []string

	ok, err := ignorefile.EnsureRoot(dir)
	if err != nil {
		return nil, err
	}
	if ok {
		created = append(created, ignorefile.FileName)
	}

	_, err = os.Stat(todoPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(todoPath, nil, 0o644); err != nil {
			return nil, errors.Errorf("creating todo file: %w", err)
		}
		created = append(created, document.TodoFileName)
	default:
		return nil, errors.Errorf("checking todo file: %w", err)
	}

	return created, nil
}
