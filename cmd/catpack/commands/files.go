// Copyright 2025 catpack authors
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
	"github.com/catpack/catpack/cmd/catpack/opts"
	"github.com/spf13/cobra"
)

// NewFilesCmd creates the files command
func NewFilesCmd(rootOpts *opts.RootOpts) *cobra.Command {
	flags := &selectionFlags{}

	cmd := &cobra.Command{
		Use:   "files <path>...",
		Short: "Aggregate the contents of files and folders",
		Long: `Aggregate the contents of the given files and folders into a single
text blob and copy it to the clipboard.

Folders are expanded through the allow-patterns and the layered exclusion
rules; files listed explicitly still have to match the allow-patterns.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := buildOperator(rootOpts, flags)
			if err != nil {
				return err
			}

			outcome, err := op.CopySelection(ctx, args)
			return presentOutcome(ctx, rootOpts.Notifier, outcome, err)
		},
	}

	flags.register(cmd)
	return cmd
}
