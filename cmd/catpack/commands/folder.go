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

// NewFolderCmd creates the folder command
func NewFolderCmd(rootOpts *opts.RootOpts) *cobra.Command {
	flags := &selectionFlags{}

	cmd := &cobra.Command{
		Use:   "folder <dir>",
		Short: "Aggregate the contents of a single folder",
		Long: `Aggregate the contents of one folder into a single text blob and copy
it to the clipboard.

When neither --recursive nor --shallow is given and a terminal is attached,
catpack asks whether to include subfolders; declining the prompt cancels the
operation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := buildOperator(rootOpts, flags)
			if err != nil {
				return err
			}

			outcome, err := op.CopyFolder(ctx, args[0])
			return presentOutcome(ctx, rootOpts.Notifier, outcome, err)
		},
	}

	flags.register(cmd)
	return cmd
}
