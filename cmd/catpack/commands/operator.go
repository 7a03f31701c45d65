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
	"context"
	"os"

	"github.com/catpack/catpack/cmd/catpack/opts"
	"github.com/catpack/catpack/pkg/aggregate"
	"github.com/catpack/catpack/pkg/operation"
	"github.com/catpack/catpack/pkg/workspace"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// selectionFlags are the per-command overrides of the config file
type selectionFlags struct {
	patterns       string
	excludes       string
	recursive      bool
	shallow        bool
	noIgnore       bool
	noHostExcludes bool
	toStdout       bool
	outputFile     string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.patterns, "patterns", "p", "", "comma-separated allow-patterns (overrides config)")
	cmd.Flags().StringVarP(&f.excludes, "exclude", "x", "", "comma-separated custom exclude patterns")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "include subfolders without prompting")
	cmd.Flags().BoolVar(&f.shallow, "shallow", false, "top-level folder contents only, without prompting")
	cmd.Flags().BoolVar(&f.noIgnore, "no-ignore", false, "do not honor per-directory ignore files")
	cmd.Flags().BoolVar(&f.noHostExcludes, "no-host-excludes", false, "do not honor the host exclude settings")
	cmd.Flags().BoolVar(&f.toStdout, "stdout", false, "print the result instead of using the clipboard")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "write the result to a file instead of the clipboard")
	cmd.MarkFlagsMutuallyExclusive("recursive", "shallow")
	cmd.MarkFlagsMutuallyExclusive("stdout", "output")
}

// buildOperator assembles an Operator from the loaded config plus the
// per-command flag overrides
func buildOperator(rootOpts *opts.RootOpts, flags *selectionFlags) (*operation.Operator, error) {
	// flags override the config file, never mutate the shared instance
	cfg := *rootOpts.Config
	if flags.patterns != "" {
		cfg.Patterns = flags.patterns
	}
	if flags.excludes != "" {
		cfg.CustomExcludes = flags.excludes
	}
	if flags.noIgnore {
		cfg.RespectIgnoreFiles = false
	}
	if flags.noHostExcludes {
		cfg.RespectHostExcludes = false
	}

	enumerator, err := workspace.NewOSEnumerator(rootOpts.WorkspaceRoot)
	if err != nil {
		return nil, errors.Errorf("creating enumerator: %w", err)
	}

	return operation.New(operation.Options{
		Config:        &cfg,
		WorkspaceRoot: rootOpts.WorkspaceRoot,
		FS:            workspace.OSFS{},
		Enumerator:    enumerator,
		Clipboard:     clipboardFor(flags),
		Prompter:      prompterFor(flags),
	})
}

func clipboardFor(flags *selectionFlags) workspace.Clipboard {
	switch {
	case flags.outputFile != "":
		return &fileClipboard{path: flags.outputFile}
	case flags.toStdout:
		return &workspace.WriterClipboard{Out: os.Stdout}
	default:
		return &workspace.SystemClipboard{}
	}
}

func prompterFor(flags *selectionFlags) workspace.Prompter {
	switch {
	case flags.recursive:
		return workspace.StaticPrompter{Choice: operation.ChoiceRecursive}
	case flags.shallow:
		return workspace.StaticPrompter{Choice: operation.ChoiceShallow}
	default:
		return workspace.TermPrompter{}
	}
}

// fileClipboard writes the aggregated text to a file
type fileClipboard struct {
	path string
}

func (c *fileClipboard) Write(ctx context.Context, text string) error {
	if err := os.WriteFile(c.path, []byte(text), 0644); err != nil {
		return errors.Errorf("writing output file: %w", err)
	}
	return nil
}

// presentOutcome routes the operation result through the notifier and picks
// the process exit semantics: cancellation is a normal termination
func presentOutcome(ctx context.Context, notifier operation.Notifier, outcome *aggregate.Outcome, err error) error {
	switch {
	case err == nil:
		notifier.Success(ctx, outcome)
		return nil
	case errors.Is(err, operation.ErrCancelled):
		notifier.Cancelled(ctx)
		return nil
	default:
		notifier.Failure(ctx, err)
		return err
	}
}
