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

package main

import (
	"context"
	"os"

	"github.com/catpack/catpack/cmd/catpack/commands"
	"github.com/catpack/catpack/cmd/catpack/opts"
	"github.com/catpack/catpack/pkg/config"
	"github.com/catpack/catpack/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

func main() {
	setupLogging()
	ctx := zerolog.DefaultContextLogger.WithContext(context.Background())

	rootOpts := &opts.RootOpts{
		Notifier: operation.TermNotifier{},
	}

	rootCmd := &cobra.Command{
		Use:   "catpack",
		Short: "Aggregate file contents into your clipboard",
		Long: `catpack selects files by allow-patterns, filters them through layered
exclusion rules (host excludes, per-directory ignore files, custom patterns),
reads them concurrently, and concatenates the contents into a single text
blob with file-boundary markers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return initRootOpts(cmd.Context(), rootOpts)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewFilesCmd(rootOpts),
		commands.NewFolderCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".catpack.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// initRootOpts loads the config and resolves the workspace root after flags
// have been parsed
func initRootOpts(ctx context.Context, rootOpts *opts.RootOpts) error {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("resolving working directory: %w", err)
	}

	rootOpts.Config = cfg
	rootOpts.WorkspaceRoot = cwd
	return nil
}
