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

// Package operation wires the selection, filtering, and aggregation stages
// into user-facing operations and owns the error boundary.
package operation

import (
	"context"
	"path/filepath"

	"github.com/catpack/catpack/pkg/aggregate"
	"github.com/catpack/catpack/pkg/config"
	"github.com/catpack/catpack/pkg/exclude"
	"github.com/catpack/catpack/pkg/ignore"
	"github.com/catpack/catpack/pkg/pattern"
	"github.com/catpack/catpack/pkg/selection"
	"github.com/catpack/catpack/pkg/walker"
	"github.com/catpack/catpack/pkg/workspace"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Prompt options for the recursive-or-shallow decision. Exported so callers
// that already decided through flags can preset a StaticPrompter.
const (
	ChoiceRecursive = "This folder and all subfolders"
	ChoiceShallow   = "This folder only"
)

// 🔧 Options contains the collaborators an Operator needs. All of them are
// required.
type Options struct {
	// Config is the catpack configuration for this operation
	Config *config.Config
	// WorkspaceRoot bounds ignore-file discovery and relative paths
	WorkspaceRoot string
	// FS reads and stats files
	FS workspace.FS
	// Enumerator lists files per include/exclude glob
	Enumerator workspace.Enumerator
	// Clipboard receives the aggregated text
	Clipboard workspace.Clipboard
	// Prompter decides recursive vs. shallow folder walks
	Prompter workspace.Prompter
}

// 🎮 Operator runs catpack operations
type Operator struct {
	cfg           *config.Config
	workspaceRoot string
	fs            workspace.FS
	enumerator    workspace.Enumerator
	clipboard     workspace.Clipboard
	prompter      workspace.Prompter
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.WorkspaceRoot == "" {
		return nil, errors.Errorf("workspace root is required")
	}
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Enumerator == nil {
		return nil, errors.Errorf("enumerator is required")
	}
	if opts.Clipboard == nil {
		return nil, errors.Errorf("clipboard is required")
	}
	if opts.Prompter == nil {
		return nil, errors.Errorf("prompter is required")
	}

	root, err := filepath.Abs(opts.WorkspaceRoot)
	if err != nil {
		return nil, errors.Errorf("resolving workspace root: %w", err)
	}

	return &Operator{
		cfg:           opts.Config,
		workspaceRoot: root,
		fs:            opts.FS,
		enumerator:    opts.Enumerator,
		clipboard:     opts.Clipboard,
		prompter:      opts.Prompter,
	}, nil
}

// 🚀 CopySelection runs the full pipeline for a mixed set of file and folder
// paths: classify, decide recursion, walk, filter, aggregate, deliver.
//
// The returned error always belongs to the fixed public message set;
// ErrCancelled marks a user-declined prompt and is a normal termination, not
// a failure. The outcome (when non-nil) carries the per-file failure report.
func (o *Operator) CopySelection(ctx context.Context, paths []string) (*aggregate.Outcome, error) {
	outcome, err := o.copySelection(ctx, paths)
	return outcome, translate(err)
}

// 📁 CopyFolder aggregates the contents of a single folder. It is a
// resource-type error if dir is not a directory.
func (o *Operator) CopyFolder(ctx context.Context, dir string) (*aggregate.Outcome, error) {
	res, err := o.toResource(dir)
	if err != nil {
		return nil, translate(err)
	}
	info, err := o.fs.Stat(ctx, res.AbsPath)
	if err != nil || !info.IsDir() {
		return nil, ErrNotADirectory
	}
	outcome, err := o.copySelection(ctx, []string{dir})
	return outcome, translate(err)
}

func (o *Operator) copySelection(ctx context.Context, paths []string) (*aggregate.Outcome, error) {
	logger := zerolog.Ctx(ctx)

	// Validation happens before any filesystem access.
	patterns := o.cfg.PatternList()
	if err := pattern.Validate(patterns); err != nil {
		return nil, errors.Errorf("validating allow-patterns: %w", err)
	}

	resources := make([]workspace.Resource, 0, len(paths))
	for _, p := range paths {
		res, err := o.toResource(p)
		if err != nil {
			logger.Debug().Err(err).Str("path", p).Msg("dropping unresolvable path")
			continue
		}
		resources = append(resources, res)
	}

	files, dirs := selection.Classify(ctx, o.fs, resources)
	if len(files) == 0 && len(dirs) == 0 {
		return nil, ErrNothingSelected
	}

	var walked []workspace.Resource
	if len(dirs) > 0 {
		recursive, err := o.decideRecursion(ctx)
		if err != nil {
			// a declined prompt is a normal termination
			return nil, err
		}

		excludeGlob, err := exclude.Build(o.cfg)
		if err != nil {
			return nil, errors.Errorf("building exclusion glob: %w", err)
		}

		roots := make([]string, len(dirs))
		for i, d := range dirs {
			roots[i] = d.AbsPath
		}
		walked, err = walker.WalkAll(ctx, o.enumerator, roots, patterns, excludeGlob, recursive)
		if err != nil {
			return nil, errors.Errorf("walking folders: %w", err)
		}

		if o.cfg.RespectIgnoreFiles {
			walked, err = o.applyIgnoreRules(ctx, roots, walked)
			if err != nil {
				return nil, errors.Errorf("applying ignore rules: %w", err)
			}
		}
	}

	// Directly selected files still have to pass the allow-patterns.
	selected := make([]workspace.Resource, 0, len(files)+len(walked))
	for _, f := range files {
		if pattern.Matches(f.AbsPath, patterns) {
			selected = append(selected, f)
		} else {
			logger.Debug().Str("path", f.RelPath).Msg("direct selection does not match allow-patterns")
		}
	}
	selected = append(selected, walked...)
	selected = selection.Dedupe(selected)

	if len(selected) == 0 {
		return nil, ErrNoFilesMatched
	}

	logger.Debug().Int("files", len(selected)).Msg("aggregating selection")
	outcome := aggregate.Aggregate(ctx, o.fs, selected)
	if outcome.FileCount == 0 {
		// distinct from "nothing matched": everything matched, all reads failed
		return outcome, ErrAllReadsFailed
	}

	if err := o.clipboard.Write(ctx, outcome.Content); err != nil {
		logger.Debug().Err(err).Msg("clipboard delivery failed")
		return outcome, ErrClipboard
	}

	return outcome, nil
}

// decideRecursion asks the prompter whether folder walks descend. A declined
// prompt cancels the operation before any reading starts; once reading
// begins the batch always runs to completion.
func (o *Operator) decideRecursion(ctx context.Context) (bool, error) {
	choice, err := o.prompter.Choose(ctx, "Include subfolders?", []string{ChoiceRecursive, ChoiceShallow})
	if err != nil {
		return false, errors.Errorf("prompting for recursion: %w", err)
	}
	return choice == ChoiceRecursive, nil
}

// applyIgnoreRules resolves the ignore files under every root and drops the
// candidates the hierarchical rules exclude. The rule set and matcher cache
// live only for this operation.
func (o *Operator) applyIgnoreRules(ctx context.Context, roots []string, candidates []workspace.Resource) ([]workspace.Resource, error) {
	logger := zerolog.Ctx(ctx)

	merged := make(ignore.RuleSet)
	for _, root := range roots {
		ruleSet, err := ignore.Resolve(ctx, root, o.workspaceRoot)
		if err != nil {
			return nil, err
		}
		for dir, content := range ruleSet {
			merged[dir] = content
		}
	}
	if len(merged) == 0 {
		return candidates, nil
	}

	ictx := ignore.NewContext(o.workspaceRoot, merged)
	kept := candidates[:0]
	for _, res := range candidates {
		if ictx.IsIgnored(res.AbsPath) {
			logger.Debug().Str("path", res.RelPath).Msg("excluded by ignore rules")
			continue
		}
		kept = append(kept, res)
	}
	return kept, nil
}

func (o *Operator) toResource(p string) (workspace.Resource, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return workspace.Resource{}, errors.Errorf("resolving path: %w", err)
	}
	return workspace.NewResource(o.workspaceRoot, abs)
}
