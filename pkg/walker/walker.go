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

// Package walker turns allow-patterns and an exclusion glob into enumeration
// queries and merges the per-root results.
package walker

import (
	"context"
	"strings"
	"sync"

	"github.com/catpack/catpack/pkg/pattern"
	"github.com/catpack/catpack/pkg/selection"
	"github.com/catpack/catpack/pkg/workspace"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🚶 Walk enumerates the files under root matching the allow-patterns,
// pre-filtered by excludeGlob. The recursion toggle changes only the include
// glob's scope prefix; the exclude glob always applies tree-wide.
//
// Patterns are combined into a single brace-group query first. If the
// combined query is malformed, Walk falls back to one enumeration per
// pattern, skipping individual bad patterns rather than aborting the walk.
func Walk(ctx context.Context, en workspace.Enumerator, root string, patterns []string, excludeGlob string, recursive bool) ([]workspace.Resource, error) {
	logger := zerolog.Ctx(ctx)

	expanded := expandAll(patterns)
	if len(expanded) == 0 {
		return nil, nil
	}

	combined := combineInclude(expanded, recursive)
	resources, err := en.Enumerate(ctx, root, combined, excludeGlob)
	if err == nil {
		return selection.Dedupe(resources), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	logger.Debug().Err(err).Str("glob", combined).Msg("combined query failed, retrying per pattern")

	var merged []workspace.Resource
	for _, p := range expanded {
		res, perr := en.Enumerate(ctx, root, includeGlob(p, recursive), excludeGlob)
		if perr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warn().Err(perr).Str("pattern", p).Msg("skipping bad pattern")
			continue
		}
		merged = append(merged, res...)
	}
	return selection.Dedupe(merged), nil
}

// 🚀 WalkAll walks several roots concurrently, one task per root, and merges
// the results after all complete. Merged order is arbitrary; the caller must
// not rely on it. Duplicates across roots are folded case-insensitively.
func WalkAll(ctx context.Context, en workspace.Enumerator, roots []string, patterns []string, excludeGlob string, recursive bool) ([]workspace.Resource, error) {
	var (
		mu     sync.Mutex
		merged []workspace.Resource
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root
		g.Go(func() error {
			resources, err := Walk(gctx, en, root, patterns, excludeGlob, recursive)
			if err != nil {
				return errors.Errorf("walking %s: %w", root, err)
			}
			mu.Lock()
			merged = append(merged, resources...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return selection.Dedupe(merged), nil
}

// expandAll flattens brace groups so each query pattern is brace-free
func expandAll(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		out = append(out, pattern.ExpandBraces(p)...)
	}
	return out
}

// combineInclude builds one glob matching any of the patterns
func combineInclude(patterns []string, recursive bool) string {
	if len(patterns) == 1 {
		return includeGlob(patterns[0], recursive)
	}
	return includeGlob("{"+strings.Join(patterns, ",")+"}", recursive)
}

// includeGlob scopes a pattern to the whole tree or the top level only
func includeGlob(p string, recursive bool) string {
	if recursive {
		return "**/" + p
	}
	return p
}
