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

// Package ignore discovers per-directory ignore files and evaluates
// hierarchical, anchor-aware exclusion against them.
package ignore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// IgnoreFileName is the conventional per-directory ignore file
const IgnoreFileName = ".gitignore"

// 📚 RuleSet maps a directory's absolute path to the raw text of its ignore
// file. Built fresh per operation and discarded afterwards.
type RuleSet map[string]string

// 🔍 Resolve discovers every ignore file under root and returns their raw
// rule text keyed by containing directory.
//
// Discovery applies no exclusion filter of its own: it must see ignore files
// even under directories that later filtering will drop. Any ignore file
// whose resolved path escapes the workspace root (a symlink pointing
// elsewhere) is discarded, and unreadable ignore files are skipped.
func Resolve(ctx context.Context, root, workspaceRoot string) (RuleSet, error) {
	logger := zerolog.Ctx(ctx)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}
	boundary, err := resolveBoundary(workspaceRoot)
	if err != nil {
		return nil, err
	}

	ruleSet := make(RuleSet)
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// unreadable directories are skipped, never fatal
			logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry during ignore discovery")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != IgnoreFileName {
			return nil
		}

		if !withinBoundary(path, boundary) {
			logger.Warn().Str("path", path).Msg("discarding ignore file outside the workspace root")
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			logger.Debug().Err(readErr).Str("path", path).Msg("skipping unreadable ignore file")
			return nil
		}

		dir := filepath.Dir(path)
		ruleSet[dir] = string(content)
		logger.Debug().Str("dir", dir).Msg("loaded ignore rules")
		return nil
	})
	if walkErr != nil {
		return nil, errors.Errorf("discovering ignore files under %s: %w", absRoot, walkErr)
	}

	return ruleSet, nil
}

// resolveBoundary canonicalizes the workspace root for escape checks
func resolveBoundary(workspaceRoot string) (string, error) {
	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return "", errors.Errorf("resolving workspace root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Errorf("canonicalizing workspace root: %w", err)
	}
	return resolved, nil
}

// withinBoundary reports whether path, after symlink resolution, still lies
// under the workspace boundary.
func withinBoundary(path, boundary string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(boundary, resolved)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
