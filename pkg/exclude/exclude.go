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

// Package exclude merges host-exclude settings and custom exclude patterns
// into a single exclusion glob applied at directory-walk time.
package exclude

import (
	"sort"
	"strings"

	"github.com/catpack/catpack/pkg/config"
	"github.com/catpack/catpack/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Build combines the enabled host-exclude globs and the validated custom
// exclude patterns into one glob string. An empty result means "no
// exclusion" and must be treated as such by the walker, never as a glob.
func Build(cfg *config.Config) (string, error) {
	var patterns []string

	if cfg.RespectHostExcludes {
		patterns = append(patterns, enabledGlobs(cfg.Excludes.Files)...)
		patterns = append(patterns, enabledGlobs(cfg.Excludes.Search)...)
	}

	custom := cfg.CustomExcludeList()
	if len(custom) > 0 {
		if err := pattern.Validate(custom); err != nil {
			return "", errors.Errorf("validating custom exclude patterns: %w", err)
		}
		patterns = append(patterns, custom...)
	}

	patterns = dedupe(patterns)

	switch len(patterns) {
	case 0:
		return "", nil
	case 1:
		return applyRecursivePrefix(patterns[0]), nil
	default:
		trimmed := make([]string, len(patterns))
		for i, p := range patterns {
			trimmed[i] = strings.TrimPrefix(p, "**/")
		}
		return "**/{" + strings.Join(trimmed, ",") + "}", nil
	}
}

// enabledGlobs picks the keys whose flag is set, in stable order
func enabledGlobs(m map[string]bool) []string {
	globs := make([]string, 0, len(m))
	for g, enabled := range m {
		if enabled {
			globs = append(globs, g)
		}
	}
	sort.Strings(globs)
	return globs
}

func dedupe(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	out := patterns[:0]
	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// applyRecursivePrefix makes a single bare pattern apply at any depth, the
// way host-exclude settings are interpreted. Patterns that already carry a
// globstar are used as-is.
func applyRecursivePrefix(p string) string {
	if strings.HasPrefix(p, "**/") {
		return p
	}
	return "**/" + p
}
