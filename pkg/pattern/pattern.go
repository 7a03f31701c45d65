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

// Package pattern implements allow-pattern validation, single-level brace
// expansion, and case-insensitive glob matching against file base names.
package pattern

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrInvalidPattern marks patterns rejected by the safety validator
var ErrInvalidPattern = errors.New("invalid pattern")

// 🔍 Validate checks every pattern against the safety rules: only
// alphanumerics, '.', '*', '?', '[', ']', '/', '-', '_', ',' and single-level
// braces are allowed; '..', a leading '/', and '~' are rejected outright.
func Validate(patterns []string) error {
	if len(patterns) == 0 {
		return errors.Errorf("%w: empty pattern list", ErrInvalidPattern)
	}
	for _, p := range patterns {
		if err := validateOne(p); err != nil {
			return err
		}
	}
	return nil
}

func validateOne(p string) error {
	if p == "" {
		return errors.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if strings.Contains(p, "..") {
		return errors.Errorf("%w: %q contains a parent-directory reference", ErrInvalidPattern, p)
	}
	if strings.HasPrefix(p, "/") {
		return errors.Errorf("%w: %q must not start with '/'", ErrInvalidPattern, p)
	}
	if strings.Contains(p, "~") {
		return errors.Errorf("%w: %q must not reference the home directory", ErrInvalidPattern, p)
	}

	depth := 0
	for _, r := range p {
		switch {
		case r == '{':
			depth++
			if depth > 1 {
				return errors.Errorf("%w: %q nests brace groups", ErrInvalidPattern, p)
			}
		case r == '}':
			depth--
			if depth < 0 {
				return errors.Errorf("%w: %q has an unbalanced '}'", ErrInvalidPattern, p)
			}
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(".*?[]/-_,", r):
		default:
			return errors.Errorf("%w: %q contains disallowed character %q", ErrInvalidPattern, p, r)
		}
	}
	if depth != 0 {
		return errors.Errorf("%w: %q has an unbalanced '{'", ErrInvalidPattern, p)
	}
	return nil
}

// 🔄 ExpandBraces rewrites a pattern containing a single-level brace group
// into one pattern per comma-separated alternative. Patterns without braces
// come back as a one-element slice.
func ExpandBraces(p string) []string {
	open := strings.Index(p, "{")
	close := strings.Index(p, "}")
	if open < 0 || close < open {
		return []string{p}
	}

	prefix, suffix := p[:open], p[close+1:]
	alternatives := strings.Split(p[open+1:close], ",")
	expanded := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		expanded = append(expanded, prefix+alt+suffix)
	}
	return expanded
}

// 🎯 Matches reports whether fileName's base name matches any of the
// patterns. Matching is anchored and case-insensitive, and is always
// performed against the base name, never the full path. An empty pattern
// list never matches.
func Matches(fileName string, patterns []string) bool {
	base := strings.ToLower(filepath.Base(fileName))
	for _, p := range patterns {
		for _, candidate := range ExpandBraces(p) {
			ok, err := doublestar.Match(strings.ToLower(candidate), base)
			if err != nil {
				continue
			}
			if ok {
				return true
			}
		}
	}
	return false
}
