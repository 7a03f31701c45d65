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

package exclude_test

import (
	"testing"

	"github.com/catpack/catpack/pkg/config"
	"github.com/catpack/catpack/pkg/exclude"
	"github.com/catpack/catpack/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestBuild tests merging host excludes and custom patterns into one glob
func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *config.Config
		want string
	}{
		{
			name: "defaults",
			cfg:  config.Default,
			want: "**/.git",
		},
		{
			name: "nothing_enabled",
			cfg: func() *config.Config {
				cfg := config.Default()
				cfg.RespectHostExcludes = false
				return cfg
			},
			want: "",
		},
		{
			name: "single_custom_gets_recursive_prefix",
			cfg: func() *config.Config {
				cfg := config.Default()
				cfg.RespectHostExcludes = false
				cfg.CustomExcludes = "node_modules"
				return cfg
			},
			want: "**/node_modules",
		},
		{
			name: "custom_with_globstar_kept_as_is",
			cfg: func() *config.Config {
				cfg := config.Default()
				cfg.RespectHostExcludes = false
				cfg.CustomExcludes = "**/dist"
				return cfg
			},
			want: "**/dist",
		},
		{
			name: "multiple_sources_brace_grouped",
			cfg: func() *config.Config {
				cfg := config.Default()
				cfg.Excludes.Files = map[string]bool{"**/.git": true, "**/.hg": false}
				cfg.Excludes.Search = map[string]bool{"**/node_modules": true}
				cfg.CustomExcludes = "*.min.js"
				return cfg
			},
			want: "**/{.git,node_modules,*.min.js}",
		},
		{
			name: "duplicates_folded",
			cfg: func() *config.Config {
				cfg := config.Default()
				cfg.Excludes.Files = map[string]bool{"**/.git": true}
				cfg.Excludes.Search = map[string]bool{"**/.git": true}
				return cfg
			},
			want: "**/.git",
		},
		{
			name: "disabled_entries_skipped",
			cfg: func() *config.Config {
				cfg := config.Default()
				cfg.Excludes.Files = map[string]bool{"**/.git": false}
				return cfg
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exclude.Build(tt.cfg())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestBuildRejectsInvalidCustomPatterns checks custom excludes go through
// the same validator as allow-patterns
func TestBuildRejectsInvalidCustomPatterns(t *testing.T) {
	cfg := config.Default()
	cfg.CustomExcludes = "../outside"

	_, err := exclude.Build(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, pattern.ErrInvalidPattern)
}

// 🧪 TestBuildHostExcludesNotValidated checks host settings bypass the custom
// pattern validator: their globs may use syntax user patterns may not
func TestBuildHostExcludesNotValidated(t *testing.T) {
	cfg := config.Default()
	cfg.Excludes.Files = map[string]bool{"**/.git/objects/**": true}

	got, err := exclude.Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "**/.git/objects/**", got)
}
