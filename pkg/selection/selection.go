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

// Package selection splits mixed inputs into files and directories and
// deduplicates the final resource set.
package selection

import (
	"context"
	"strings"

	"github.com/catpack/catpack/pkg/workspace"
	"github.com/rs/zerolog"
)

// 🗂️ Classify partitions resources into files and directories using the
// stat collaborator. Resources that fail to stat are dropped silently:
// partial success is preferred over hard failure. Input order is preserved
// within each partition.
func Classify(ctx context.Context, fsys workspace.FS, resources []workspace.Resource) (files, dirs []workspace.Resource) {
	logger := zerolog.Ctx(ctx)

	for _, res := range resources {
		info, err := fsys.Stat(ctx, res.AbsPath)
		if err != nil {
			logger.Debug().Err(err).Str("path", res.RelPath).Msg("dropping unstatable resource")
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, res)
		} else {
			files = append(files, res)
		}
	}
	return files, dirs
}

// 🧹 Dedupe removes duplicate resources, keyed by the case-folded absolute
// path so the same physical file reached through different patterns or roots
// appears once. First occurrence wins; relative order of first occurrences
// is preserved.
//
// Known limitation: on case-sensitive filesystems two distinct files whose
// paths differ only by case fold to one entry. The folding exists to protect
// case-insensitive filesystems from duplicates and is kept deliberately.
func Dedupe(resources []workspace.Resource) []workspace.Resource {
	seen := make(map[string]struct{}, len(resources))
	out := make([]workspace.Resource, 0, len(resources))
	for _, res := range resources {
		key := strings.ToLower(res.AbsPath)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, res)
	}
	return out
}
