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

package workspace

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 OSFS implements FS over the host filesystem
type OSFS struct{}

func (OSFS) Stat(ctx context.Context, p string) (os.FileInfo, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, errors.Errorf("stating file: %w", err)
	}
	return info, nil
}

func (OSFS) ReadFile(ctx context.Context, p string) ([]byte, error) {
	content, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// 🔍 OSEnumerator implements Enumerator with doublestar glob walks over the
// host filesystem. Resources are reported relative to the workspace root,
// which may be an ancestor of the enumeration root.
type OSEnumerator struct {
	workspaceRoot string
}

// 🏭 NewOSEnumerator creates an enumerator rooted at workspaceRoot
func NewOSEnumerator(workspaceRoot string) (*OSEnumerator, error) {
	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, errors.Errorf("resolving workspace root: %w", err)
	}
	return &OSEnumerator{workspaceRoot: abs}, nil
}

func (e *OSEnumerator) Enumerate(ctx context.Context, root, includeGlob, excludeGlob string) ([]Resource, error) {
	logger := zerolog.Ctx(ctx)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving enumeration root: %w", err)
	}

	var resources []Resource
	walkErr := doublestar.GlobWalk(os.DirFS(absRoot), includeGlob, func(p string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if excludeGlob != "" && excludedByGlob(excludeGlob, p) {
			logger.Debug().Str("path", p).Str("exclude", excludeGlob).Msg("path excluded by glob")
			return nil
		}
		res, err := NewResource(e.workspaceRoot, filepath.Join(absRoot, filepath.FromSlash(p)))
		if err != nil {
			return err
		}
		resources = append(resources, res)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Errorf("walking %s with %q: %w", absRoot, includeGlob, walkErr)
	}

	return resources, nil
}

// excludedByGlob tests the path and every ancestor directory against the
// exclude glob, so a glob matching a directory drops its whole subtree.
func excludedByGlob(excludeGlob, p string) bool {
	for q := p; q != "." && q != "/"; q = path.Dir(q) {
		if ok, err := doublestar.Match(excludeGlob, q); err == nil && ok {
			return true
		}
	}
	return false
}
