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
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 📄 Resource is an opaque handle to a filesystem entity. It carries both the
// absolute path and the path relative to the workspace root, and is immutable
// once obtained.
type Resource struct {
	AbsPath string // absolute, cleaned path
	RelPath string // path relative to the workspace root, forward slashes
}

// 🏭 NewResource builds a Resource for absPath inside root
func NewResource(root, absPath string) (Resource, error) {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return Resource{}, errors.Errorf("computing relative path: %w", err)
	}
	return Resource{
		AbsPath: filepath.Clean(absPath),
		RelPath: filepath.ToSlash(rel),
	}, nil
}

// 💾 FS is the filesystem collaborator the core reads through
type FS interface {
	// Stat returns file info for path
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	// ReadFile returns the raw bytes of path
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// 🔍 Enumerator lists files under a root matching an include glob, skipping
// anything matched by the exclude glob. An empty exclude glob means no
// exclusion.
type Enumerator interface {
	Enumerate(ctx context.Context, root, includeGlob, excludeGlob string) ([]Resource, error)
}

// 📋 Clipboard receives the final aggregated text
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// 💬 Prompter asks the user to pick one of a fixed set of options.
// Implementations return ErrCancelled when the user declines.
type Prompter interface {
	Choose(ctx context.Context, title string, options []string) (string, error)
}

// 🚫 ErrCancelled is returned by Prompter implementations when the user
// dismisses the prompt without choosing.
var ErrCancelled = errors.New("prompt cancelled")
