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

package ignore_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/catpack/catpack/pkg/ignore"
	"github.com/catpack/catpack/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestResolve tests ignore-file discovery
func TestResolve(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		".gitignore":            "*.log\n",
		"sub/.gitignore":        "*.tmp\n",
		"sub/deep/code.go":      "package deep",
		"other/readme.md":       "hi",
		"node_modules/junk.txt": "junk",
	})

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)

	require.Len(t, ruleSet, 2)
	assert.Equal(t, "*.log\n", ruleSet[root])
	assert.Equal(t, "*.tmp\n", ruleSet[filepath.Join(root, "sub")])
}

// 🧪 TestResolveSeesExcludedDirectories checks discovery applies no
// exclusion filter of its own: ignore files under directories that later
// filtering drops must still be found
func TestResolveSeesExcludedDirectories(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		"node_modules/.gitignore": "*.cache\n",
	})

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)
	assert.Contains(t, ruleSet, filepath.Join(root, "node_modules"))
}

// 🧪 TestResolveDiscardsEscapees checks the security gate: an ignore file
// reached through a symlink pointing outside the workspace root is never
// consulted
func TestResolveDiscardsEscapees(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks not reliably available")
	}

	ctx := testutils.TestContext(t)
	outside := t.TempDir()
	testutils.WriteTree(t, outside, map[string]string{
		"evil/.gitignore": "*\n",
	})

	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		"a.txt": "a",
	})
	require.NoError(t, os.Symlink(filepath.Join(outside, "evil", ".gitignore"), filepath.Join(root, ".gitignore")))

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)
	assert.Empty(t, ruleSet)
}

// 🧪 TestIsIgnoredHierarchy tests hierarchical rule application: each
// ancestor's rules bind to paths below that ancestor only
func TestIsIgnoredHierarchy(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		".gitignore":      "*.log\n",
		"sub/.gitignore":  "*.tmp\n",
		"sub/x.tmp":       "x",
		"sub/y.log":       "y",
		"sub/z.go":        "z",
		"other/z.tmp":     "z",
		"other/notes.txt": "n",
	})

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)
	ictx := ignore.NewContext(root, ruleSet)

	tests := []struct {
		path string
		want bool
	}{
		{"sub/x.tmp", true},   // sub's own rule
		{"sub/y.log", true},   // inherited root rule
		{"sub/z.go", false},   // no rule matches
		{"other/z.tmp", false}, // sub's rule must not leak siblings
		{"other/notes.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := ictx.IsIgnored(filepath.Join(root, filepath.FromSlash(tt.path)))
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestIsIgnoredAnchoring checks a leading slash binds the pattern to the
// directory holding the ignore file
func TestIsIgnoredAnchoring(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		".gitignore":         "/build\n",
		"build/out.o":        "o",
		"any/build/keep.txt": "k",
	})

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)
	ictx := ignore.NewContext(root, ruleSet)

	assert.True(t, ictx.IsIgnored(filepath.Join(root, "build", "out.o")))
	assert.False(t, ictx.IsIgnored(filepath.Join(root, "any", "build", "keep.txt")))
}

// 🧪 TestIsIgnoredNegation checks un-ignore rules pass through the matcher
func TestIsIgnoredNegation(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		".gitignore":    "*.log\n!keep.log\n",
		"debug.log":     "d",
		"keep.log":      "k",
		"sub/other.log": "o",
	})

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)
	ictx := ignore.NewContext(root, ruleSet)

	assert.True(t, ictx.IsIgnored(filepath.Join(root, "debug.log")))
	assert.False(t, ictx.IsIgnored(filepath.Join(root, "keep.log")))
	assert.True(t, ictx.IsIgnored(filepath.Join(root, "sub", "other.log")))
}

// 🧪 TestIsIgnoredCrossFileNegation checks the nearest ignore file with an
// opinion wins: a deeper negation overrides a shallower exclusion
func TestIsIgnoredCrossFileNegation(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		".gitignore":     "*.log\n",
		"sub/.gitignore": "!keep.log\n",
		"sub/keep.log":   "k",
		"sub/drop.log":   "d",
	})

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)
	ictx := ignore.NewContext(root, ruleSet)

	assert.False(t, ictx.IsIgnored(filepath.Join(root, "sub", "keep.log")))
	assert.True(t, ictx.IsIgnored(filepath.Join(root, "sub", "drop.log")))
}

// 🧪 TestIsIgnoredOutsideWorkspace checks paths outside the workspace root
// are never reported as ignored
func TestIsIgnoredOutsideWorkspace(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		".gitignore": "*\n",
	})
	outside := t.TempDir()

	ruleSet, err := ignore.Resolve(ctx, root, root)
	require.NoError(t, err)
	ictx := ignore.NewContext(root, ruleSet)

	assert.False(t, ictx.IsIgnored(filepath.Join(outside, "file.txt")))
}
