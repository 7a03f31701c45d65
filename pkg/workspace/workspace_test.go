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

package workspace_test

import (
	"bytes"
	"path/filepath"
	"sort"
	"testing"

	"github.com/catpack/catpack/pkg/testutils"
	"github.com/catpack/catpack/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestNewResource tests relative-path derivation
func TestNewResource(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "ws")

	res, err := workspace.NewResource(root, filepath.Join(root, "src", "main.go"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "src", "main.go"), res.AbsPath)
	assert.Equal(t, "src/main.go", res.RelPath)
}

func relPaths(resources []workspace.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.RelPath)
	}
	sort.Strings(out)
	return out
}

// 🧪 TestOSEnumeratorEnumerate tests glob walks over a real tree
func TestOSEnumeratorEnumerate(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		"main.go":          "m",
		"README.md":        "r",
		"src/util.go":      "u",
		"src/deep/more.go": "d",
	})

	en, err := workspace.NewOSEnumerator(root)
	require.NoError(t, err)

	t.Run("recursive", func(t *testing.T) {
		got, err := en.Enumerate(ctx, root, "**/*.go", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"main.go", "src/deep/more.go", "src/util.go"}, relPaths(got))
	})

	t.Run("shallow", func(t *testing.T) {
		got, err := en.Enumerate(ctx, root, "*.go", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"main.go"}, relPaths(got))
	})

	t.Run("no_matches", func(t *testing.T) {
		got, err := en.Enumerate(ctx, root, "**/*.rs", "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

// 🧪 TestOSEnumeratorExcludeGlob checks a directory-matching exclude glob
// drops the whole subtree, not just the directory entry
func TestOSEnumeratorExcludeGlob(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		"main.go":                    "m",
		"node_modules/pkg/index.go":  "n",
		"src/node_modules/nested.go": "n",
		"src/app.go":                 "a",
	})

	en, err := workspace.NewOSEnumerator(root)
	require.NoError(t, err)

	got, err := en.Enumerate(ctx, root, "**/*.go", "**/node_modules")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "src/app.go"}, relPaths(got))
}

// 🧪 TestOSEnumeratorWorkspaceRelativePaths checks resources stay relative to
// the workspace root even when enumerating a subdirectory
func TestOSEnumeratorWorkspaceRelativePaths(t *testing.T) {
	ctx := testutils.TestContext(t)
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		"sub/inner/a.go": "a",
	})

	en, err := workspace.NewOSEnumerator(root)
	require.NoError(t, err)

	got, err := en.Enumerate(ctx, filepath.Join(root, "sub"), "**/*.go", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sub/inner/a.go", got[0].RelPath)
}

// 🧪 TestStaticPrompter tests the flag-driven prompter
func TestStaticPrompter(t *testing.T) {
	ctx := testutils.TestContext(t)
	options := []string{"yes", "no"}

	t.Run("preset_choice", func(t *testing.T) {
		choice, err := workspace.StaticPrompter{Choice: "yes"}.Choose(ctx, "pick", options)
		require.NoError(t, err)
		assert.Equal(t, "yes", choice)
	})

	t.Run("empty_choice_cancels", func(t *testing.T) {
		_, err := workspace.StaticPrompter{}.Choose(ctx, "pick", options)
		require.ErrorIs(t, err, workspace.ErrCancelled)
	})
}

// 🧪 TestWriterClipboard tests the stdout-style sink
func TestWriterClipboard(t *testing.T) {
	ctx := testutils.TestContext(t)
	var buf bytes.Buffer

	cb := &workspace.WriterClipboard{Out: &buf}
	require.NoError(t, cb.Write(ctx, "payload"))
	assert.Equal(t, "payload", buf.String())
}
