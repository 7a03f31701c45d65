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

package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// 🗂️ Context owns the compiled-matcher cache for one operation. It is never
// shared across operations and is only touched by the goroutine driving the
// filtering pass, so it needs no locking.
type Context struct {
	workspaceRoot string
	ruleSet       RuleSet
	cache         map[string]gitignore.GitIgnore
}

// 🏭 NewContext creates a filtering context over a resolved rule set
func NewContext(workspaceRoot string, ruleSet RuleSet) *Context {
	return &Context{
		workspaceRoot: filepath.Clean(workspaceRoot),
		ruleSet:       ruleSet,
		cache:         make(map[string]gitignore.GitIgnore),
	}
}

// 🚦 IsIgnored reports whether filePath is excluded by the ignore rules of
// any ancestor directory between the workspace root and the file.
//
// Each ancestor's rules are evaluated against the path RELATIVE TO THAT
// ANCESTOR, so anchored patterns ("/build") bind to the directory holding
// the ignore file, matching conventional ignore-file semantics. A rule
// matching a parent directory excludes everything beneath it. Ancestors are
// consulted deepest first: the nearest ignore file that has an opinion on
// the path wins, which lets a deeper negation override a shallower exclude.
func (c *Context) IsIgnored(filePath string) bool {
	abs := filePath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.workspaceRoot, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(c.workspaceRoot, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}

	for _, ancestor := range c.ancestorChain(abs) {
		matcher := c.matcherFor(ancestor)
		if matcher == nil {
			continue
		}
		relToAncestor, relErr := filepath.Rel(ancestor, abs)
		if relErr != nil {
			continue
		}
		relSlash := filepath.ToSlash(relToAncestor)

		// directory containment: an excluded parent cannot be re-included
		// by a rule on a file inside it
		for _, prefix := range dirPrefixes(relSlash) {
			if m := matcher.Relative(prefix, true); m != nil && m.Ignore() {
				return true
			}
		}

		if m := matcher.Relative(relSlash, false); m != nil {
			return m.Ignore()
		}
	}
	return false
}

// ancestorChain lists the directories from the file's containing directory
// up to the workspace root, inclusive.
func (c *Context) ancestorChain(absFile string) []string {
	var chain []string
	dir := filepath.Dir(absFile)
	for {
		chain = append(chain, dir)
		if dir == c.workspaceRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // hit the filesystem root without meeting the workspace root
		}
		dir = parent
	}
	return chain
}

// dirPrefixes lists the directory prefixes of a slash path, shallowest
// first: "a/b/c.txt" yields "a", "a/b".
func dirPrefixes(relSlash string) []string {
	var prefixes []string
	for i, r := range relSlash {
		if r == '/' {
			prefixes = append(prefixes, relSlash[:i])
		}
	}
	return prefixes
}

// matcherFor compiles (or fetches the cached) matcher for a directory.
// Directories without a rule-set entry yield nil.
func (c *Context) matcherFor(dir string) gitignore.GitIgnore {
	if m, ok := c.cache[dir]; ok {
		return m
	}
	content, ok := c.ruleSet[dir]
	if !ok {
		return nil
	}
	m := gitignore.New(strings.NewReader(content), dir, nil)
	c.cache[dir] = m
	return m
}
