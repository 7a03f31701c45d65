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

// Package aggregate reads the selected files concurrently and concatenates
// their contents into a single delimited text blob.
package aggregate

import (
	"context"
	"fmt"
	"strings"

	"github.com/catpack/catpack/pkg/workspace"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// 📦 Outcome is the result of one aggregation batch. Immutable after
// construction.
type Outcome struct {
	// Content is the concatenated text of every successfully read file
	Content string
	// FileCount is the number of files whose content made it into Content
	FileCount int
	// ErrorCount is the number of files that failed to read
	ErrorCount int
	// FailedResources lists the workspace-relative paths of the failures
	FailedResources []string
}

// per-file read result, indexed so resolved order survives the fan-out
type readResult struct {
	res     workspace.Resource
	content []byte
	err     error
}

// 🚀 Aggregate reads all resources concurrently and builds the delimited
// output. One task per resource, no concurrency cap: a single workspace's
// file counts do not warrant bounding. A failed read never aborts its
// siblings; the batch always runs to completion once started.
//
// Bytes are decoded as text with no binary sniffing; binary files produce
// garbled output, which is an accepted limitation.
func Aggregate(ctx context.Context, fsys workspace.FS, resources []workspace.Resource) *Outcome {
	logger := zerolog.Ctx(ctx)

	results := make([]readResult, len(resources))
	g, gctx := errgroup.WithContext(ctx)
	for i, res := range resources {
		i, res := i, res
		g.Go(func() error {
			content, err := fsys.ReadFile(gctx, res.AbsPath)
			results[i] = readResult{res: res, content: content, err: err}
			return nil
		})
	}
	// tasks never return errors, the join is a pure barrier
	_ = g.Wait()

	outcome := &Outcome{}
	successes := make([]readResult, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			logger.Debug().Err(r.err).Str("path", r.res.RelPath).Msg("file read failed")
			outcome.ErrorCount++
			outcome.FailedResources = append(outcome.FailedResources, r.res.RelPath)
			continue
		}
		successes = append(successes, r)
	}

	outcome.FileCount = len(successes)
	outcome.Content = format(successes, len(resources))
	return outcome
}

// format renders the bit-exact output contract: a lone file is emitted raw
// only when the whole batch held exactly one resource; any larger batch gets
// a "--- File: <rel> ---" delimiter line per file and a blank line separator,
// even when failures shrink the survivors to one.
func format(results []readResult, batchSize int) string {
	if len(results) == 0 {
		return ""
	}
	if batchSize == 1 {
		return string(results[0].content)
	}

	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "--- File: %s ---\n%s\n\n", r.res.RelPath, string(r.content))
	}
	return sb.String()
}
