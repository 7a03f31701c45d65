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

package operation

import (
	"github.com/catpack/catpack/pkg/pattern"
	"github.com/catpack/catpack/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

// The fixed public message set. Everything internal is translated into one
// of these at the operation boundary; raw filesystem error text and full
// paths never reach the end consumer.
var (
	// 🚫 ErrInvalidPatterns covers every validation failure
	ErrInvalidPatterns = errors.New("invalid file patterns provided")
	// 🚫 ErrNotADirectory is a resource-type error
	ErrNotADirectory = errors.New("the selected resource is not a folder")
	// 🚫 ErrNothingSelected means no usable resource survived classification
	ErrNothingSelected = errors.New("no files or folders were selected")
	// 🚫 ErrNoFilesMatched means the filters removed every candidate
	ErrNoFilesMatched = errors.New("no files matched the current filters")
	// 🚫 ErrAllReadsFailed means files matched but none could be read
	ErrAllReadsFailed = errors.New("the matched files could not be read")
	// 🚫 ErrClipboard means the aggregated text could not be delivered
	ErrClipboard = errors.New("could not write the result to the clipboard")
	// ℹ️ ErrCancelled marks a user-declined prompt, a normal termination
	ErrCancelled = workspace.ErrCancelled
)

// publicSet lists the sentinels in translation order
var publicSet = []error{
	ErrCancelled,
	ErrInvalidPatterns,
	ErrNotADirectory,
	ErrNothingSelected,
	ErrNoFilesMatched,
	ErrAllReadsFailed,
	ErrClipboard,
}

// 🛂 translate maps an internal error to the public message set. Wrapping
// context is stripped so internal detail never leaks outward.
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range publicSet {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	if errors.Is(err, pattern.ErrInvalidPattern) {
		return ErrInvalidPatterns
	}
	return errors.New("the operation could not be completed")
}
