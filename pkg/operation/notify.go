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
	"context"
	"fmt"
	"strings"

	"github.com/catpack/catpack/pkg/aggregate"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// how many failing paths the warning spells out before summarizing
const maxReportedFailures = 3

// 📢 Notifier presents operation outcomes to the user
type Notifier interface {
	Success(ctx context.Context, outcome *aggregate.Outcome)
	Cancelled(ctx context.Context)
	Failure(ctx context.Context, err error)
}

// 🖥️ TermNotifier is the pterm-backed Notifier used by the CLI
type TermNotifier struct{}

func (TermNotifier) Success(ctx context.Context, outcome *aggregate.Outcome) {
	logger := zerolog.Ctx(ctx)

	noun := "files"
	if outcome.FileCount == 1 {
		noun = "file"
	}
	msg := fmt.Sprintf("Copied the contents of %d %s", outcome.FileCount, noun)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
	logger.Info().Int("files", outcome.FileCount).Msg("aggregation complete")

	if outcome.ErrorCount > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(formatFailures(outcome))
		logger.Warn().
			Int("failed", outcome.ErrorCount).
			Strs("paths", outcome.FailedResources).
			Msg("some files could not be read")
	}
}

func (TermNotifier) Cancelled(ctx context.Context) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "⏭️"}).Println("Copy cancelled")
	zerolog.Ctx(ctx).Info().Msg("operation cancelled by user")
}

func (TermNotifier) Failure(ctx context.Context, err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err.Error())
	zerolog.Ctx(ctx).Error().Err(err).Msg("operation failed")
}

// formatFailures lists up to maxReportedFailures failing paths plus a count
// of the remainder.
func formatFailures(outcome *aggregate.Outcome) string {
	shown := outcome.FailedResources
	remainder := 0
	if len(shown) > maxReportedFailures {
		remainder = len(shown) - maxReportedFailures
		shown = shown[:maxReportedFailures]
	}

	colored := make([]string, len(shown))
	for i, p := range shown {
		colored[i] = color.CyanString(p)
	}

	msg := fmt.Sprintf("%d file(s) could not be read: %s", outcome.ErrorCount, strings.Join(colored, ", "))
	if remainder > 0 {
		msg += fmt.Sprintf(" and %d more", remainder)
	}
	return msg
}

// 🔇 NopNotifier discards all notifications. Used in tests and when catpack
// is embedded as a library.
type NopNotifier struct{}

func (NopNotifier) Success(ctx context.Context, outcome *aggregate.Outcome) {}
func (NopNotifier) Cancelled(ctx context.Context)                          {}
func (NopNotifier) Failure(ctx context.Context, err error)                 {}
