package workspace

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 💬 TermPrompter asks on the terminal via an interactive select. When no
// terminal is attached the prompt is treated as declined; scripts are
// expected to pass the choice explicitly through flags.
type TermPrompter struct{}

func (TermPrompter) Choose(ctx context.Context, title string, options []string) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		zerolog.Ctx(ctx).Debug().Msg("no terminal attached, treating prompt as declined")
		return "", ErrCancelled
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		Show(title)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("interactive select failed")
		return "", ErrCancelled
	}
	if choice == "" {
		return "", ErrCancelled
	}
	return choice, nil
}

// 🤖 StaticPrompter always answers with a fixed choice. Used when the caller
// already decided through flags, and in tests.
type StaticPrompter struct {
	Choice string
}

func (p StaticPrompter) Choose(ctx context.Context, title string, options []string) (string, error) {
	if p.Choice == "" {
		return "", ErrCancelled
	}
	return p.Choice, nil
}
