package workspace

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📋 SystemClipboard writes text to the system clipboard. It shells out to
// the platform clipboard helper when one is available and falls back to an
// OSC 52 escape sequence on the terminal otherwise.
type SystemClipboard struct {
	// Fallback receives the OSC 52 sequence when no helper binary exists.
	// Defaults to stdout.
	Fallback io.Writer
}

// candidate helper commands, in preference order per platform
func clipboardCommands() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	default:
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}

func (c *SystemClipboard) Write(ctx context.Context, text string) error {
	logger := zerolog.Ctx(ctx)

	for _, argv := range clipboardCommands() {
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return errors.Errorf("running %s: %w", argv[0], err)
		}
		logger.Debug().Str("helper", argv[0]).Int("bytes", len(text)).Msg("copied to clipboard")
		return nil
	}

	// No helper found, emit OSC 52 so terminal multiplexers can pick it up
	out := c.Fallback
	if out == nil {
		out = os.Stdout
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(out, "\x1b]52;c;%s\x07", encoded); err != nil {
		return errors.Errorf("writing OSC 52 sequence: %w", err)
	}
	logger.Debug().Int("bytes", len(text)).Msg("copied to clipboard via OSC 52")
	return nil
}

// 🖨️ WriterClipboard writes the aggregated text to a plain io.Writer. Used
// for --stdout and --output modes.
type WriterClipboard struct {
	Out io.Writer
}

func (c *WriterClipboard) Write(ctx context.Context, text string) error {
	if _, err := io.WriteString(c.Out, text); err != nil {
		return errors.Errorf("writing output: %w", err)
	}
	return nil
}
