package formatter

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TerminalWidth gets the stdout width with a fallback of 80 columns
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}

	if width > 10 {
		return width - 4
	}
	return width
}

// RenderMarkdown renders markdown content for the terminal with glamour.
//
// A non-positive width uses [TerminalWidth].
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = TerminalWidth()
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return rendered, nil
}
