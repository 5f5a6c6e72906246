package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// DisableColorUnlessTerminal turns styling off when f is not a terminal,
// so redirected reports stay plain text.
func DisableColorUnlessTerminal(f *os.File) {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
