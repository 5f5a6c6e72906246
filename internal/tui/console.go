package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/AnyUserName/squeeze/internal/pipeline"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	skipStyle = lipgloss.NewStyle().Foreground(ColorWarn)
	errStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Console prints one status line per file. It implements pipeline.Observer.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Skipped(e pipeline.Entry) {
	fmt.Fprintf(c.w, "%s %s\n", skipStyle.Render("skipped:"), e.Name)
}

func (c *Console) Processed(r pipeline.Result) {
	fmt.Fprintln(c.w, StatusLine(r))
}

// StatusLine renders the outcome of one file.
func StatusLine(r pipeline.Result) string {
	if r.Err != nil {
		return fmt.Sprintf("%s %v", errStyle.Render("error in "+r.Name+":"), r.Err.Err)
	}
	return fmt.Sprintf("%s %s -> %s | %s",
		okStyle.Render("ok:"), r.Name, pathStyle.Render(r.OutputName), ChangeText(r.Change()))
}
