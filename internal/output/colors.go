package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for different elements in the console output
type ColorScheme struct {
	Banner    *color.Color
	Method    *color.Color
	URL       *color.Color
	Label     *color.Color
	Success   *color.Color
	Error     *color.Color
	Highlight *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Banner:    color.New(color.FgCyan, color.Bold),
		Method:    color.New(color.FgBlue, color.Bold),
		URL:       color.New(color.FgCyan),
		Label:     color.New(color.FgYellow),
		Success:   color.New(color.FgGreen),
		Error:     color.New(color.FgRed),
		Highlight: color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	scheme.Banner.DisableColor()
	scheme.Method.DisableColor()
	scheme.URL.DisableColor()
	scheme.Label.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	scheme.Highlight.DisableColor()

	return scheme
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
