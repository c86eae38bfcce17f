package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Station     func(format string, a ...interface{}) string
	Number      func(format string, a ...interface{}) string
	Line        func(format string, a ...interface{}) string
	Pass        func(format string, a ...interface{}) string
	Arrived     func(format string, a ...interface{}) string
	Approaching func(format string, a ...interface{}) string
	Warning     func(format string, a ...interface{}) string
	Transfer    func(format string, a ...interface{}) string
	Header      func(format string, a ...interface{}) string
	Muted       func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	// Determine if we should use colors
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		// Return no-op color functions
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return fmt.Sprintf(format, a...)
		}
		return &Colors{
			Station:     noColor,
			Number:      noColor,
			Line:        noColor,
			Pass:        noColor,
			Arrived:     noColor,
			Approaching: noColor,
			Warning:     noColor,
			Transfer:    noColor,
			Header:      noColor,
			Muted:       noColor,
		}
	}

	// Create colored functions
	return &Colors{
		Station:     color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Number:      color.New(color.FgCyan).SprintfFunc(),
		Line:        color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Pass:        color.New(color.FgHiBlack).SprintfFunc(),
		Arrived:     color.New(color.FgGreen, color.Bold).SprintfFunc(),
		Approaching: color.New(color.FgYellow).SprintfFunc(),
		Warning:     color.New(color.FgRed, color.Bold).SprintfFunc(),
		Transfer:    color.New(color.FgMagenta).SprintfFunc(),
		Header:      color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:       color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// FormatDistance formats meters with a fixed 8-char width, switching to
// kilometers from 1 km
func (c *Colors) FormatDistance(m float64) string {
	if m < 1000 {
		return c.Muted("%6.0f m", m)
	}
	return c.Muted("%5.2f km", m/1000)
}

// FormatStatus formats the arrival state with a fixed 11-char width
func (c *Colors) FormatStatus(arrived, approaching bool) string {
	switch {
	case arrived:
		return c.Arrived("%-11s", "ARRIVED")
	case approaching:
		return c.Approaching("%-11s", "APPROACHING")
	}
	return c.Muted("%-11s", "RUNNING")
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
