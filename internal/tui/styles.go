package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors matching existing output/colors.go scheme
var (
	colorCyan    = lipgloss.Color("6")  // Cyan - lines, numbers
	colorYellow  = lipgloss.Color("3")  // Yellow - approaching
	colorRed     = lipgloss.Color("1")  // Red - errors, the train
	colorGreen   = lipgloss.Color("2")  // Green - arrived
	colorMagenta = lipgloss.Color("5")  // Magenta - transfers
	colorWhite   = lipgloss.Color("15") // White - station names
	colorGray    = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleLine        = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleNumber      = lipgloss.NewStyle().Foreground(colorCyan)
	styleTransfer    = lipgloss.NewStyle().Foreground(colorMagenta)
	styleArrived     = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleApproaching = lipgloss.NewStyle().Foreground(colorYellow)
	styleMuted       = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// The station name on the LCD
var styleLCDStation = lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Underline(true)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

// Station the train is standing at (green background)
var styleCurrentStop = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")). // Black text
	Background(colorGreen).          // Green background
	Bold(true)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Error text
var styleError = lipgloss.NewStyle().Foreground(colorRed)

// lineStyle renders a chip in a line or train type color such as "#F15A22".
// Lines without a color fall back to styleLine.
func lineStyle(hex string) lipgloss.Style {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return styleLine
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(hex)).
		Bold(true)
}
