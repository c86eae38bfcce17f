package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TinyKitten/trainlcd-cli/internal/display"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/output"
)

// plain formats numbers without ANSI codes; lipgloss does the styling
var plain = output.NewColors(output.ColorNever)

// minMapWidth is the narrowest terminal that still gets the route map
const minMapWidth = 90

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.loading {
		return m.spinner.View() + styleLoading.Render(" Loading line data...")
	}
	if m.err != nil {
		return styleError.Render("Error: "+m.err.Error()) + "\n" + styleMuted.Render("Press q to quit")
	}

	// Layout: title + LCD panel (+ route map) + status bar + help
	title := m.renderTitle()
	statusBar := m.renderStatusBar()
	helpView := m.help.View(m.keys)

	panelHeight := m.height - lipgloss.Height(title) - lipgloss.Height(statusBar) - lipgloss.Height(helpView)
	if panelHeight < 8 {
		panelHeight = 8
	}

	lcdWidth := m.width - 2
	mapWidth := 0
	if m.showMap && m.width >= minMapWidth {
		mapWidth = m.width * 35 / 100
		lcdWidth = m.width - mapWidth - 4
	}

	lcd := stylePanelFocused.
		Width(lcdWidth).
		Height(panelHeight - 2).
		Render(m.renderLCD(lcdWidth))

	body := lcd
	if mapWidth > 0 {
		route := m.engine.Route()
		mapView := renderRouteMap(route, m.snap.Reference, m.direction, m.last, mapWidth, panelHeight-2)
		mapPanel := stylePanelNormal.
			Width(mapWidth).
			Height(panelHeight - 2).
			Render(mapView)
		body = lipgloss.JoinHorizontal(lipgloss.Top, lcd, mapPanel)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, statusBar, helpView)
}

// renderTitle renders the line name, the bound and the train type
func (m Model) renderTitle() string {
	line := m.dataset.Line
	title := lineStyle(line.Color).Render(" " + line.Name + " ")

	if len(m.snap.Bound) > 0 {
		title += " " + styleHeader.Render(joinNames(m.snap.Bound, " / ")) + styleMuted.Render(" 方面")
	}
	if tt := m.dataset.TrainType(m.opts.TrainTypeID); tt != nil {
		title += "  " + lineStyle(tt.Color).Render(tt.TypeNameOn(line.ID))
	}
	title += "  " + styleMuted.Render(m.direction.String())
	return title
}

// renderLCD renders the header, the station strip and the bottom area
func (m Model) renderLCD(width int) string {
	snap := m.snap
	if snap.Waiting() {
		return styleMuted.Render("Waiting for location...")
	}

	var b strings.Builder

	label := display.PhaseLabel(snap.Header.Phase, snap.Header.Lang)
	st := display.HeaderStation(snap.Header, snap.Reference, snap.Next)
	name := ""
	if st != nil {
		name = display.StationName(st, snap.Header.Lang)
		if name == "" {
			name = st.Name
		}
	}
	b.WriteString(styleMuted.Render(label))
	b.WriteString("\n")
	b.WriteString(styleLCDStation.Render(name))
	if st != nil && st.PrimaryNumber() != "" {
		b.WriteString("  " + styleNumber.Render(st.PrimaryNumber()))
	}
	b.WriteString("\n\n")

	b.WriteString(renderStrip(snap.Window, snap.Reference, snap.Arrived, snap.HasTerminus, width))
	b.WriteString("\n\n")

	b.WriteString(m.renderBottom())
	return b.String()
}

// renderStrip renders the upcoming stations from left to right
func renderStrip(window []models.Station, ref *models.Station, arrived, hasTerminus bool, width int) string {
	if len(window) == 0 {
		return ""
	}
	cell := width/len(window) - 3 // separator
	if cell < 4 {
		cell = 4
	}

	parts := make([]string, 0, len(window))
	for i, st := range window {
		name := truncate(st.Name, cell)
		switch {
		case i == 0 && st.SameGroup(ref) && arrived:
			parts = append(parts, styleCurrentStop.Render(name))
		case st.IsPass():
			parts = append(parts, styleMuted.Render(name))
		default:
			parts = append(parts, name)
		}
	}
	strip := strings.Join(parts, styleMuted.Render(" ─ "))
	if hasTerminus {
		strip += styleMuted.Render(" ■")
	} else {
		strip += styleMuted.Render(" ▶")
	}
	return strip
}

// renderBottom renders the rotating bottom area
func (m Model) renderBottom() string {
	snap := m.snap
	label := styleHeader.Render(display.BottomLabel(snap.Bottom))

	var body string
	switch snap.Bottom {
	case display.BottomTransfer:
		chips := make([]string, len(snap.Transfers))
		for i, l := range snap.Transfers {
			style := lineStyle(l.Color)
			if l.Color == "" {
				style = styleTransfer
			}
			chips[i] = style.Render(" " + l.Name + " ")
		}
		body = strings.Join(chips, " ")
	case display.BottomTypeChange:
		if tc := snap.TypeChange; tc != nil {
			body = fmt.Sprintf("%s → %s %s", tc.From, tc.To, styleMuted.Render("("+tc.At.Name+")"))
		}
	default:
		body = lineStyle(m.dataset.Line.Color).Render(" " + m.dataset.Line.Name + " ")
	}

	if m.bottomPaused {
		label += styleMuted.Render(" (held)")
	}
	return label + "\n" + body
}

// renderStatusBar renders the detector state and the playback state
func (m Model) renderStatusBar() string {
	snap := m.snap

	status := "RUNNING"
	statusStyle := styleMuted
	switch {
	case snap.Arrived:
		status, statusStyle = "ARRIVED", styleArrived
	case snap.Approaching:
		status, statusStyle = "APPROACHING", styleApproaching
	}

	parts := []string{
		statusStyle.Render(status),
		plain.FormatDistance(snap.NearestDistance),
		"avg " + strings.TrimSpace(plain.FormatDistance(snap.AverageDistance)),
		fmt.Sprintf("samples %d", m.samples),
		fmt.Sprintf("gen %d", m.gen),
	}
	if snap.BadAccuracy {
		parts = append(parts, styleError.Render("BAD ACCURACY"))
	}
	if m.paused {
		parts = append(parts, styleLoading.Render("PAUSED"))
	}
	if m.done {
		parts = append(parts, styleMuted.Render("END OF TRACK"))
	}

	return styleStatusBar.Width(m.width).Render(" " + strings.Join(parts, "  "))
}

func joinNames(stations []models.Station, sep string) string {
	names := make([]string, len(stations))
	for i, s := range stations {
		names[i] = s.Name
	}
	return strings.Join(names, sep)
}

// truncate truncates a string to the given width in cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "~"
}
