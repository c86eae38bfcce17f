package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/sequencer"
)

type mapCellType int

const (
	mapCellEmpty mapCellType = iota
	mapCellPath
	mapCellPast
	mapCellCurrent
	mapCellFuture
	mapCellPass
	mapCellTrain
)

type mapCell struct {
	ch    rune
	ctype mapCellType
}

// renderRouteMap renders a dots-only geographic map of the line. Stations
// behind the reference in dir are drawn as passed; train is the latest
// location sample and may be nil.
func renderRouteMap(r sequencer.Route, ref *models.Station, dir models.Direction, train *models.LocationSample, width, height int) string {
	if len(r.Stations) == 0 || width < 3 || height < 3 {
		return ""
	}

	// Filter stations with valid coordinates
	type stopEntry struct {
		pos  int
		stop models.Station
	}
	var valid []stopEntry
	for i := range r.Stations {
		s := r.Stations[i]
		if s.Lat != 0 || s.Lon != 0 {
			valid = append(valid, stopEntry{pos: sequencer.Position(r, &s, dir), stop: s})
		}
	}
	if len(valid) == 0 {
		return ""
	}
	refPos := sequencer.Position(r, ref, dir)

	// Compute bounding box
	minLat, maxLat := valid[0].stop.Lat, valid[0].stop.Lat
	minLon, maxLon := valid[0].stop.Lon, valid[0].stop.Lon
	for _, v := range valid[1:] {
		if v.stop.Lat < minLat {
			minLat = v.stop.Lat
		}
		if v.stop.Lat > maxLat {
			maxLat = v.stop.Lat
		}
		if v.stop.Lon < minLon {
			minLon = v.stop.Lon
		}
		if v.stop.Lon > maxLon {
			maxLon = v.stop.Lon
		}
	}

	// Handle degenerate cases
	latSpan := maxLat - minLat
	lonSpan := maxLon - minLon
	if latSpan < 0.01 {
		mid := (minLat + maxLat) / 2
		minLat = mid - 0.005
		maxLat = mid + 0.005
		latSpan = 0.01
	}
	if lonSpan < 0.01 {
		mid := (minLon + maxLon) / 2
		minLon = mid - 0.005
		maxLon = mid + 0.005
		lonSpan = 0.01
	}

	// Add 10% padding
	latPad := latSpan * 0.1
	lonPad := lonSpan * 0.1
	minLat -= latPad
	maxLat += latPad
	minLon -= lonPad
	maxLon += lonPad
	latSpan = maxLat - minLat
	lonSpan = maxLon - minLon

	// Scale factors with terminal aspect ratio correction (chars ~2x tall as wide)
	xScale := float64(width-1) / lonSpan
	yScale := float64(height-1) / latSpan * 2.0

	// Use the smaller scale to fit both axes
	scale := xScale
	if yScale < scale {
		scale = yScale
	}

	// Center the map within the available area
	usedWidth := scale * lonSpan
	usedHeight := scale * latSpan / 2.0
	xOffset := (float64(width-1) - usedWidth) / 2
	yOffset := (float64(height-1) - usedHeight) / 2

	// Convert coordinates to grid positions
	type gridPoint struct {
		col int
		row int
	}
	project := func(lat, lon float64) gridPoint {
		col := int(math.Round((lon-minLon)*scale + xOffset))
		row := int(math.Round((maxLat-lat)*scale/2.0 + yOffset))
		return gridPoint{col: clamp(col, 0, width-1), row: clamp(row, 0, height-1)}
	}
	points := make([]gridPoint, len(valid))
	for i, v := range valid {
		points[i] = project(v.stop.Lat, v.stop.Lon)
	}

	// Create grid
	grid := make([][]mapCell, height)
	for r := 0; r < height; r++ {
		grid[r] = make([]mapCell, width)
		for c := 0; c < width; c++ {
			grid[r][c] = mapCell{ch: ' ', ctype: mapCellEmpty}
		}
	}

	// Draw route lines between consecutive stations
	for i := 0; i < len(points)-1; i++ {
		bresenhamLine(grid, points[i].col, points[i].row, points[i+1].col, points[i+1].row)
	}
	if r.Loop && len(points) > 2 {
		last := points[len(points)-1]
		bresenhamLine(grid, last.col, last.row, points[0].col, points[0].row)
	}

	// Place station markers
	for i, v := range valid {
		p := points[i]
		var marker rune
		var ct mapCellType
		switch {
		case refPos >= 0 && v.stop.SameGroup(ref):
			marker = '◉'
			ct = mapCellCurrent
		case refPos >= 0 && v.pos < refPos:
			marker = '○'
			ct = mapCellPast
		case v.stop.IsPass():
			marker = '·'
			ct = mapCellPass
		default:
			marker = '●'
			ct = mapCellFuture
		}
		grid[p.row][p.col] = mapCell{ch: marker, ctype: ct}
	}

	// The train is drawn last so it stays visible over a station
	if train != nil && (train.Lat != 0 || train.Lon != 0) {
		p := project(train.Lat, train.Lon)
		grid[p.row][p.col] = mapCell{ch: '▲', ctype: mapCellTrain}
	}

	// Render grid to styled string
	pathStyle := lipgloss.NewStyle().Foreground(colorGray)
	pastStyle := lipgloss.NewStyle().Foreground(colorGray)
	currentStyle := lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	futureStyle := lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	trainStyle := lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	var b strings.Builder
	for r := 0; r < height; r++ {
		var line strings.Builder
		for c := 0; c < width; c++ {
			ch := string(grid[r][c].ch)
			switch grid[r][c].ctype {
			case mapCellPath:
				line.WriteString(pathStyle.Render(ch))
			case mapCellPast:
				line.WriteString(pastStyle.Render(ch))
			case mapCellCurrent:
				line.WriteString(currentStyle.Render(ch))
			case mapCellFuture:
				line.WriteString(futureStyle.Render(ch))
			case mapCellPass:
				line.WriteString(pathStyle.Render(ch))
			case mapCellTrain:
				line.WriteString(trainStyle.Render(ch))
			default:
				line.WriteString(ch)
			}
		}
		b.WriteString(line.String())
		if r < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// bresenhamLine draws a line between two points on the grid using Bresenham's algorithm.
func bresenhamLine(grid [][]mapCell, x0, y0, x1, y1 int) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			if grid[y0][x0].ctype == mapCellEmpty {
				grid[y0][x0] = mapCell{ch: '·', ctype: mapCellPath}
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
