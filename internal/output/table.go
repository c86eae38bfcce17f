package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/TinyKitten/trainlcd-cli/internal/display"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/navigation"
	"github.com/TinyKitten/trainlcd-cli/internal/sequencer"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors *Colors

	// ShowTransfers lists connecting lines under each station
	ShowTransfers bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderStations renders the stations of a line in line order
func RenderStations(w io.Writer, line *models.Line, stations []models.Station, tt *models.TrainType, opts TableOptions) {
	c := opts.colors()

	if line != nil {
		title := line.Name
		if line.NameRoman != "" {
			title += " " + line.NameRoman
		}
		_, _ = fmt.Fprintln(w, c.Line(title))
		if tt != nil {
			_, _ = fmt.Fprintf(w, "%s %s\n", c.Muted("Train type:"), tt.TypeNameOn(line.ID))
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(stations) == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
		return
	}

	for i, st := range stations {
		// Number (fixed 6-char width)
		number := fmt.Sprintf("%-6s", st.PrimaryNumber())

		name := c.Station(st.Name)
		marker := " "
		if st.IsPass() {
			name = c.Pass("%s", st.Name)
			marker = c.Pass("↓")
		} else if st.StopCondition != models.StopAll {
			marker = c.Approaching("*")
		}

		_, _ = fmt.Fprintf(w, "%3d %s %s %s  %s\n",
			i+1,
			marker,
			c.Number(number),
			name,
			c.Muted(st.NameRoman),
		)

		if opts.ShowTransfers && line != nil {
			if refs := transferNames(st, line.ID); refs != "" {
				_, _ = fmt.Fprintf(w, "             %s\n", c.Transfer("⇄ %s", refs))
			}
		}
	}
}

func transferNames(st models.Station, lineID int64) string {
	return lineNames(sequencer.TransferLines(&st, lineID))
}

func lineNames(refs []models.LineRef) string {
	names := make([]string, len(refs))
	for i, l := range refs {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

// StopInfo is the position of one station on a route in one direction
type StopInfo struct {
	Line        *models.Line      `json:"line"`
	Station     *models.Station   `json:"station"`
	Direction   models.Direction  `json:"-"`
	Previous    *models.Station   `json:"previous,omitempty"`
	Next        *models.Station   `json:"next,omitempty"`
	Window      []models.Station  `json:"window"`
	Bound       []models.Station  `json:"bound,omitempty"`
	HasTerminus bool              `json:"hasTerminus"`
	TrainType   *models.TrainType `json:"trainType,omitempty"`
}

// RenderStop renders what the display would show at a station
func RenderStop(w io.Writer, info StopInfo, opts TableOptions) {
	c := opts.colors()

	if info.Station == nil {
		_, _ = fmt.Fprintln(w, "Station not found on this line.")
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s %s\n",
		c.Header("At:"),
		c.Station(info.Station.Name),
		c.Muted("(%s)", info.Direction),
	)
	if len(info.Bound) > 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Bound for:"), joinNames(info.Bound, " / "))
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Previous:"), nameOr(info.Previous, c.Muted("-")))
	_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Next:"), nameOr(info.Next, c.Muted("terminus")))

	_, _ = fmt.Fprintln(w)
	renderStrip(w, c, info.Window, info.HasTerminus)
}

func renderStrip(w io.Writer, c *Colors, window []models.Station, hasTerminus bool) {
	for i, st := range window {
		// Connection symbol
		symbol := "├"
		if i == 0 {
			symbol = "┌"
		} else if i == len(window)-1 {
			symbol = "└"
		}

		name := c.Station(st.Name)
		if st.IsPass() {
			name = c.Pass("%s (pass)", st.Name)
		}
		suffix := ""
		if hasTerminus && i == len(window)-1 {
			suffix = " " + c.Muted("[terminus]")
		}
		_, _ = fmt.Fprintf(w, "  %s %s%s\n", c.Muted(symbol), name, suffix)
	}
}

// RenderEvent renders one snapshot as a single line
func RenderEvent(w io.Writer, ev navigation.Event, snap navigation.Snapshot, opts TableOptions) {
	c := opts.colors()

	nearest := "-"
	if snap.Nearest != nil {
		nearest = snap.Nearest.Name
	}

	line := fmt.Sprintf("%-8s %s %s %s %s %s %s",
		ev.Kind,
		c.FormatStatus(snap.Arrived, snap.Approaching),
		c.FormatDistance(snap.NearestDistance),
		c.Station("%s", nearest),
		c.Muted("ref=%s", nameOr(snap.Reference, "-")),
		c.Muted("next=%s", nameOr(snap.Next, "-")),
		c.Muted("%s %s", snap.Header, snap.Bottom),
	)
	if snap.BadAccuracy {
		line += " " + c.Warning("BAD ACCURACY")
	}
	for _, n := range snap.Notifications {
		line += " " + c.Transfer("notify:%s@%s", n.Kind, n.Station.Name)
	}
	_, _ = fmt.Fprintln(w, line)
}

// RenderBoard renders the full display for one snapshot
func RenderBoard(w io.Writer, line *models.Line, snap navigation.Snapshot, opts TableOptions) {
	c := opts.colors()

	lineName := ""
	if line != nil {
		lineName = line.Name
	}
	title := lineName
	if len(snap.Bound) > 0 {
		title += " " + c.Muted("for %s", joinNames(snap.Bound, " / "))
	}
	_, _ = fmt.Fprintln(w, c.Line(title))
	_, _ = fmt.Fprintln(w)

	if snap.Waiting() {
		_, _ = fmt.Fprintln(w, c.Muted("Waiting for location..."))
		return
	}

	_, _ = fmt.Fprintln(w, c.Header("%s", display.HeaderText(snap.Header, snap.Reference, snap.Next)))
	_, _ = fmt.Fprintln(w)
	renderStrip(w, c, snap.Window, snap.HasTerminus)
	_, _ = fmt.Fprintln(w)

	switch snap.Bottom {
	case display.BottomTransfer:
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Transfers:"), c.Transfer("%s", lineNames(snap.Transfers)))
	case display.BottomTypeChange:
		if tc := snap.TypeChange; tc != nil {
			_, _ = fmt.Fprintf(w, "%s %s → %s %s\n",
				c.Header("Type change:"), tc.From, tc.To, c.Muted("at %s", tc.At.Name))
		}
	default:
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Line:"), c.Line("%s", lineName))
	}

	_, _ = fmt.Fprintf(w, "\n%s %s  %s %s\n",
		c.FormatStatus(snap.Arrived, snap.Approaching),
		c.FormatDistance(snap.NearestDistance),
		c.Muted("avg"),
		c.FormatDistance(snap.AverageDistance),
	)
	if snap.BadAccuracy {
		_, _ = fmt.Fprintln(w, c.Warning("Location accuracy is too low"))
	}
}

func nameOr(s *models.Station, fallback string) string {
	if s == nil {
		return fallback
	}
	return s.Name
}

func joinNames(stations []models.Station, sep string) string {
	names := make([]string, len(stations))
	for i, s := range stations {
		names[i] = s.Name
	}
	return strings.Join(names, sep)
}
