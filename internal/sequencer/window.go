package sequencer

import (
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// Window returns up to size stations starting at ref in travel order.
// Junction duplicates are collapsed first. On a linear line the window gets
// shorter near the terminus; on a loop it wraps around the ends. A size of
// zero or less means DefaultWindowSize.
func Window(r Route, ref *models.Station, dir models.Direction, size int) []models.Station {
	if size <= 0 {
		size = DefaultWindowSize
	}

	seq := oriented(DedupJunctions(r.Stations), r.step(dir))
	i := indexIn(seq, ref)
	if i < 0 {
		return nil
	}

	if r.Loop && len(seq) > 1 {
		switch {
		case !r.Merged:
			return wrapWindow(seq, i, size)
		case len(r.MajorStations) > 0:
			return spliceMajorWindow(seq, i, size, r.MajorStations)
		}
		// A merged loop without major stations cannot be spliced
	}

	end := i + size
	if end > len(seq) {
		end = len(seq)
	}
	return clone(seq[i:end])
}

// wrapWindow takes the tail from i and continues from the opposite end,
// never repeating a station
func wrapWindow(seq []models.Station, i, size int) []models.Station {
	if size > len(seq) {
		size = len(seq)
	}
	out := make([]models.Station, 0, size)
	for k := 0; k < size; k++ {
		out = append(out, seq[(i+k)%len(seq)])
	}
	return out
}

// spliceMajorWindow takes the tail from i and fills the rest with the major
// stations found before i
func spliceMajorWindow(seq []models.Station, i, size int, majorIDs []int64) []models.Station {
	out := make([]models.Station, 0, size)
	for k := i; k < len(seq) && len(out) < size; k++ {
		out = append(out, seq[k])
	}
	if len(out) == size {
		return out
	}

	major := make(map[int64]bool, len(majorIDs))
	for _, id := range majorIDs {
		major[id] = true
	}
	for k := 0; k < i && len(out) < size; k++ {
		if major[seq[k].GroupID] {
			out = append(out, seq[k])
		}
	}
	return out
}

func clone(stations []models.Station) []models.Station {
	out := make([]models.Station, len(stations))
	copy(out, stations)
	return out
}

// HasTerminus reports whether the line's last station is inside the window
func HasTerminus(window []models.Station, last *models.Station) bool {
	if last == nil {
		return false
	}
	for i := range window {
		if window[i].GroupID == last.GroupID {
			return true
		}
	}
	return false
}

// TypeChange describes a pending change of the train type name at an
// operator boundary
type TypeChange struct {
	At   models.Station
	From string
	To   string
}

// NextTypeChange looks for the next line boundary inside the upcoming window
// and reports it when the train type is named differently on the far side.
// Nil when there is no train type, no boundary, or the name stays the same.
func NextTypeChange(r Route, tt *models.TrainType, ref *models.Station, dir models.Direction, size int) *TypeChange {
	if tt == nil || ref == nil {
		return nil
	}
	window := Window(r, ref, dir, size)
	if len(window) == 0 {
		return nil
	}

	fromLine := window[0].LineID
	from := tt.TypeNameOn(fromLine)
	for _, s := range window[1:] {
		if s.LineID == 0 || s.LineID == fromLine {
			continue
		}
		to := tt.TypeNameOn(s.LineID)
		if to == from {
			return nil
		}
		return &TypeChange{At: s, From: from, To: to}
	}
	return nil
}
