// Package sequencer resolves next/previous stops and the upcoming station
// window over a line's station sequence. It is the only place that knows
// about loop wrapping, pass stations and junction duplicates.
//
// Every function is pure: a Route is never mutated and results are copies.
package sequencer

import (
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// DefaultWindowSize is the number of stations shown ahead of the train
const DefaultWindowSize = 8

// Route is an immutable view of one line run as the sequencer sees it
type Route struct {
	Stations []models.Station
	Line     *models.Line

	// Loop makes next/previous wrap around the ends of Stations
	Loop bool

	// MajorStations are group ids naming the circular directions
	MajorStations []int64

	// Merged marks a loop assembled from two layouts, where the return half is
	// only known by its major stations
	Merged bool
}

// NewRoute builds a Route for a line, applying the train type's stop
// pattern. Loop metadata comes from the known loop table.
func NewRoute(line *models.Line, stations []models.Station, tt *models.TrainType) Route {
	r := Route{
		Stations: ApplyTrainType(stations, tt),
		Line:     line,
	}
	if line != nil {
		if info, ok := models.LoopLine(line.ID); ok {
			r.Loop = true
			r.MajorStations = append([]int64(nil), info.MajorStations...)
			r.Merged = info.Merged
		}
	}
	return r
}

// step is the array index delta for dir
func (r Route) step(dir models.Direction) int {
	return r.Line.Step(dir)
}

// indexOf locates a station by group id and returns -1 when missing
func (r Route) indexOf(s *models.Station) int {
	return indexIn(r.Stations, s)
}

func indexIn(stations []models.Station, s *models.Station) int {
	if s == nil {
		return -1
	}
	for i := range stations {
		if stations[i].GroupID == s.GroupID {
			return i
		}
	}
	return -1
}

// Contains reports whether the station's group is on the route
func (r Route) Contains(s *models.Station) bool {
	return r.indexOf(s) >= 0
}

// Last returns the final station of the route in travel direction, ignoring
// stop conditions. Nil for empty routes.
func (r Route) Last(dir models.Direction) *models.Station {
	if len(r.Stations) == 0 {
		return nil
	}
	i := len(r.Stations) - 1
	if r.step(dir) < 0 {
		i = 0
	}
	s := r.Stations[i]
	return &s
}

// ApplyTrainType returns a copy of stations with the train type's stop
// overrides applied. A nil train type means all stations keep their
// loaded conditions.
func ApplyTrainType(stations []models.Station, tt *models.TrainType) []models.Station {
	out := make([]models.Station, len(stations))
	copy(out, stations)
	if tt == nil || len(tt.Stops) == 0 {
		return out
	}
	for i := range out {
		if c, ok := tt.Stops[out[i].ID]; ok {
			out[i].StopCondition = c
		}
	}
	return out
}

// DedupJunctions drops every record whose group id was already seen,
// keeping the first occurrence. Branch merge points appear once.
func DedupJunctions(stations []models.Station) []models.Station {
	seen := make(map[int64]bool, len(stations))
	out := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		if seen[s.GroupID] {
			continue
		}
		seen[s.GroupID] = true
		out = append(out, s)
	}
	return out
}

// oriented returns a copy of stations in travel order
func oriented(stations []models.Station, step int) []models.Station {
	out := make([]models.Station, len(stations))
	if step >= 0 {
		copy(out, stations)
		return out
	}
	for i, s := range stations {
		out[len(stations)-1-i] = s
	}
	return out
}

// TransferLines returns the connecting lines of a station other than the
// line being ridden
func TransferLines(s *models.Station, currentLineID int64) []models.LineRef {
	if s == nil {
		return nil
	}
	var out []models.LineRef
	for _, l := range s.Lines {
		if l.ID == currentLineID {
			continue
		}
		out = append(out, l)
	}
	return out
}
