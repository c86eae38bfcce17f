package sequencer

import (
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// NextStop returns the next station after ref in dir. Pass stations are
// skipped unless ignorePass is set. Returns nil at the end of a non-loop
// line, or when ref is not on the route.
func NextStop(r Route, ref *models.Station, dir models.Direction, ignorePass bool) *models.Station {
	return walk(r, ref, r.step(dir), ignorePass)
}

// PreviousStop mirrors NextStop: the last station before ref in dir
func PreviousStop(r Route, ref *models.Station, dir models.Direction, ignorePass bool) *models.Station {
	return walk(r, ref, -r.step(dir), ignorePass)
}

// walk moves from ref one station at a time. It visits every other index at
// most once, so it terminates even on a loop made only of pass stations.
func walk(r Route, ref *models.Station, step int, ignorePass bool) *models.Station {
	n := len(r.Stations)
	i := r.indexOf(ref)
	if i < 0 {
		return nil
	}

	for moved := 1; moved < n; moved++ {
		i += step
		if i < 0 || i >= n {
			if !r.Loop {
				return nil
			}
			i = (i + n) % n
		}

		s := r.Stations[i]
		// Junction duplicate of the reference itself
		if s.GroupID == ref.GroupID {
			continue
		}
		if !ignorePass && s.IsPass() {
			continue
		}
		return &s
	}
	return nil
}

// Position returns the index of s in travel order, or -1
func Position(r Route, s *models.Station, dir models.Direction) int {
	i := r.indexOf(s)
	if i < 0 {
		return -1
	}
	if r.step(dir) < 0 {
		return len(r.Stations) - 1 - i
	}
	return i
}

// IsAtOrPast reports whether s is the target station or lies beyond it in
// dir. On loops "beyond" means within half a lap ahead of the target.
func IsAtOrPast(r Route, s, target *models.Station, dir models.Direction) bool {
	ps := Position(r, s, dir)
	pt := Position(r, target, dir)
	if ps < 0 || pt < 0 {
		return false
	}
	if s.GroupID == target.GroupID {
		return true
	}
	if !r.Loop {
		return ps >= pt
	}
	n := len(r.Stations)
	ahead := ((ps-pt)%n + n) % n
	return ahead <= n/2
}

// Terminus returns the last stopping station in dir. Loops have none.
func Terminus(r Route, dir models.Direction) *models.Station {
	if r.Loop {
		return nil
	}
	seq := oriented(r.Stations, r.step(dir))
	for i := len(seq) - 1; i >= 0; i-- {
		if !seq[i].IsPass() {
			s := seq[i]
			return &s
		}
	}
	return nil
}

// Bound returns the stations that name the direction of travel: the terminus
// on a linear line, or the next two major stations ahead on a loop.
func Bound(r Route, ref *models.Station, dir models.Direction) []models.Station {
	if !r.Loop {
		if t := Terminus(r, dir); t != nil {
			return []models.Station{*t}
		}
		return nil
	}
	if len(r.MajorStations) == 0 || !r.Contains(ref) {
		return nil
	}

	major := make(map[int64]bool, len(r.MajorStations))
	for _, id := range r.MajorStations {
		major[id] = true
	}

	var out []models.Station
	cur := ref
	for range r.Stations {
		next := NextStop(r, cur, dir, false)
		if next == nil || next.GroupID == ref.GroupID {
			break
		}
		if major[next.GroupID] {
			out = append(out, *next)
			if len(out) == 2 {
				break
			}
		}
		cur = next
	}
	return out
}
