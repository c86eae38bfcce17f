// Package navigation ties the detector, the sequencer and the display
// machines into one journey. All mutation happens in a single consumer:
// either Dispatcher.Run or the caller's own event loop.
package navigation

import (
	"github.com/TinyKitten/trainlcd-cli/internal/display"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// State is the journey state shared by every component. The zero value is a
// fresh outbound journey with nothing known yet.
type State struct {
	Direction   models.Direction
	Reference   *models.Station
	Window      []models.Station
	Header      display.HeaderState
	Bottom      display.BottomState
	Arrived     bool
	Approaching bool
	HasTerminus bool
	BadAccuracy bool
}

// NewState creates a state for a journey in dir
func NewState(dir models.Direction) *State {
	return &State{Direction: dir}
}

// SetDirection changes the direction and forgets everything derived from
// the old one
func (s *State) SetDirection(dir models.Direction) {
	if s.Direction == dir {
		return
	}
	ref := s.Reference
	s.Reset()
	s.Direction = dir
	s.Reference = ref
}

// SetReference replaces the reference station
func (s *State) SetReference(st *models.Station) {
	if st == nil {
		s.Reference = nil
		return
	}
	cp := *st
	s.Reference = &cp
}

// SetWindow replaces the upcoming window
func (s *State) SetWindow(window []models.Station, hasTerminus bool) {
	s.Window = window
	s.HasTerminus = hasTerminus
}

// SetArrival records the detector's flags
func (s *State) SetArrival(arrived, approaching bool) {
	s.Arrived = arrived
	s.Approaching = approaching
}

// Reset clears everything except the direction
func (s *State) Reset() {
	*s = State{Direction: s.Direction}
}

// AtReference reports whether the train is stopped at the reference station
func (s *State) AtReference() bool {
	return s.Arrived && s.Reference != nil
}
