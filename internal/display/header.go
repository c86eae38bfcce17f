// Package display holds the header and bottom state machines of the LCD.
// Both machines are driven by explicit Tick calls so callers decide where
// ticks come from.
package display

import (
	"fmt"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// Phase is the stopping phase shown in the header
type Phase int

const (
	PhaseCurrent Phase = iota
	PhaseNext
	PhaseArriving
)

var phaseNames = []string{"CURRENT", "NEXT", "ARRIVING"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the value as its name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// HeaderState is the header's phase and language
type HeaderState struct {
	Phase Phase `json:"phase"`
	Lang  Lang  `json:"lang"`
}

func (s HeaderState) String() string {
	return s.Phase.String() + "/" + s.Lang.String()
}

// HeaderContext is the journey state a header tick looks at
type HeaderContext struct {
	WindowLen int
	AtStation bool

	// Current is shown in the CURRENT phase, Next in NEXT
	Current *models.Station
	Next    *models.Station
}

func (c HeaderContext) desiredPhase() Phase {
	if c.WindowLen > 1 && !c.AtStation {
		return PhaseNext
	}
	return PhaseCurrent
}

func (c HeaderContext) station(p Phase) *models.Station {
	if p == PhaseNext {
		return c.Next
	}
	return c.Current
}

// Header is the header state machine
type Header struct {
	state HeaderState
	langs []Lang
}

// NewHeader creates a header cycling through langs. An empty list means
// DefaultLangs.
func NewHeader(langs []Lang) *Header {
	if len(langs) == 0 {
		langs = DefaultLangs
	}
	return &Header{langs: append([]Lang(nil), langs...)}
}

// State returns the current state
func (h *Header) State() HeaderState {
	return h.state
}

// Approach forces the arriving phase
func (h *Header) Approach() {
	h.state = HeaderState{Phase: PhaseArriving, Lang: LangBase}
}

// Arrive forces the current phase
func (h *Header) Arrive() {
	h.state = HeaderState{Phase: PhaseCurrent, Lang: LangBase}
}

// Reset returns to the initial state
func (h *Header) Reset() {
	h.state = HeaderState{}
}

// Tick advances the machine by one timer interval
func (h *Header) Tick(c HeaderContext) HeaderState {
	if h.state.Phase == PhaseArriving {
		return h.state
	}

	if want := c.desiredPhase(); want != h.state.Phase {
		h.state = HeaderState{Phase: want, Lang: LangBase}
		return h.state
	}

	h.state.Lang = h.nextLang(c.station(h.state.Phase))
	return h.state
}

// nextLang returns the language after the current one that the station has
// a name for, wrapping to the base language
func (h *Header) nextLang(s *models.Station) Lang {
	i := 0
	for k, l := range h.langs {
		if l == h.state.Lang {
			i = k
			break
		}
	}
	for k := 1; k < len(h.langs); k++ {
		l := h.langs[(i+k)%len(h.langs)]
		if l == LangBase {
			return LangBase
		}
		if Available(s, l) {
			return l
		}
	}
	return LangBase
}
