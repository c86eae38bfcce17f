package display

import (
	"fmt"
)

// BottomState is what the bottom area of the LCD shows
type BottomState int

const (
	BottomLine BottomState = iota
	BottomTransfer
	BottomTypeChange
)

var bottomNames = []string{"LINE", "TRANSFER", "TYPE_CHANGE"}

func (s BottomState) String() string {
	if s < 0 || int(s) >= len(bottomNames) {
		return fmt.Sprintf("BottomState(%d)", int(s))
	}
	return bottomNames[s]
}

// MarshalText encodes the value as its name
func (s BottomState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BottomContext is the journey state a bottom tick looks at
type BottomContext struct {
	HasTransfer       bool
	TypeChangePending bool
}

// Bottom is the bottom state machine. While paused, ticks do nothing; the
// caller keeps its tick source running.
type Bottom struct {
	state  BottomState
	paused bool
}

// NewBottom creates a bottom machine showing the line
func NewBottom() *Bottom {
	return &Bottom{}
}

// State returns the current state
func (b *Bottom) State() BottomState {
	return b.state
}

// Pause freezes the state until Resume
func (b *Bottom) Pause() {
	b.paused = true
}

// Resume unfreezes the state
func (b *Bottom) Resume() {
	b.paused = false
}

// Paused reports whether ticks are ignored
func (b *Bottom) Paused() bool {
	return b.paused
}

// Reset shows the line again and clears the pause
func (b *Bottom) Reset() {
	b.state = BottomLine
	b.paused = false
}

// Tick advances the machine by one timer interval
func (b *Bottom) Tick(c BottomContext) BottomState {
	if b.paused {
		return b.state
	}

	switch b.state {
	case BottomLine:
		switch {
		case c.HasTransfer:
			b.state = BottomTransfer
		case c.TypeChangePending:
			b.state = BottomTypeChange
		}
	case BottomTransfer:
		if c.TypeChangePending {
			b.state = BottomTypeChange
		} else {
			b.state = BottomLine
		}
	default:
		b.state = BottomLine
	}
	return b.state
}
