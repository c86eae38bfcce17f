package display

import "github.com/TinyKitten/trainlcd-cli/internal/models"

// phaseLabels holds the announcement prefix per phase and language
var phaseLabels = map[Phase][]string{
	PhaseCurrent:  {"ただいま", "タダイマ", "Now stopping at", "现在停靠", "이번 역은"},
	PhaseNext:     {"次は", "ツギハ", "Next", "下一站", "다음 역은"},
	PhaseArriving: {"まもなく", "マモナク", "Arriving at", "即将到达", "곧 도착"},
}

// PhaseLabel returns the prefix shown before the station name
func PhaseLabel(p Phase, l Lang) string {
	labels, ok := phaseLabels[p]
	if !ok || l < 0 || int(l) >= len(labels) {
		return ""
	}
	return labels[l]
}

// HeaderStation picks the station the header names. ARRIVING names the stop
// being approached; with no next stop it falls back to current.
func HeaderStation(s HeaderState, current, next *models.Station) *models.Station {
	switch s.Phase {
	case PhaseNext, PhaseArriving:
		if next != nil {
			return next
		}
	}
	return current
}

// HeaderText renders the header line, such as "次は 神田". Empty when there
// is no station to name.
func HeaderText(s HeaderState, current, next *models.Station) string {
	st := HeaderStation(s, current, next)
	if st == nil {
		return ""
	}
	name := StationName(st, s.Lang)
	if name == "" {
		name = st.Name
	}
	return PhaseLabel(s.Phase, s.Lang) + " " + name
}

// BottomLabel names what the bottom area is showing
func BottomLabel(b BottomState) string {
	switch b {
	case BottomTransfer:
		return "Transfers"
	case BottomTypeChange:
		return "Type change"
	}
	return "Line"
}
