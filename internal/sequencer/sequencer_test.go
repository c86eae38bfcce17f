package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// stations builds a straight east-west line. Ids and group ids are 1-based
// positions; names are the given labels.
func stations(names ...string) []models.Station {
	out := make([]models.Station, len(names))
	for i, n := range names {
		out[i] = models.Station{
			ID:      int64(i + 1),
			GroupID: int64(i + 1),
			LineID:  1,
			Name:    n,
			Lat:     35.0,
			Lon:     139.0 + float64(i)*0.01,
		}
	}
	return out
}

func linear(ss []models.Station) Route {
	return Route{Stations: ss, Line: &models.Line{ID: 1}}
}

func loop(ss []models.Station) Route {
	return Route{Stations: ss, Line: &models.Line{ID: 1}, Loop: true}
}

func names(ss []models.Station) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Name
	}
	return out
}

func byName(ss []models.Station, name string) *models.Station {
	for i := range ss {
		if ss[i].Name == name {
			s := ss[i]
			return &s
		}
	}
	return nil
}

func TestScenarioA_NextAndWindow(t *testing.T) {
	ss := stations("A", "B", "C", "D")
	r := linear(ss)
	ref := byName(ss, "B")

	next := NextStop(r, ref, models.Outbound, false)
	require.NotNil(t, next)
	assert.Equal(t, "C", next.Name)

	assert.Equal(t, []string{"B", "C", "D"}, names(Window(r, ref, models.Outbound, 8)))
}

func TestScenarioB_SkipsPassStation(t *testing.T) {
	ss := stations("A", "B", "C", "D")
	ss[1].StopCondition = models.StopPass
	r := linear(ss)

	next := NextStop(r, byName(ss, "A"), models.Outbound, false)
	require.NotNil(t, next)
	assert.Equal(t, "C", next.Name)

	// With ignorePass the pass station is returned
	next = NextStop(r, byName(ss, "A"), models.Outbound, true)
	require.NotNil(t, next)
	assert.Equal(t, "B", next.Name)
}

func TestScenarioC_LoopWrapsInbound(t *testing.T) {
	ss := stations("A", "B", "C")
	r := loop(ss)

	next := NextStop(r, byName(ss, "A"), models.Inbound, false)
	require.NotNil(t, next)
	assert.Equal(t, "C", next.Name)

	next = NextStop(r, byName(ss, "C"), models.Outbound, false)
	require.NotNil(t, next)
	assert.Equal(t, "A", next.Name)
}

func TestNextStop_BoundaryReturnsNil(t *testing.T) {
	ss := stations("A", "B", "C", "D")
	r := linear(ss)

	assert.Nil(t, NextStop(r, byName(ss, "D"), models.Outbound, false))
	assert.Nil(t, NextStop(r, byName(ss, "A"), models.Inbound, false))
	assert.Nil(t, PreviousStop(r, byName(ss, "A"), models.Outbound, false))
}

func TestNextStop_TrailingPassStationsEndTheLine(t *testing.T) {
	ss := stations("A", "B", "C")
	ss[2].StopCondition = models.StopPass
	r := linear(ss)

	assert.Nil(t, NextStop(r, byName(ss, "B"), models.Outbound, false))
}

func TestNextStop_ReferenceNotFound(t *testing.T) {
	ss := stations("A", "B", "C")
	r := linear(ss)
	stranger := &models.Station{ID: 99, GroupID: 99, Name: "X"}

	assert.Nil(t, NextStop(r, stranger, models.Outbound, false))
	assert.Nil(t, PreviousStop(r, stranger, models.Outbound, false))
	assert.Empty(t, Window(r, stranger, models.Outbound, 8))
	assert.Nil(t, NextStop(r, nil, models.Outbound, false))
	assert.Nil(t, NextStop(Route{}, byName(ss, "A"), models.Outbound, false))
}

func TestNextPrevious_RoundTrip(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G")
	ss[2].StopCondition = models.StopPass
	ss[5].StopCondition = models.StopPass
	r := linear(ss)

	for _, dir := range []models.Direction{models.Inbound, models.Outbound} {
		for i := range ss {
			ref := ss[i]
			if ref.IsPass() {
				continue
			}
			next := NextStop(r, &ref, dir, false)
			if next == nil {
				continue // boundary
			}
			back := PreviousStop(r, next, dir, false)
			require.NotNil(t, back, "previous of %s (%v)", next.Name, dir)
			assert.Equal(t, ref.GroupID, back.GroupID, "round trip from %s (%v)", ref.Name, dir)
		}
	}
}

func TestNextStop_LoopReturnsToStart(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	r := loop(ss)

	for _, dir := range []models.Direction{models.Inbound, models.Outbound} {
		for i := range ss {
			start := ss[i]
			cur := &start
			for k := 0; k < len(ss); k++ {
				cur = NextStop(r, cur, dir, false)
				require.NotNil(t, cur)
			}
			assert.Equal(t, start.GroupID, cur.GroupID, "lap from %s (%v)", start.Name, dir)
		}
	}
}

func TestNextStop_LoopOfPassStationsTerminates(t *testing.T) {
	ss := stations("A", "B", "C")
	ss[1].StopCondition = models.StopPass
	ss[2].StopCondition = models.StopPass
	r := loop(ss)

	assert.Nil(t, NextStop(r, byName(ss, "A"), models.Outbound, false))
}

func TestNextStop_ReversedIndexLine(t *testing.T) {
	ss := stations("A", "B", "C")
	r := Route{Stations: ss, Line: &models.Line{ID: 1, ReversedIndex: true}}

	next := NextStop(r, byName(ss, "B"), models.Outbound, false)
	require.NotNil(t, next)
	assert.Equal(t, "A", next.Name)
	assert.Equal(t, []string{"B", "A"}, names(Window(r, byName(ss, "B"), models.Outbound, 8)))
}

func TestNextStop_JunctionDuplicateIsSkipped(t *testing.T) {
	ss := stations("A", "B", "B'", "C")
	ss[2].GroupID = ss[1].GroupID // branch merge: same place, two records
	r := linear(ss)

	next := NextStop(r, byName(ss, "B"), models.Outbound, false)
	require.NotNil(t, next)
	assert.Equal(t, "C", next.Name)
}

func TestWindow_Idempotent(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	for _, r := range []Route{linear(ss), loop(ss)} {
		ref := byName(ss, "H")
		first := Window(r, ref, models.Outbound, 8)
		second := Window(r, ref, models.Outbound, 8)
		assert.Equal(t, first, second)
	}
}

func TestWindow_DoesNotAliasRoute(t *testing.T) {
	ss := stations("A", "B", "C")
	r := linear(ss)

	w := Window(r, byName(ss, "A"), models.Outbound, 8)
	w[0].Name = "changed"
	assert.Equal(t, "A", r.Stations[0].Name)
}

func TestWindow_JunctionDedup(t *testing.T) {
	ss := stations("A", "B", "B'", "C", "D")
	ss[2].GroupID = ss[1].GroupID
	r := linear(ss)

	w := Window(r, byName(ss, "A"), models.Outbound, 8)
	assert.Equal(t, []string{"A", "B", "C", "D"}, names(w))

	seen := map[int64]int{}
	for _, s := range w {
		seen[s.GroupID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "group %d appears %d times", id, n)
	}
}

func TestWindow_LinearShortensNearTerminus(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	r := linear(ss)

	assert.Len(t, Window(r, byName(ss, "A"), models.Outbound, 8), 8)
	assert.Equal(t, []string{"H", "I", "J"}, names(Window(r, byName(ss, "H"), models.Outbound, 8)))
	assert.Equal(t, []string{"C", "B", "A"}, names(Window(r, byName(ss, "C"), models.Inbound, 8)))

	// Default size
	assert.Len(t, Window(r, byName(ss, "A"), models.Outbound, 0), DefaultWindowSize)
}

func TestWindow_LoopWrapsAtEachEnd(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	r := loop(ss)

	assert.Equal(t,
		[]string{"H", "I", "J", "A", "B", "C", "D", "E"},
		names(Window(r, byName(ss, "H"), models.Outbound, 8)))
	assert.Equal(t,
		[]string{"C", "B", "A", "J", "I", "H", "G", "F"},
		names(Window(r, byName(ss, "C"), models.Inbound, 8)))

	// Short loops never repeat a station
	small := stations("A", "B", "C")
	assert.Equal(t, []string{"B", "C", "A"}, names(Window(loop(small), byName(small, "B"), models.Outbound, 8)))
}

func TestWindow_MergedLoopSplicesMajorStations(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	r := loop(ss)
	r.Merged = true
	r.MajorStations = []int64{1, 4} // A and D

	assert.Equal(t,
		[]string{"H", "I", "J", "A", "D"},
		names(Window(r, byName(ss, "H"), models.Outbound, 8)))
}

func TestWindow_MergedLoopWithoutMajorStationsFallsBack(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	r := loop(ss)
	r.Merged = true

	assert.Equal(t, []string{"H", "I", "J"}, names(Window(r, byName(ss, "H"), models.Outbound, 8)))
}

func TestHasTerminus(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	r := linear(ss)
	last := r.Last(models.Outbound)
	require.NotNil(t, last)
	assert.Equal(t, "J", last.Name)

	assert.False(t, HasTerminus(Window(r, byName(ss, "A"), models.Outbound, 8), last))
	assert.True(t, HasTerminus(Window(r, byName(ss, "D"), models.Outbound, 8), last))
	assert.False(t, HasTerminus(nil, last))
	assert.False(t, HasTerminus(Window(r, byName(ss, "D"), models.Outbound, 8), nil))
}

func TestHasTerminus_JunctionDuplicateCountsOnce(t *testing.T) {
	ss := stations("A", "B", "C", "C'")
	ss[3].GroupID = ss[2].GroupID
	r := linear(ss)

	w := Window(r, byName(ss, "A"), models.Outbound, 8)
	assert.Equal(t, []string{"A", "B", "C"}, names(w))
	assert.True(t, HasTerminus(w, r.Last(models.Outbound)))
}

func TestHasTerminus_LoopHasNone(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L")
	r := loop(ss)

	w := Window(r, byName(ss, "I"), models.Outbound, 8)
	assert.Equal(t, []string{"I", "J", "K", "L", "A", "B", "C", "D"}, names(w))
	assert.Nil(t, Terminus(r, models.Outbound))
	assert.False(t, HasTerminus(w, Terminus(r, models.Outbound)))
	assert.False(t, HasTerminus(Window(r, byName(ss, "C"), models.Inbound, 8), Terminus(r, models.Inbound)))
}

func TestTerminus(t *testing.T) {
	ss := stations("A", "B", "C", "D")
	ss[3].StopCondition = models.StopPass
	r := linear(ss)

	term := Terminus(r, models.Outbound)
	require.NotNil(t, term)
	assert.Equal(t, "C", term.Name)

	term = Terminus(r, models.Inbound)
	require.NotNil(t, term)
	assert.Equal(t, "A", term.Name)

	assert.Nil(t, Terminus(loop(ss), models.Outbound))
}

func TestBound(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E", "F")
	assert.Equal(t, []string{"F"}, names(Bound(linear(ss), byName(ss, "B"), models.Outbound)))

	r := loop(ss)
	r.MajorStations = []int64{1, 3, 5} // A, C, E
	assert.Equal(t, []string{"C", "E"}, names(Bound(r, byName(ss, "B"), models.Outbound)))
	assert.Equal(t, []string{"A", "E"}, names(Bound(r, byName(ss, "B"), models.Inbound)))

	// The reference itself never names its own direction
	assert.Equal(t, []string{"E", "A"}, names(Bound(r, byName(ss, "C"), models.Outbound)))

	r.MajorStations = nil
	assert.Empty(t, Bound(r, byName(ss, "B"), models.Outbound))
}

func TestPositionAndIsAtOrPast(t *testing.T) {
	ss := stations("A", "B", "C", "D")
	r := linear(ss)

	assert.Equal(t, 1, Position(r, byName(ss, "B"), models.Outbound))
	assert.Equal(t, 2, Position(r, byName(ss, "B"), models.Inbound))
	assert.Equal(t, -1, Position(r, &models.Station{GroupID: 42}, models.Outbound))

	assert.True(t, IsAtOrPast(r, byName(ss, "C"), byName(ss, "C"), models.Outbound))
	assert.True(t, IsAtOrPast(r, byName(ss, "D"), byName(ss, "C"), models.Outbound))
	assert.False(t, IsAtOrPast(r, byName(ss, "B"), byName(ss, "C"), models.Outbound))
	assert.True(t, IsAtOrPast(r, byName(ss, "B"), byName(ss, "C"), models.Inbound))

	lr := loop(stations("A", "B", "C", "D", "E", "F"))
	// F is one behind A on the loop when travelling outbound
	assert.False(t, IsAtOrPast(lr, byName(lr.Stations, "F"), byName(lr.Stations, "A"), models.Outbound))
	assert.True(t, IsAtOrPast(lr, byName(lr.Stations, "A"), byName(lr.Stations, "F"), models.Outbound))
}

func TestApplyTrainType(t *testing.T) {
	ss := stations("A", "B", "C")
	tt := &models.TrainType{ID: 7, Name: "Rapid", Stops: map[int64]models.StopCondition{2: models.StopPass}}

	out := ApplyTrainType(ss, tt)
	assert.True(t, out[1].IsPass())
	assert.False(t, ss[1].IsPass(), "input must not be mutated")

	assert.Equal(t, ss, ApplyTrainType(ss, nil))
}

func TestNewRoute(t *testing.T) {
	ss := stations("A", "B", "C")
	r := NewRoute(&models.Line{ID: 11302}, ss, nil)
	assert.True(t, r.Loop)
	assert.NotEmpty(t, r.MajorStations)

	r = NewRoute(&models.Line{ID: 1}, ss, &models.TrainType{Stops: map[int64]models.StopCondition{2: models.StopPass}})
	assert.False(t, r.Loop)
	assert.True(t, r.Stations[1].IsPass())
}

func TestNextTypeChange(t *testing.T) {
	ss := stations("A", "B", "C", "D", "E")
	ss[3].LineID = 2
	ss[4].LineID = 2
	r := linear(ss)

	tt := &models.TrainType{
		Name: "Rapid",
		Lines: []models.TrainTypeLine{
			{LineID: 1, TypeName: "Rapid"},
			{LineID: 2, TypeName: "Local"},
		},
	}

	tc := NextTypeChange(r, tt, byName(ss, "B"), models.Outbound, 8)
	require.NotNil(t, tc)
	assert.Equal(t, "D", tc.At.Name)
	assert.Equal(t, "Rapid", tc.From)
	assert.Equal(t, "Local", tc.To)

	// Same name across the boundary
	same := &models.TrainType{Name: "Local"}
	assert.Nil(t, NextTypeChange(r, same, byName(ss, "B"), models.Outbound, 8))

	// Boundary outside the window
	assert.Nil(t, NextTypeChange(r, tt, byName(ss, "A"), models.Outbound, 2))
	assert.Nil(t, NextTypeChange(r, nil, byName(ss, "B"), models.Outbound, 8))
}

func TestTransferLines(t *testing.T) {
	s := &models.Station{Lines: []models.LineRef{{ID: 1, Name: "Main"}, {ID: 2, Name: "Branch"}}}
	got := TransferLines(s, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Branch", got[0].Name)
	assert.Nil(t, TransferLines(nil, 1))
}
