package tui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TinyKitten/trainlcd-cli/internal/api"
	"github.com/TinyKitten/trainlcd-cli/internal/location"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/testutil"
)

func sampleProvider(t *testing.T) *api.FileProvider {
	t.Helper()
	var ds models.Dataset
	if err := json.Unmarshal([]byte(testutil.SampleDataset), &ds); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return api.NewFileProvider(ds)
}

func sampleTrack(t *testing.T) *location.Track {
	t.Helper()
	track, err := location.ReadTrack(strings.NewReader(testutil.SampleTrackCSV), location.FormatCSV)
	if err != nil {
		t.Fatalf("ReadTrack() error = %v", err)
	}
	return track
}

func newTestModel(t *testing.T, track location.Source) Model {
	t.Helper()
	return New(Options{
		Provider:         sampleProvider(t),
		LineID:           testutil.SampleLineID,
		Direction:        models.Outbound,
		Track:            track,
		HeaderInterval:   time.Hour,
		BottomInterval:   time.Hour,
		LocationInterval: time.Hour,
	})
}

// loaded runs the dataset command synchronously and feeds the result back
func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := loadDataset(m.opts.Provider, m.opts.LineID, m.opts.TrainTypeID)()
	updated, cmd := m.Update(msg)
	testutil.AssertTrue(t, cmd != nil)
	return updated.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	m := New(Options{})

	testutil.AssertTrue(t, m.loading)
	testutil.AssertTrue(t, m.showMap)
	testutil.AssertTrue(t, m.engine == nil)
	testutil.AssertEqual(t, m.opts.HeaderInterval, 3*time.Second)
	testutil.AssertEqual(t, m.opts.BottomInterval, 5*time.Second)
	testutil.AssertEqual(t, m.opts.LocationInterval, time.Second)
	testutil.AssertTrue(t, m.opts.Logger != nil)
}

func TestModel_Init(t *testing.T) {
	m := newTestModel(t, nil)

	cmd := m.Init()
	testutil.AssertTrue(t, cmd != nil)
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	testutil.AssertEqual(t, m.width, 120)
	testutil.AssertEqual(t, m.height, 40)
	testutil.AssertEqual(t, m.help.Width, 120)
}

func TestDatasetLoaded_StartsRun(t *testing.T) {
	m := loaded(t, newTestModel(t, nil))

	testutil.AssertFalse(t, m.loading)
	testutil.AssertNil(t, m.err)
	testutil.AssertTrue(t, m.engine != nil)
	testutil.AssertTrue(t, m.engine.Alive())
	testutil.AssertEqual(t, m.gen, m.engine.Generation())
	testutil.AssertEqual(t, m.dataset.Line.Name, "中央線快速")

	// Without a track the train is simulated from the first station
	sim, ok := m.source.(*location.Simulator)
	testutil.AssertTrue(t, ok)
	testutil.AssertStationNames(t, sim.Stations(), "東京", "神田", "御茶ノ水", "四ツ谷", "新宿")
}

func TestDatasetLoaded_StartStation(t *testing.T) {
	m := newTestModel(t, nil)
	m.opts.StartID = 1131104
	m = loaded(t, m)

	sim := m.source.(*location.Simulator)
	testutil.AssertStationNames(t, sim.Stations(), "四ツ谷", "新宿")
}

func TestDatasetLoaded_Error(t *testing.T) {
	m := New(Options{Provider: api.NewFileProvider(), LineID: 1})

	msg := loadDataset(m.opts.Provider, m.opts.LineID, 0)()
	m, cmd := update(m, msg)

	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertFalse(t, m.loading)
	testutil.AssertErrorIs(t, m.err, api.ErrNotFound)
	testutil.AssertTrue(t, m.engine == nil)
}

func TestLocationTick_FeedsEngine(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	m, cmd := update(m, locationTickMsg{gen: m.gen})
	testutil.AssertTrue(t, cmd != nil)
	testutil.AssertEqual(t, m.samples, 1)
	testutil.AssertTrue(t, m.last != nil)

	snap := m.Snapshot()
	testutil.AssertTrue(t, snap.Reference != nil)
	testutil.AssertEqual(t, snap.Reference.Name, "東京")
	testutil.AssertTrue(t, snap.Arrived)
}

func TestLocationTick_StaleGeneration(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	m, cmd := update(m, locationTickMsg{gen: m.gen + 1})
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, m.samples, 0)
}

func TestLocationTick_BeforeLoad(t *testing.T) {
	m := newTestModel(t, sampleTrack(t))

	m, cmd := update(m, locationTickMsg{gen: 0})
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, m.samples, 0)
}

func TestLocationTick_Paused(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	m, _ = update(m, keyMsg(" "))
	testutil.AssertTrue(t, m.paused)

	// Still scheduled, nothing consumed
	m, cmd := update(m, locationTickMsg{gen: m.gen})
	testutil.AssertTrue(t, cmd != nil)
	testutil.AssertEqual(t, m.samples, 0)

	m, _ = update(m, keyMsg(" "))
	testutil.AssertFalse(t, m.paused)
}

func TestLocationTick_EndOfTrack(t *testing.T) {
	track := location.NewTrack([]models.LocationSample{
		{Lat: 35.681391, Lon: 139.766103, Accuracy: 8},
	})
	m := loaded(t, newTestModel(t, track))

	m, cmd := update(m, locationTickMsg{gen: m.gen})
	testutil.AssertTrue(t, cmd != nil)

	m, cmd = update(m, locationTickMsg{gen: m.gen})
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertTrue(t, m.done)
	testutil.AssertEqual(t, m.samples, 1)

	// No more ticks once done
	_, cmd = update(m, locationTickMsg{gen: m.gen})
	testutil.AssertTrue(t, cmd == nil)
}

func TestHeaderTick(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	_, cmd := update(m, headerTickMsg{gen: m.gen})
	testutil.AssertTrue(t, cmd != nil)

	// A tick from an earlier run is not rescheduled
	_, cmd = update(m, headerTickMsg{gen: m.gen - 1})
	testutil.AssertTrue(t, cmd == nil)
}

func TestBottomTick(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	_, cmd := update(m, bottomTickMsg{gen: m.gen})
	testutil.AssertTrue(t, cmd != nil)

	_, cmd = update(m, bottomTickMsg{gen: m.gen + 1})
	testutil.AssertTrue(t, cmd == nil)
}

func TestDirectionKey_StartsNewRun(t *testing.T) {
	m := loaded(t, newTestModel(t, nil))
	m, _ = update(m, locationTickMsg{gen: m.gen})
	before := m.gen

	m, cmd := update(m, keyMsg("d"))
	testutil.AssertTrue(t, cmd != nil)
	testutil.AssertEqual(t, m.direction, models.Inbound)
	testutil.AssertTrue(t, m.gen > before)
	testutil.AssertEqual(t, m.Snapshot().Direction, "inbound")

	// Ticks of the old run are dropped
	_, cmd = update(m, headerTickMsg{gen: before})
	testutil.AssertTrue(t, cmd == nil)

	// The simulator restarts from the reference in the new direction
	sim := m.source.(*location.Simulator)
	testutil.AssertStationNames(t, sim.Stations(), "東京")
}

func TestResetKey(t *testing.T) {
	track := sampleTrack(t)
	m := loaded(t, newTestModel(t, track))
	m, _ = update(m, locationTickMsg{gen: m.gen})
	m, _ = update(m, locationTickMsg{gen: m.gen})
	testutil.AssertEqual(t, m.samples, 2)

	m, cmd := update(m, keyMsg("r"))
	testutil.AssertTrue(t, cmd != nil)
	testutil.AssertEqual(t, m.samples, 0)
	testutil.AssertTrue(t, m.last == nil)
	testutil.AssertTrue(t, m.Snapshot().Waiting())

	// The track plays again from the start
	m, _ = update(m, locationTickMsg{gen: m.gen})
	testutil.AssertEqual(t, m.Snapshot().Reference.Name, "東京")
}

func TestBottomKey(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	m, _ = update(m, keyMsg("b"))
	testutil.AssertTrue(t, m.bottomPaused)

	m, _ = update(m, keyMsg("b"))
	testutil.AssertFalse(t, m.bottomPaused)
}

func TestBottomKey_ReleasedByDirectionAndReset(t *testing.T) {
	for _, k := range []string{"d", "r"} {
		t.Run(k, func(t *testing.T) {
			m := loaded(t, newTestModel(t, sampleTrack(t)))
			m, _ = update(m, keyMsg("b"))
			testutil.AssertTrue(t, m.bottomPaused)

			m, _ = update(m, keyMsg(k))
			testutil.AssertFalse(t, m.bottomPaused)

			// The next press holds again
			m, _ = update(m, keyMsg("b"))
			testutil.AssertTrue(t, m.bottomPaused)
		})
	}
}

func TestMapAndHelpKeys(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	m, _ = update(m, keyMsg("m"))
	testutil.AssertFalse(t, m.showMap)

	m, _ = update(m, keyMsg("?"))
	testutil.AssertTrue(t, m.help.ShowAll)
}

func TestKeys_IgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(m, keyMsg("d"))
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, m.direction, models.Outbound)
}

func TestModel_QuitMsg(t *testing.T) {
	m := loaded(t, newTestModel(t, sampleTrack(t)))

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	testutil.AssertTrue(t, cmd != nil)
	testutil.AssertFalse(t, m.engine.Alive())

	msg := cmd()
	_, ok := msg.(tea.QuitMsg)
	testutil.AssertTrue(t, ok)
}
