package navigation

import (
	"io"
	"log"

	"github.com/TinyKitten/trainlcd-cli/internal/detector"
	"github.com/TinyKitten/trainlcd-cli/internal/display"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/sequencer"
)

// Snapshot is everything a renderer needs after one event
type Snapshot struct {
	Generation      uint64                  `json:"generation"`
	Direction       string                  `json:"direction"`
	Sorted          []models.Station        `json:"-"`
	Nearest         *models.Station         `json:"nearest,omitempty"`
	NearestDistance float64                 `json:"nearestDistance"`
	Arrived         bool                    `json:"arrived"`
	Approaching     bool                    `json:"approaching"`
	AverageDistance float64                 `json:"averageDistance"`
	BadAccuracy     bool                    `json:"badAccuracy"`
	Reference       *models.Station         `json:"reference,omitempty"`
	Next            *models.Station         `json:"next,omitempty"`
	Window          []models.Station        `json:"window"`
	HasTerminus     bool                    `json:"hasTerminus"`
	Bound           []models.Station        `json:"bound,omitempty"`
	Header          display.HeaderState     `json:"header"`
	Bottom          display.BottomState     `json:"bottom"`
	TypeChange      *sequencer.TypeChange   `json:"typeChange,omitempty"`
	Transfers       []models.LineRef        `json:"transfers,omitempty"`
	Notifications   []detector.Notification `json:"notifications,omitempty"`
}

// Waiting reports whether there is nothing to show yet
func (s Snapshot) Waiting() bool {
	return s.Reference == nil || len(s.Window) == 0
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger for warnings. Nil discards them.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		e.logger = logger
	}
}

// WithDetector sets the detector configuration
func WithDetector(cfg detector.Config) Option {
	return func(e *Engine) {
		e.detector = detector.New(cfg)
	}
}

// WithLanguages sets the header language cycle
func WithLanguages(langs []display.Lang) Option {
	return func(e *Engine) {
		e.header = display.NewHeader(langs)
	}
}

// WithWindowSize sets the number of upcoming stations
func WithWindowSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.windowSize = n
		}
	}
}

// WithReference starts the journey at a known station instead of waiting
// for the first location sample
func WithReference(st *models.Station) Option {
	return func(e *Engine) {
		e.initialRef = st
	}
}

// Engine processes one journey. It is not safe for concurrent use.
type Engine struct {
	route     sequencer.Route
	trainType *models.TrainType

	state    *State
	detector *detector.Detector
	header   *display.Header
	bottom   *display.Bottom

	windowSize int
	initialRef *models.Station
	logger     *log.Logger

	generation uint64
	alive      bool

	last detector.Observation
}

// NewEngine creates an engine for a line run. The train type may be nil for
// all-stops service.
func NewEngine(line *models.Line, stations []models.Station, tt *models.TrainType, dir models.Direction, opts ...Option) *Engine {
	e := &Engine{
		route:      sequencer.NewRoute(line, stations, tt),
		trainType:  tt,
		state:      NewState(dir),
		detector:   detector.New(detector.Config{}),
		header:     display.NewHeader(nil),
		bottom:     display.NewBottom(),
		windowSize: sequencer.DefaultWindowSize,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.initialRef != nil {
		e.setReference(e.initialRef)
	}
	return e
}

// Route returns the route the engine runs on
func (e *Engine) Route() sequencer.Route {
	return e.route
}

// State returns a copy of the journey state
func (e *Engine) State() State {
	return *e.state
}

// Start makes the engine live and returns the generation every tick of this
// run must carry
func (e *Engine) Start() uint64 {
	e.generation++
	e.alive = true
	return e.generation
}

// Stop tears the journey down. Ticks and samples that arrive afterwards are
// ignored.
func (e *Engine) Stop() {
	e.generation++
	e.alive = false
}

// Generation returns the current run's generation
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Alive reports whether the engine accepts events
func (e *Engine) Alive() bool {
	return e.alive
}

func (e *Engine) live(gen uint64) bool {
	return e.alive && gen == e.generation
}

// HandleLocation runs one sample through detection, sequencing and the
// header triggers. The second result is false when the engine is stopped.
func (e *Engine) HandleLocation(sample models.LocationSample) (Snapshot, bool) {
	if !e.alive {
		return Snapshot{}, false
	}

	obs := e.detector.Observe(sample, e.route.Stations)
	e.last = obs
	e.state.BadAccuracy = obs.BadAccuracy

	dir := e.state.Direction
	cls := e.detector.Classify(detector.ClassifyInput{
		Nearest:         obs.Nearest,
		AverageDistance: obs.AverageDistance,
		Line:            e.route.Line,
		NextStop:        sequencer.NextStop(e.route, e.state.Reference, dir, false),
		Direction:       dir,
		Route:           e.route,
	})

	refChanged := e.updateReference(obs.Nearest, cls.Arrived)

	// Passing through a station is not an arrival, and neither is an
	// arrival the reference did not follow
	stopping := obs.Nearest != nil && !obs.Nearest.IsPass()
	arrived := cls.Arrived && stopping && obs.Nearest.SameGroup(e.state.Reference)
	approaching := cls.Approaching && stopping && !arrived

	prevArrived, prevApproaching := e.state.Arrived, e.state.Approaching
	e.state.SetArrival(arrived, approaching)

	if refChanged || arrived != prevArrived || e.state.Window == nil {
		e.recompute()
	}

	if approaching && !prevApproaching {
		e.header.Approach()
	}
	if arrived && !prevArrived {
		e.header.Arrive()
	}
	e.state.Header = e.header.State()

	e.checkInvariants()

	snap := e.snapshot()
	if cls.Notification != nil {
		snap.Notifications = []detector.Notification{*cls.Notification}
	}
	return snap, true
}

// updateReference moves the reference forward after an arrival, or sets it
// from the first sample
func (e *Engine) updateReference(nearest *models.Station, arrived bool) bool {
	if nearest == nil {
		return false
	}
	dir := e.state.Direction
	ref := e.state.Reference

	candidate := nearest
	if nearest.IsPass() {
		// A pass station never becomes the reference; the last stop before it
		// does
		candidate = sequencer.PreviousStop(e.route, nearest, dir, false)
		if candidate == nil {
			return false
		}
	}

	switch {
	case ref == nil:
	case !arrived:
		return false
	case candidate.SameGroup(ref):
		return false
	case !sequencer.IsAtOrPast(e.route, candidate, ref, dir):
		e.logger.Printf("ignoring arrival at %s behind reference %s", candidate.Name, ref.Name)
		return false
	}

	e.setReference(candidate)
	return true
}

func (e *Engine) setReference(st *models.Station) {
	e.state.SetReference(st)
	e.recompute()
}

// recompute derives the window and terminus from the reference
func (e *Engine) recompute() {
	ref := e.state.Reference
	if ref == nil {
		e.state.SetWindow(nil, false)
		return
	}
	dir := e.state.Direction
	window := sequencer.Window(e.route, ref, dir, e.windowSize)
	e.state.SetWindow(window, sequencer.HasTerminus(window, sequencer.Terminus(e.route, dir)))
}

func (e *Engine) checkInvariants() {
	s := e.state
	assertInvariant(e.logger, !(s.Arrived && s.Approaching), "arrived and approaching both set")
	assertInvariant(e.logger, len(s.Window) <= e.windowSize, "window has %d stations, limit %d", len(s.Window), e.windowSize)
	if s.Reference != nil && len(s.Window) > 0 {
		assertInvariant(e.logger, s.Window[0].SameGroup(s.Reference), "window starts at %s, reference is %s", s.Window[0].Name, s.Reference.Name)
	}
}

// HandleHeaderTick advances the header. Stale or post-teardown ticks return
// false and change nothing.
func (e *Engine) HandleHeaderTick(gen uint64) (Snapshot, bool) {
	if !e.live(gen) {
		return Snapshot{}, false
	}
	e.state.Header = e.header.Tick(display.HeaderContext{
		WindowLen: len(e.state.Window),
		AtStation: e.state.AtReference(),
		Current:   e.state.Reference,
		Next:      e.nextStop(),
	})
	return e.snapshot(), true
}

// HandleBottomTick advances the bottom area, following the same rules as
// HandleHeaderTick
func (e *Engine) HandleBottomTick(gen uint64) (Snapshot, bool) {
	if !e.live(gen) {
		return Snapshot{}, false
	}
	e.state.Bottom = e.bottom.Tick(display.BottomContext{
		HasTransfer:       len(e.transfers()) > 0,
		TypeChangePending: e.typeChange() != nil,
	})
	return e.snapshot(), true
}

// PauseBottom freezes the bottom area; ticks keep arriving and are ignored
func (e *Engine) PauseBottom() {
	e.bottom.Pause()
}

// ResumeBottom unfreezes the bottom area
func (e *Engine) ResumeBottom() {
	e.bottom.Resume()
}

// SetDirection switches direction, keeping the reference station
func (e *Engine) SetDirection(dir models.Direction) Snapshot {
	if dir != e.state.Direction {
		e.state.SetDirection(dir)
		e.detector.ResetHistory()
		e.header.Reset()
		e.bottom.Reset()
		e.recompute()
	}
	return e.snapshot()
}

// SetReference overrides the reference station, as when the rider picks
// the station they boarded at
func (e *Engine) SetReference(st *models.Station) Snapshot {
	if st != nil && !e.route.Contains(st) {
		e.logger.Printf("station %d is not on line, ignoring", st.ID)
		return e.snapshot()
	}
	e.state.SetArrival(false, false)
	e.header.Reset()
	e.setReference(st)
	return e.snapshot()
}

// SetFlagged sets the stations to notify about
func (e *Engine) SetFlagged(ids []int64) {
	e.detector.SetFlagged(ids)
}

// Reset forgets all journey progress but keeps the direction and the run
func (e *Engine) Reset() Snapshot {
	e.state.Reset()
	e.detector.Reset()
	e.header.Reset()
	e.bottom.Reset()
	e.last = detector.Observation{}
	if e.initialRef != nil {
		e.setReference(e.initialRef)
	}
	return e.snapshot()
}

// Snapshot returns the current outputs without processing an event
func (e *Engine) Snapshot() Snapshot {
	return e.snapshot()
}

func (e *Engine) nextStop() *models.Station {
	return sequencer.NextStop(e.route, e.state.Reference, e.state.Direction, false)
}

// displayed is the station the bottom area talks about
func (e *Engine) displayed() *models.Station {
	if e.state.AtReference() {
		return e.state.Reference
	}
	if next := e.nextStop(); next != nil {
		return next
	}
	return e.state.Reference
}

func (e *Engine) transfers() []models.LineRef {
	var lineID int64
	if e.route.Line != nil {
		lineID = e.route.Line.ID
	}
	return sequencer.TransferLines(e.displayed(), lineID)
}

func (e *Engine) typeChange() *sequencer.TypeChange {
	return sequencer.NextTypeChange(e.route, e.trainType, e.state.Reference, e.state.Direction, e.windowSize)
}

func (e *Engine) snapshot() Snapshot {
	s := e.state
	snap := Snapshot{
		Generation:      e.generation,
		Direction:       s.Direction.String(),
		Sorted:          e.last.Sorted,
		Nearest:         e.last.Nearest,
		AverageDistance: e.last.AverageDistance,
		Arrived:         s.Arrived,
		Approaching:     s.Approaching,
		BadAccuracy:     s.BadAccuracy,
		Reference:       s.Reference,
		Next:            e.nextStop(),
		Window:          s.Window,
		HasTerminus:     s.HasTerminus,
		Bound:           sequencer.Bound(e.route, s.Reference, s.Direction),
		Header:          s.Header,
		Bottom:          s.Bottom,
		TypeChange:      e.typeChange(),
		Transfers:       e.transfers(),
	}
	if e.last.Nearest != nil {
		snap.NearestDistance = e.last.Nearest.Distance
	}
	return snap
}
