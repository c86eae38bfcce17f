package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TinyKitten/trainlcd-cli/internal/location"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/navigation"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case datasetLoadedMsg:
		return m.handleDatasetLoaded(msg)

	case headerTickMsg:
		return m.handleHeaderTick(msg)

	case bottomTickMsg:
		return m.handleBottomTick(msg)

	case locationTickMsg:
		return m.handleLocationTick(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleDatasetLoaded(msg datasetLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.err = msg.err
	if msg.err != nil {
		return m, nil
	}

	ds := msg.dataset
	m.dataset = ds
	m.engine = navigation.NewEngine(&ds.Line, ds.Stations, ds.TrainType(m.opts.TrainTypeID), m.direction,
		navigation.WithLogger(m.opts.Logger),
		navigation.WithDetector(m.opts.Detector),
		navigation.WithLanguages(m.opts.Languages),
	)
	m.opts.Logger.Printf("loaded %s: %d stations", ds.Line.Name, len(ds.Stations))

	return m.startRun(m.startStation())
}

// startRun begins a new generation. Ticks scheduled by the previous run still
// arrive but no longer match m.gen.
func (m Model) startRun(from *models.Station) (tea.Model, tea.Cmd) {
	m.gen = m.engine.Start()
	m.done = false

	if m.opts.Track != nil {
		m.source = m.opts.Track
	} else {
		m.source = location.NewSimulator(m.engine.Route(), from, m.direction, m.opts.Simulator)
	}
	m.snap = m.engine.Snapshot()

	return m, tea.Batch(
		headerTick(m.gen, m.opts.HeaderInterval),
		bottomTick(m.gen, m.opts.BottomInterval),
		locationTick(m.gen, m.opts.LocationInterval),
	)
}

// startStation is where the simulated train departs from
func (m Model) startStation() *models.Station {
	route := m.engine.Route()
	if m.opts.StartID != 0 {
		for i := range route.Stations {
			if route.Stations[i].ID == m.opts.StartID {
				return &route.Stations[i]
			}
		}
		m.opts.Logger.Printf("start station %d is not on line, using first station", m.opts.StartID)
	}
	return route.Last(m.direction.Opposite())
}

func (m Model) handleHeaderTick(msg headerTickMsg) (tea.Model, tea.Cmd) {
	// Ignore ticks from an earlier run
	if msg.gen != m.gen || m.engine == nil {
		return m, nil
	}
	if snap, ok := m.engine.HandleHeaderTick(msg.gen); ok {
		m.snap = snap
	}
	return m, headerTick(m.gen, m.opts.HeaderInterval)
}

func (m Model) handleBottomTick(msg bottomTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.engine == nil {
		return m, nil
	}
	if snap, ok := m.engine.HandleBottomTick(msg.gen); ok {
		m.snap = snap
	}
	return m, bottomTick(m.gen, m.opts.BottomInterval)
}

func (m Model) handleLocationTick(msg locationTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.engine == nil || m.done {
		return m, nil
	}
	next := locationTick(m.gen, m.opts.LocationInterval)
	if m.paused {
		return m, next
	}

	sample, ok := m.source.Next()
	if !ok {
		m.done = true
		m.opts.Logger.Printf("location source exhausted after %d samples", m.samples)
		return m, nil
	}
	m.last = &sample
	m.samples++

	if snap, ok := m.engine.HandleLocation(sample); ok {
		m.snap = snap
		for _, n := range snap.Notifications {
			m.opts.Logger.Printf("notify %s: %s", n.Kind, n.Station.Name)
		}
	}
	return m, next
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.engine != nil {
			m.engine.Stop()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// The rest needs a running journey
	if m.engine == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Direction):
		m.direction = m.direction.Opposite()
		m.snap = m.engine.SetDirection(m.direction)
		// The engine resets the bottom area, hold included
		m.bottomPaused = false
		from := m.snap.Reference
		if from == nil {
			from = m.startStation()
		}
		return m.startRun(from)

	case key.Matches(msg, m.keys.Reset):
		m.snap = m.engine.Reset()
		m.bottomPaused = false
		m.last = nil
		m.samples = 0
		if t, ok := m.opts.Track.(*location.Track); ok {
			t.Rewind()
		}
		return m.startRun(m.startStation())

	case key.Matches(msg, m.keys.Bottom):
		m.bottomPaused = !m.bottomPaused
		if m.bottomPaused {
			m.engine.PauseBottom()
		} else {
			m.engine.ResumeBottom()
		}
		m.snap = m.engine.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Map):
		m.showMap = !m.showMap
		return m, nil
	}

	return m, nil
}
