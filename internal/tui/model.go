package tui

import (
	"io"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TinyKitten/trainlcd-cli/internal/api"
	"github.com/TinyKitten/trainlcd-cli/internal/detector"
	"github.com/TinyKitten/trainlcd-cli/internal/display"
	"github.com/TinyKitten/trainlcd-cli/internal/location"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/navigation"
)

// Options configures the LCD model.
type Options struct {
	Provider    api.Provider
	LineID      int64
	TrainTypeID int64
	Direction   models.Direction

	// StartID is the station the simulated train departs from. Zero starts
	// at the first station in Direction.
	StartID int64

	// Track replays recorded samples instead of simulating a train
	Track location.Source

	HeaderInterval   time.Duration
	BottomInterval   time.Duration
	LocationInterval time.Duration

	Detector  detector.Config
	Languages []display.Lang
	Simulator location.SimulatorConfig

	Logger *log.Logger
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	opts   Options
	width  int
	height int

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Station data
	loading bool
	err     error
	dataset *models.Dataset

	// Journey
	engine    *navigation.Engine
	source    location.Source
	direction models.Direction
	gen       uint64
	snap      navigation.Snapshot
	last      *models.LocationSample
	samples   int
	done      bool

	paused       bool
	bottomPaused bool
	showMap      bool
}

// New creates a new TUI model.
func New(opts Options) Model {
	if opts.HeaderInterval <= 0 {
		opts.HeaderInterval = 3 * time.Second
	}
	if opts.BottomInterval <= 0 {
		opts.BottomInterval = 5 * time.Second
	}
	if opts.LocationInterval <= 0 {
		opts.LocationInterval = time.Second
	}
	if opts.Simulator == (location.SimulatorConfig{}) {
		opts.Simulator = location.DefaultSimulatorConfig
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleLoading

	return Model{
		opts:      opts,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		loading:   true,
		direction: opts.Direction,
		showMap:   true,
	}
}

// Init starts loading the line and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadDataset(m.opts.Provider, m.opts.LineID, m.opts.TrainTypeID))
}

// Snapshot returns the latest engine output.
func (m Model) Snapshot() navigation.Snapshot {
	return m.snap
}

type keyMap struct {
	Quit      key.Binding
	Pause     key.Binding
	Direction key.Binding
	Reset     key.Binding
	Bottom    key.Binding
	Map       key.Binding
	Help      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "direction"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "hold bottom"),
		),
		Map: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "map"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Direction, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Direction, k.Reset},
		{k.Bottom, k.Map},
		{k.Help, k.Quit},
	}
}
