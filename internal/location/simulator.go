package location

import (
	"math/rand"
	"time"

	"github.com/TinyKitten/trainlcd-cli/internal/geo"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/sequencer"
)

// SimulatorConfig tunes the simulated train
type SimulatorConfig struct {
	// Step is the distance travelled per sample in meters
	Step float64

	// Dwell is the number of samples spent at each stopping station
	Dwell int

	// Jitter is the maximum random offset per axis in meters
	Jitter float64
	Seed   int64

	Accuracy float64
	Start    time.Time
	Interval time.Duration
}

// DefaultSimulatorConfig moves at roughly 72 km/h with one second samples
var DefaultSimulatorConfig = SimulatorConfig{
	Step:     20,
	Dwell:    20,
	Accuracy: 10,
	Interval: time.Second,
}

// Simulator moves a train along a route from a start station in one
// direction, stopping at every station the train type stops at
type Simulator struct {
	cfg  SimulatorConfig
	path []models.Station
	rng  *rand.Rand

	seg    int
	offset float64
	dwell  int
	count  int
	done   bool
}

// NewSimulator creates a simulator. A loop route runs one full lap. A zero
// Step, Interval or Accuracy takes the value from DefaultSimulatorConfig.
func NewSimulator(r sequencer.Route, start *models.Station, dir models.Direction, cfg SimulatorConfig) *Simulator {
	if cfg.Step <= 0 {
		cfg.Step = DefaultSimulatorConfig.Step
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSimulatorConfig.Interval
	}
	if cfg.Accuracy <= 0 {
		cfg.Accuracy = DefaultSimulatorConfig.Accuracy
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now().UTC()
	}

	path := sequencer.Window(r, start, dir, len(r.Stations))
	if r.Loop && len(path) > 0 {
		path = append(path, path[0])
	}

	return &Simulator{
		cfg:   cfg,
		path:  path,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		dwell: cfg.Dwell,
		done:  len(path) == 0,
	}
}

// Next returns the next simulated position
func (s *Simulator) Next() (models.LocationSample, bool) {
	if s.done {
		return models.LocationSample{}, false
	}

	var lat, lon float64
	if s.dwell > 0 {
		s.dwell--
		p := s.path[s.seg]
		lat, lon = p.Lat, p.Lon
	} else {
		if s.seg >= len(s.path)-1 {
			s.done = true
			return models.LocationSample{}, false
		}
		a, b := s.path[s.seg], s.path[s.seg+1]
		length := geo.Distance(a.Lat, a.Lon, b.Lat, b.Lon)

		s.offset += s.cfg.Step
		if s.offset >= length {
			s.seg++
			s.offset = 0
			lat, lon = b.Lat, b.Lon
			if !b.IsPass() {
				s.dwell = s.cfg.Dwell
			}
		} else {
			lat, lon = geo.Interpolate(s.offset/length, a.Lat, a.Lon, b.Lat, b.Lon)
		}
	}

	if s.cfg.Jitter > 0 {
		north := (s.rng.Float64()*2 - 1) * s.cfg.Jitter
		east := (s.rng.Float64()*2 - 1) * s.cfg.Jitter
		lat, lon = geo.Offset(lat, lon, north, east)
	}

	sample := models.LocationSample{
		Lat:       lat,
		Lon:       lon,
		Accuracy:  s.cfg.Accuracy,
		Speed:     s.speed(),
		Timestamp: s.cfg.Start.Add(time.Duration(s.count) * s.cfg.Interval),
	}
	s.count++
	return sample, true
}

func (s *Simulator) speed() float64 {
	if s.dwell > 0 {
		return 0
	}
	return s.cfg.Step / s.cfg.Interval.Seconds()
}

// Stations returns the stations the simulator will pass, in order
func (s *Simulator) Stations() []models.Station {
	return s.path
}
