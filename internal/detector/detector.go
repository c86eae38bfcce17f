// Package detector ranks stations by distance from a location sample and
// decides whether the train has arrived at, or is approaching, a station.
package detector

import (
	"sort"

	"github.com/TinyKitten/trainlcd-cli/internal/geo"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/sequencer"
)

// Defaults used when a Config field is zero
const (
	DefaultAccuracyCeiling = 100.0
	DefaultAverageWindow   = 5
)

// Config tunes the detector
type Config struct {
	// AccuracyCeiling is the coarsest accuracy in meters that is still
	// considered good
	AccuracyCeiling float64

	// AverageWindow is the number of recent nearest distances averaged
	AverageWindow int
}

// Observation is the ranking produced for one sample
type Observation struct {
	Sorted          []models.Station
	Nearest         *models.Station
	AverageDistance float64
	BadAccuracy     bool
}

// ClassifyInput is what Classify needs besides the observation
type ClassifyInput struct {
	Nearest         *models.Station
	AverageDistance float64
	Line            *models.Line
	NextStop        *models.Station
	Direction       models.Direction
	Route           sequencer.Route
}

// Classification is the arrival state for one sample
type Classification struct {
	Arrived      bool
	Approaching  bool
	Notification *Notification
}

// Detector keeps the distance history and notification bookkeeping. It is
// not safe for concurrent use; the dispatcher owns it.
type Detector struct {
	cfg Config

	recent []float64

	flagged      map[int64]bool
	lastNotified map[NotificationKind]int64
}

// New creates a Detector, filling zero config fields with defaults
func New(cfg Config) *Detector {
	if cfg.AccuracyCeiling <= 0 {
		cfg.AccuracyCeiling = DefaultAccuracyCeiling
	}
	if cfg.AverageWindow <= 0 {
		cfg.AverageWindow = DefaultAverageWindow
	}
	return &Detector{
		cfg:          cfg,
		flagged:      map[int64]bool{},
		lastNotified: map[NotificationKind]int64{},
	}
}

// Observe attaches the distance from sample to each candidate and returns
// them nearest first. The candidates slice is not modified.
func (d *Detector) Observe(sample models.LocationSample, candidates []models.Station) Observation {
	obs := Observation{
		BadAccuracy: sample.HasAccuracy() && sample.Accuracy > d.cfg.AccuracyCeiling,
	}
	if len(candidates) == 0 {
		return obs
	}

	sorted := make([]models.Station, len(candidates))
	copy(sorted, candidates)
	for i := range sorted {
		sorted[i].Distance = geo.Distance(sample.Lat, sample.Lon, sorted[i].Lat, sorted[i].Lon)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})

	obs.Sorted = sorted
	obs.Nearest = &sorted[0]
	obs.AverageDistance = d.push(sorted[0].Distance)
	return obs
}

// push records a nearest distance and returns the mean of the window
func (d *Detector) push(distance float64) float64 {
	d.recent = append(d.recent, distance)
	if len(d.recent) > d.cfg.AverageWindow {
		d.recent = d.recent[len(d.recent)-d.cfg.AverageWindow:]
	}
	var sum float64
	for _, v := range d.recent {
		sum += v
	}
	return sum / float64(len(d.recent))
}

// Classify decides arrival and approach for the observation. Both flags may
// be set for the same sample; the caller lets arrival supersede approach.
// Only one notification is raised per sample, arrival first.
func (d *Detector) Classify(in ClassifyInput) Classification {
	c := Evaluate(in)
	if c.Arrived {
		c.Notification = d.notify(NotifyArrived, in.Nearest)
	} else if c.Approaching {
		c.Notification = d.notify(NotifyApproaching, in.Nearest)
	}
	return c
}

// Evaluate is the stateless part of Classify
func Evaluate(in ClassifyInput) Classification {
	if in.Nearest == nil {
		return Classification{}
	}

	category := models.CategoryNormal
	if in.Line != nil {
		category = in.Line.Category
	}
	t := geo.ThresholdsFor(category)

	var c Classification
	c.Arrived = in.Nearest.Distance < t.Arrived
	c.Approaching = in.Nearest.Distance < t.Approach &&
		in.AverageDistance < t.Approach &&
		in.NextStop != nil &&
		sequencer.IsAtOrPast(in.Route, in.Nearest, in.NextStop, in.Direction)
	return c
}

// ResetHistory forgets the distance window, typically on a direction change
func (d *Detector) ResetHistory() {
	d.recent = nil
}

// Reset clears all state except the flagged set
func (d *Detector) Reset() {
	d.recent = nil
	d.lastNotified = map[NotificationKind]int64{}
}
