// Package location provides the location samples that drive a journey:
// recorded tracks replayed from CSV or JSON files, and a simulator that
// moves along a line.
package location

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// Source yields location samples in order. The second result is false once
// the source is exhausted.
type Source interface {
	Next() (models.LocationSample, bool)
}

// Format is a track file encoding
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	return FormatCSV, fmt.Errorf("unsupported track file %q (want .csv or .json)", filepath.Base(path))
}

// TrackPointCSV is one row of a CSV track. Timestamps are epoch
// milliseconds or RFC 3339.
type TrackPointCSV struct {
	Latitude  float64 `csv:"latitude"`
	Longitude float64 `csv:"longitude"`
	Accuracy  float64 `csv:"accuracy"`
	Speed     float64 `csv:"speed"`
	Timestamp string  `csv:"timestamp"`
}

// Track replays recorded samples
type Track struct {
	samples []models.LocationSample
	pos     int
}

// NewTrack creates a track from samples already in memory
func NewTrack(samples []models.LocationSample) *Track {
	return &Track{samples: samples}
}

// OpenTrack reads a track file, choosing the format by extension
func OpenTrack(path string) (*Track, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening track: %w", err)
	}
	defer f.Close()

	t, err := ReadTrack(f, format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// ReadTrack decodes a whole track
func ReadTrack(r io.Reader, format Format) (*Track, error) {
	var (
		samples []models.LocationSample
		err     error
	)
	switch format {
	case FormatJSON:
		samples, err = decodeJSON(r)
	default:
		samples, err = decodeCSV(r)
	}
	if err != nil {
		return nil, err
	}

	for i, s := range samples {
		if s.Lat < -90 || s.Lat > 90 || s.Lon < -180 || s.Lon > 180 {
			return nil, fmt.Errorf("sample %d: coordinates out of range (%f, %f)", i+1, s.Lat, s.Lon)
		}
	}
	return NewTrack(samples), nil
}

func decodeCSV(r io.Reader) ([]models.LocationSample, error) {
	rows := []*TrackPointCSV{}
	// Lazy quotes for hand-edited files; BOMs from spreadsheet exports
	if err := gocsv.UnmarshalCSV(gocsv.LazyCSVReader(bom.NewReader(r)), &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling track csv: %w", err)
	}

	samples := make([]models.LocationSample, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		raw := models.LocationSampleResponse{
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Accuracy:  row.Accuracy,
			Speed:     row.Speed,
		}
		s := raw.ToLocationSample()
		s.Timestamp = ts
		samples = append(samples, s)
	}
	return samples, nil
}

func decodeJSON(r io.Reader) ([]models.LocationSample, error) {
	var raw []models.LocationSampleResponse
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding track json: %w", err)
	}
	samples := make([]models.LocationSample, len(raw))
	for i := range raw {
		samples[i] = raw[i].ToLocationSample()
	}
	return samples, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}

// Next returns the next recorded sample
func (t *Track) Next() (models.LocationSample, bool) {
	if t.pos >= len(t.samples) {
		return models.LocationSample{}, false
	}
	s := t.samples[t.pos]
	t.pos++
	return s, true
}

// Len returns the number of samples in the track
func (t *Track) Len() int {
	return len(t.samples)
}

// Rewind starts the replay over
func (t *Track) Rewind() {
	t.pos = 0
}
