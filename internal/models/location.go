package models

import (
	"time"
)

// LocationSample is one fix from the location service
type LocationSample struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Accuracy  float64   `json:"accuracy"` // meters, 0 when unknown
	Speed     float64   `json:"speed"`    // meters per second
	Timestamp time.Time `json:"timestamp"`
}

// HasAccuracy reports whether the sample carries an accuracy estimate
func (s LocationSample) HasAccuracy() bool {
	return s.Accuracy > 0
}

// LocationSampleResponse represents a raw sample as exported by common GPS
// loggers, with the timestamp in epoch milliseconds
type LocationSampleResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Speed     float64 `json:"speed"`
	Timestamp int64   `json:"timestamp"`
}

// ToLocationSample converts the raw response to a LocationSample
func (r *LocationSampleResponse) ToLocationSample() LocationSample {
	s := LocationSample{
		Lat:      r.Latitude,
		Lon:      r.Longitude,
		Accuracy: r.Accuracy,
		Speed:    r.Speed,
	}
	if r.Timestamp > 0 {
		s.Timestamp = time.UnixMilli(r.Timestamp).UTC()
	}
	// Some loggers report -1 for "unknown"
	if s.Accuracy < 0 {
		s.Accuracy = 0
	}
	if s.Speed < 0 {
		s.Speed = 0
	}
	return s
}
