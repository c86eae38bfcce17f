package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

type point struct{ lat, lon float64 }

var places = map[string]point{
	"tokyo":      {35.681236, 139.767125},
	"yurakucho":  {35.675069, 139.763328},
	"shinagawa":  {35.630152, 139.74044},
	"shin-osaka": {34.733486, 135.500109},
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, Distance(35.0, 139.0, 35.0, 139.0), 1e-9)

	// Tokyo-Yurakucho is a short hop of roughly 770 m
	assert.InDelta(t, 770, Distance(places["tokyo"].lat, places["tokyo"].lon, places["yurakucho"].lat, places["yurakucho"].lon), 30)

	// Tokyo-Shin-Osaka great circle is about 402 km
	d := Distance(places["tokyo"].lat, places["tokyo"].lon, places["shin-osaka"].lat, places["shin-osaka"].lon)
	assert.InDelta(t, 401700, d, 1000)

	// Symmetric
	assert.InDelta(t,
		Distance(places["tokyo"].lat, places["tokyo"].lon, places["shinagawa"].lat, places["shinagawa"].lon),
		Distance(places["shinagawa"].lat, places["shinagawa"].lon, places["tokyo"].lat, places["tokyo"].lon),
		1e-6)
}

func TestInterpolate(t *testing.T) {
	a, b := places["tokyo"], places["shinagawa"]

	lat, lon := Interpolate(0, a.lat, a.lon, b.lat, b.lon)
	assert.Equal(t, a.lat, lat)
	assert.Equal(t, a.lon, lon)

	lat, lon = Interpolate(1, a.lat, a.lon, b.lat, b.lon)
	assert.Equal(t, b.lat, lat)
	assert.Equal(t, b.lon, lon)

	lat, lon = Interpolate(0.5, a.lat, a.lon, b.lat, b.lon)
	total := Distance(a.lat, a.lon, b.lat, b.lon)
	assert.InDelta(t, total/2, Distance(a.lat, a.lon, lat, lon), 1)
	assert.InDelta(t, total/2, Distance(lat, lon, b.lat, b.lon), 1)
}

func TestOffset(t *testing.T) {
	a := places["tokyo"]

	lat, lon := Offset(a.lat, a.lon, 100, 0)
	assert.InDelta(t, 100, Distance(a.lat, a.lon, lat, lon), 0.5)
	assert.Greater(t, lat, a.lat)

	lat, lon = Offset(a.lat, a.lon, 0, -50)
	assert.InDelta(t, 50, Distance(a.lat, a.lon, lat, lon), 0.5)
	assert.Less(t, lon, a.lon)
}

func TestThresholdsFor(t *testing.T) {
	tests := []struct {
		category     models.LineCategory
		wantApproach float64
		wantArrived  float64
	}{
		{models.CategoryNormal, 1000, 200},
		{models.CategoryBulletTrain, 10000, 400},
		{models.CategorySubway, 2000, 400},
		{models.CategoryTram, 500, 100},
		{models.CategoryMonorail, 1000, 200},
		{models.CategoryOther, 1000, 200},
		{models.LineCategory("hovercraft"), 1000, 200},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := ThresholdsFor(tt.category)
			assert.Equal(t, tt.wantApproach, got.Approach)
			assert.Equal(t, tt.wantArrived, got.Arrived)
			assert.Greater(t, got.Approach, got.Arrived)
		})
	}
}
