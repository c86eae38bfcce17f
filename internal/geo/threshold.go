package geo

import (
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// Baseline radii in meters for a normal line. Every other category is
// expressed as a multiplier of these.
const (
	BaseApproachRadius = 1000.0
	BaseArrivedRadius  = 200.0
)

// Thresholds is the (approach, arrived) radius pair for a line category
type Thresholds struct {
	Approach float64
	Arrived  float64
}

type multiplier struct {
	approach float64
	arrived  float64
}

var categoryMultipliers = map[models.LineCategory]multiplier{
	models.CategoryNormal:      {1, 1},
	models.CategoryBulletTrain: {10, 2},
	models.CategorySubway:      {2, 2},
	models.CategoryTram:        {0.5, 0.5},
	models.CategoryMonorail:    {1, 1},
	models.CategoryOther:       {1, 1},
}

// ThresholdsFor returns the radii for a category. Unknown categories use the
// normal baseline.
func ThresholdsFor(category models.LineCategory) Thresholds {
	m, ok := categoryMultipliers[category]
	if !ok {
		m = categoryMultipliers[models.CategoryNormal]
	}
	return Thresholds{
		Approach: BaseApproachRadius * m.approach,
		Arrived:  BaseArrivedRadius * m.arrived,
	}
}
