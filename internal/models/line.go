package models

import (
	"fmt"
	"strings"
)

// LineCategory drives arrival threshold selection
type LineCategory string

const (
	CategoryNormal      LineCategory = "normal"
	CategoryBulletTrain LineCategory = "bullet_train"
	CategorySubway      LineCategory = "subway"
	CategoryTram        LineCategory = "tram"
	CategoryMonorail    LineCategory = "monorail"
	CategoryOther       LineCategory = "other"
)

// lineTypeCategories maps the numeric line type of the station-data API
var lineTypeCategories = map[int]LineCategory{
	0: CategoryOther,
	1: CategoryBulletTrain,
	2: CategoryNormal,
	3: CategorySubway,
	4: CategoryTram,
	5: CategoryMonorail,
}

// Direction is the travel direction selected by the rider
type Direction int

const (
	Inbound Direction = iota
	Outbound
)

func (d Direction) String() string {
	if d == Outbound {
		return "outbound"
	}
	return "inbound"
}

// Opposite returns the other direction
func (d Direction) Opposite() Direction {
	if d == Outbound {
		return Inbound
	}
	return Outbound
}

// ParseDirection parses "inbound"/"outbound" (or "in"/"out")
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inbound", "in":
		return Inbound, nil
	case "outbound", "out", "":
		return Outbound, nil
	}
	return Outbound, fmt.Errorf("unknown direction %q (want inbound or outbound)", s)
}

// Line is the track the train runs on
type Line struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	NameRoman string       `json:"nameRoman,omitempty"`
	Color     string       `json:"color,omitempty"`
	CompanyID int64        `json:"companyId,omitempty"`
	Category  LineCategory `json:"category"`

	// ReversedIndex flips the default direction mapping for this line's data,
	// making OUTBOUND walk towards decreasing array index.
	ReversedIndex bool `json:"reversedIndex,omitempty"`
}

// Step returns the array index delta for travelling in dir on this line.
// By default OUTBOUND increments and INBOUND decrements.
func (l *Line) Step(dir Direction) int {
	step := -1
	if dir == Outbound {
		step = 1
	}
	if l != nil && l.ReversedIndex {
		step = -step
	}
	return step
}

// IsLoop reports whether the line is one of the known circular lines
func (l *Line) IsLoop() bool {
	if l == nil {
		return false
	}
	_, ok := LoopLine(l.ID)
	return ok
}

// LineResponse represents the raw JSON of a line from the station-data API
type LineResponse struct {
	ID        int64  `json:"id"`
	NameShort string `json:"nameShort"`
	NameRoman string `json:"nameRoman"`
	Color     string `json:"color"`
	LineType  int    `json:"lineType"`
	Company   *struct {
		ID int64 `json:"id"`
	} `json:"company"`
}

// ToLine converts the raw response to a Line
func (r *LineResponse) ToLine() *Line {
	l := &Line{
		ID:        r.ID,
		Name:      r.NameShort,
		NameRoman: r.NameRoman,
		Color:     r.Color,
		Category:  CategoryOther,
	}
	if c, ok := lineTypeCategories[r.LineType]; ok {
		l.Category = c
	}
	if r.Company != nil {
		l.CompanyID = r.Company.ID
	}
	return l
}
