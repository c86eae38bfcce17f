package models

import (
	"fmt"
	"strings"
)

// StopCondition describes whether the current train stops at a station
type StopCondition int

const (
	StopAll StopCondition = iota
	StopPartial
	StopWeekday
	StopHoliday
	StopPass
)

var stopConditionNames = []string{"ALL", "PARTIAL", "WEEKDAY", "HOLIDAY", "PASS"}

func (c StopCondition) String() string {
	if c < 0 || int(c) >= len(stopConditionNames) {
		return fmt.Sprintf("StopCondition(%d)", int(c))
	}
	return stopConditionNames[c]
}

// MarshalText encodes the condition as its upper-case name
func (c StopCondition) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(stopConditionNames) {
		return nil, fmt.Errorf("invalid stop condition %d", int(c))
	}
	return []byte(stopConditionNames[c]), nil
}

// UnmarshalText accepts the names produced by MarshalText (case-insensitive)
func (c *StopCondition) UnmarshalText(text []byte) error {
	parsed, err := ParseStopCondition(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseStopCondition parses a stop condition name. An empty string means ALL.
func ParseStopCondition(s string) (StopCondition, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return StopAll, nil
	}
	for i, name := range stopConditionNames {
		if s == name {
			return StopCondition(i), nil
		}
	}
	return StopAll, fmt.Errorf("unknown stop condition %q", s)
}

// StationNumber is a numbering code such as "JY 17"
type StationNumber struct {
	Symbol string `json:"symbol"`
	Number string `json:"number"`
	Shape  string `json:"shape,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Code returns the printable numbering code
func (n StationNumber) Code() string {
	if n.Symbol == "" {
		return n.Number
	}
	if n.Number == "" {
		return n.Symbol
	}
	return n.Symbol + "-" + n.Number
}

// LineRef is a connecting line listed on a station
type LineRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	NameRoman string `json:"nameRoman,omitempty"`
	Color     string `json:"color,omitempty"`
	CompanyID int64  `json:"companyId,omitempty"`
}

// Station is a physical stop on a specific line run.
// Records sharing a GroupID are the same place.
type Station struct {
	ID             int64           `json:"id"`
	GroupID        int64           `json:"groupId"`
	LineID         int64           `json:"lineId,omitempty"`
	Name           string          `json:"name"`
	NameKatakana   string          `json:"nameKatakana,omitempty"`
	NameRoman      string          `json:"nameRoman,omitempty"`
	NameChinese    string          `json:"nameChinese,omitempty"`
	NameKorean     string          `json:"nameKorean,omitempty"`
	Lat            float64         `json:"lat"`
	Lon            float64         `json:"lon"`
	StopCondition  StopCondition   `json:"stopCondition"`
	StationNumbers []StationNumber `json:"stationNumbers,omitempty"`
	Lines          []LineRef       `json:"lines,omitempty"`

	// Distance in meters from the latest location sample. Runtime only.
	Distance float64 `json:"-"`
}

// IsPass reports whether the current train passes this station
func (s *Station) IsPass() bool {
	return s.StopCondition == StopPass
}

// SameGroup reports whether both records are the same physical station
func (s *Station) SameGroup(other *Station) bool {
	if s == nil || other == nil {
		return false
	}
	return s.GroupID == other.GroupID
}

// PrimaryNumber returns the first numbering code, or "" if the station has none
func (s *Station) PrimaryNumber() string {
	if len(s.StationNumbers) == 0 {
		return ""
	}
	return s.StationNumbers[0].Code()
}

// StationResponse represents the raw JSON of a station from the station-data API
type StationResponse struct {
	ID            int64   `json:"id"`
	GroupID       int64   `json:"groupId"`
	Name          string  `json:"name"`
	NameKatakana  string  `json:"nameKatakana"`
	NameRoman     string  `json:"nameRoman"`
	NameChinese   string  `json:"nameChinese"`
	NameKorean    string  `json:"nameKorean"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	StopCondition int     `json:"stopCondition"`
	Line          *struct {
		ID int64 `json:"id"`
	} `json:"line"`
	Lines []struct {
		ID        int64  `json:"id"`
		NameShort string `json:"nameShort"`
		NameRoman string `json:"nameRoman"`
		Color     string `json:"color"`
		Company   *struct {
			ID int64 `json:"id"`
		} `json:"company"`
	} `json:"lines"`
	StationNumbers []struct {
		LineSymbol      string `json:"lineSymbol"`
		StationNumber   string `json:"stationNumber"`
		LineSymbolShape string `json:"lineSymbolShape"`
		LineSymbolColor string `json:"lineSymbolColor"`
	} `json:"stationNumbers"`
}

// ToStation converts the raw response to a Station
func (r *StationResponse) ToStation() *Station {
	s := &Station{
		ID:           r.ID,
		GroupID:      r.GroupID,
		Name:         r.Name,
		NameKatakana: r.NameKatakana,
		NameRoman:    r.NameRoman,
		NameChinese:  r.NameChinese,
		NameKorean:   r.NameKorean,
		Lat:          r.Latitude,
		Lon:          r.Longitude,
	}

	// Unknown enum values are treated as all-stops
	if r.StopCondition >= int(StopAll) && r.StopCondition <= int(StopPass) {
		s.StopCondition = StopCondition(r.StopCondition)
	}

	if r.Line != nil {
		s.LineID = r.Line.ID
	}

	// A station without its own group is its own group
	if s.GroupID == 0 {
		s.GroupID = s.ID
	}

	for _, l := range r.Lines {
		ref := LineRef{
			ID:        l.ID,
			Name:      l.NameShort,
			NameRoman: l.NameRoman,
			Color:     l.Color,
		}
		if l.Company != nil {
			ref.CompanyID = l.Company.ID
		}
		s.Lines = append(s.Lines, ref)
	}

	for _, n := range r.StationNumbers {
		if n.LineSymbol == "" && n.StationNumber == "" {
			continue
		}
		s.StationNumbers = append(s.StationNumbers, StationNumber{
			Symbol: n.LineSymbol,
			Number: n.StationNumber,
			Shape:  n.LineSymbolShape,
			Color:  n.LineSymbolColor,
		})
	}

	return s
}
