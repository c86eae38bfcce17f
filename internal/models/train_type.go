package models

// TrainTypeLine is the type name a train uses on one through-run line
type TrainTypeLine struct {
	LineID    int64  `json:"lineId"`
	CompanyID int64  `json:"companyId,omitempty"`
	TypeName  string `json:"typeName"`
	TypeRoman string `json:"typeRoman,omitempty"`
}

// TrainType is a stopping pattern overlay such as "Local" or "Rapid"
type TrainType struct {
	ID        int64  `json:"id"`
	TypeID    int64  `json:"typeId"`
	Name      string `json:"name"`
	NameRoman string `json:"nameRoman,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Color     string `json:"color,omitempty"`

	// Stops overrides the stop condition per station id. Stations not
	// listed keep the condition they were loaded with.
	Stops map[int64]StopCondition `json:"stops,omitempty"`

	Lines []TrainTypeLine `json:"lines,omitempty"`
}

// IsLocal reports whether the type stops everywhere
func (t *TrainType) IsLocal() bool {
	if t == nil {
		return true
	}
	for _, c := range t.Stops {
		if c == StopPass {
			return false
		}
	}
	return t.Kind == "" || t.Kind == "local"
}

// TypeNameOn returns the type name used on the given line, falling back to Name
func (t *TrainType) TypeNameOn(lineID int64) string {
	if t == nil {
		return ""
	}
	for _, l := range t.Lines {
		if l.LineID == lineID && l.TypeName != "" {
			return l.TypeName
		}
	}
	return t.Name
}

// Dataset is a complete station-data snapshot for one line, as stored in
// offline data files
type Dataset struct {
	Line       Line        `json:"line"`
	Stations   []Station   `json:"stations"`
	TrainTypes []TrainType `json:"trainTypes,omitempty"`
}

// TrainType returns the train type with the given id, or nil
func (d *Dataset) TrainType(id int64) *TrainType {
	for i := range d.TrainTypes {
		if d.TrainTypes[i].ID == id {
			return &d.TrainTypes[i]
		}
	}
	return nil
}

// TrainTypeResponse represents the raw JSON of a train type from the
// station-data API
type TrainTypeResponse struct {
	ID        int64  `json:"id"`
	TypeID    int64  `json:"typeId"`
	Name      string `json:"name"`
	NameRoman string `json:"nameRoman"`
	Color     string `json:"color"`
	Kind      int    `json:"kind"`
	Lines     []struct {
		ID        int64  `json:"id"`
		NameShort string `json:"nameShort"`
		Company   *struct {
			ID int64 `json:"id"`
		} `json:"company"`
		TrainType *struct {
			Name      string `json:"name"`
			NameRoman string `json:"nameRoman"`
		} `json:"trainType"`
	} `json:"lines"`
}

// trainTypeKinds maps the numeric kind of the station-data API
var trainTypeKinds = map[int]string{
	0: "local",
	1: "branch",
	2: "rapid",
	3: "express",
	4: "limited_express",
	5: "high_speed_rapid",
}

// ToTrainType converts the raw response. Stops is left empty; it is filled
// from the train type's station list.
func (r *TrainTypeResponse) ToTrainType() *TrainType {
	t := &TrainType{
		ID:        r.ID,
		TypeID:    r.TypeID,
		Name:      r.Name,
		NameRoman: r.NameRoman,
		Color:     r.Color,
		Kind:      trainTypeKinds[r.Kind],
	}
	for _, l := range r.Lines {
		tl := TrainTypeLine{LineID: l.ID, TypeName: r.Name, TypeRoman: r.NameRoman}
		if l.Company != nil {
			tl.CompanyID = l.Company.ID
		}
		if l.TrainType != nil && l.TrainType.Name != "" {
			tl.TypeName = l.TrainType.Name
			tl.TypeRoman = l.TrainType.NameRoman
		}
		t.Lines = append(t.Lines, tl)
	}
	return t
}

// SetStops records the stop condition of every station the type serves
func (t *TrainType) SetStops(stations []Station) {
	t.Stops = make(map[int64]StopCondition, len(stations))
	for _, s := range stations {
		t.Stops[s.ID] = s.StopCondition
	}
}
