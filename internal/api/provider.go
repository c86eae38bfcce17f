package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/sequencer"
)

// Provider supplies line, station and train type snapshots
type Provider interface {
	GetLine(ctx context.Context, id int64) (*models.Line, error)
	GetStations(ctx context.Context, lineID int64) ([]models.Station, error)
	GetTrainTypes(ctx context.Context, stationID int64) ([]models.TrainType, error)
	GetTrainTypeStations(ctx context.Context, trainTypeID int64) ([]models.Station, error)
}

var (
	_ Provider = (*Client)(nil)
	_ Provider = (*FileProvider)(nil)
)

// FileProvider serves datasets loaded from a JSON file. The file holds one
// dataset object or an array of them.
type FileProvider struct {
	datasets []models.Dataset
}

// NewFileProvider serves datasets already in memory
func NewFileProvider(datasets ...models.Dataset) *FileProvider {
	return &FileProvider{datasets: datasets}
}

// OpenFileProvider reads a dataset file
func OpenFileProvider(path string) (*FileProvider, error) {
	// #nosec G304 -- the path is given by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var datasets []models.Dataset
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &datasets)
	} else {
		var ds models.Dataset
		err = json.Unmarshal(trimmed, &ds)
		datasets = []models.Dataset{ds}
	}
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	seen := make(map[int64]bool, len(datasets))
	for i := range datasets {
		if err := validateDataset(i, &datasets[i]); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrBadDataset, err)
		}
		id := datasets[i].Line.ID
		if seen[id] {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrBadDataset, &ValidationError{
				Field:  fmt.Sprintf("datasets[%d].line.id", i),
				Value:  strconv.FormatInt(id, 10),
				Reason: "line appears twice",
			})
		}
		seen[id] = true
	}
	return NewFileProvider(datasets...), nil
}

// validateDataset checks the ids every lookup depends on
func validateDataset(i int, ds *models.Dataset) error {
	prefix := fmt.Sprintf("datasets[%d]", i)
	if ds.Line.ID <= 0 {
		return missingField(prefix + ".line.id")
	}
	for j := range ds.Stations {
		if ds.Stations[j].ID <= 0 {
			return missingField(fmt.Sprintf("%s.stations[%d].id", prefix, j))
		}
	}
	for j := range ds.TrainTypes {
		if ds.TrainTypes[j].ID <= 0 {
			return missingField(fmt.Sprintf("%s.trainTypes[%d].id", prefix, j))
		}
	}
	return nil
}

// Lines returns the lines in the file
func (p *FileProvider) Lines() []models.Line {
	lines := make([]models.Line, len(p.datasets))
	for i := range p.datasets {
		lines[i] = p.datasets[i].Line
	}
	return lines
}

func (p *FileProvider) dataset(lineID int64) (*models.Dataset, error) {
	for i := range p.datasets {
		if p.datasets[i].Line.ID == lineID {
			return &p.datasets[i], nil
		}
	}
	return nil, fmt.Errorf("line %d: %w", lineID, ErrNotFound)
}

// GetLine returns one line
func (p *FileProvider) GetLine(_ context.Context, id int64) (*models.Line, error) {
	ds, err := p.dataset(id)
	if err != nil {
		return nil, err
	}
	line := ds.Line
	return &line, nil
}

// GetStations returns a copy of a line's stations
func (p *FileProvider) GetStations(_ context.Context, lineID int64) ([]models.Station, error) {
	ds, err := p.dataset(lineID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Station, len(ds.Stations))
	copy(out, ds.Stations)
	return out, nil
}

// GetTrainTypes returns the train types of every dataset the station is on
func (p *FileProvider) GetTrainTypes(_ context.Context, stationID int64) ([]models.TrainType, error) {
	var out []models.TrainType
	for i := range p.datasets {
		ds := &p.datasets[i]
		for _, s := range ds.Stations {
			if s.ID == stationID {
				out = append(out, ds.TrainTypes...)
				break
			}
		}
	}
	return out, nil
}

// GetTrainTypeStations returns the stations of the train type's line with
// its stop conditions applied
func (p *FileProvider) GetTrainTypeStations(_ context.Context, trainTypeID int64) ([]models.Station, error) {
	for i := range p.datasets {
		ds := &p.datasets[i]
		if tt := ds.TrainType(trainTypeID); tt != nil {
			return sequencer.ApplyTrainType(ds.Stations, tt), nil
		}
	}
	return nil, fmt.Errorf("train type %d: %w", trainTypeID, ErrNotFound)
}

// LoadDataset fetches everything a journey on one line needs. A zero
// trainTypeID loads the line with its default stop conditions.
func LoadDataset(ctx context.Context, p Provider, lineID, trainTypeID int64) (*models.Dataset, error) {
	line, err := p.GetLine(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("loading line: %w", err)
	}
	stations, err := p.GetStations(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("loading stations: %w", err)
	}

	ds := &models.Dataset{Line: *line, Stations: stations}
	if len(stations) == 0 {
		return ds, nil
	}

	types, err := p.GetTrainTypes(ctx, stations[0].ID)
	if err != nil {
		return nil, fmt.Errorf("loading train types: %w", err)
	}
	ds.TrainTypes = types

	if trainTypeID == 0 {
		return ds, nil
	}

	tt := ds.TrainType(trainTypeID)
	if tt == nil {
		return nil, fmt.Errorf("train type %d on line %d: %w", trainTypeID, lineID, ErrNotFound)
	}
	if len(tt.Stops) == 0 {
		served, err := p.GetTrainTypeStations(ctx, trainTypeID)
		if err != nil {
			return nil, fmt.Errorf("loading train type stations: %w", err)
		}
		tt.SetStops(served)
	}
	return ds, nil
}
