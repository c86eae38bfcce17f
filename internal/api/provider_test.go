package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/testutil"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chuo.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestOpenFileProvider(t *testing.T) {
	p, err := OpenFileProvider(writeDataset(t, testutil.SampleDataset))
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, p.Lines(), 1)

	ctx := context.Background()
	line, err := p.GetLine(ctx, testutil.SampleLineID)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, line.Category, models.CategoryNormal)

	stations, err := p.GetStations(ctx, testutil.SampleLineID)
	testutil.AssertNil(t, err)
	testutil.AssertStationNames(t, stations, "東京", "神田", "御茶ノ水", "四ツ谷", "新宿")

	// Callers get a copy
	stations[0].Name = "changed"
	again, _ := p.GetStations(ctx, testutil.SampleLineID)
	testutil.AssertEqual(t, again[0].Name, "東京")
}

func TestOpenFileProvider_Array(t *testing.T) {
	content := "[" + testutil.SampleDataset + `, {"line": {"id": 2, "name": "Other"}, "stations": []}]`
	p, err := OpenFileProvider(writeDataset(t, content))
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, p.Lines(), 2)

	stations, err := p.GetStations(context.Background(), 2)
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, stations, 0)
}

func TestOpenFileProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"invalid json", `{"line":`, ""},
		{"missing line id", `{"line": {"name": "nameless"}}`, "datasets[0].line.id"},
		{"missing station id", `{"line": {"id": 11311}, "stations": [{"id": 1}, {"name": "東京"}]}`, "datasets[0].stations[1].id"},
		{"missing train type id", `{"line": {"id": 11311}, "trainTypes": [{"name": "快速"}]}`, "datasets[0].trainTypes[0].id"},
		{"duplicate line", `[{"line": {"id": 11311}}, {"line": {"id": 11311}}]`, "datasets[1].line.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenFileProvider(writeDataset(t, tt.content))
			testutil.AssertError(t, err)
			if tt.field == "" {
				return
			}
			testutil.AssertErrorIs(t, err, ErrBadDataset)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("errors.As(%v) = false, want *ValidationError", err)
			}
			testutil.AssertEqual(t, ve.Field, tt.field)
		})
	}

	_, err := OpenFileProvider(filepath.Join(t.TempDir(), "missing.json"))
	testutil.AssertError(t, err)
}

func TestFileProvider_NotFound(t *testing.T) {
	p := NewFileProvider()
	ctx := context.Background()

	_, err := p.GetLine(ctx, 1)
	testutil.AssertErrorIs(t, err, ErrNotFound)
	_, err = p.GetStations(ctx, 1)
	testutil.AssertErrorIs(t, err, ErrNotFound)
	_, err = p.GetTrainTypeStations(ctx, 1)
	testutil.AssertErrorIs(t, err, ErrNotFound)

	types, err := p.GetTrainTypes(ctx, 1)
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, types, 0)
}

func TestFileProvider_TrainTypes(t *testing.T) {
	p, err := OpenFileProvider(writeDataset(t, testutil.SampleDataset))
	testutil.AssertNil(t, err)
	ctx := context.Background()

	types, err := p.GetTrainTypes(ctx, 1131104)
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, types, 2)

	stations, err := p.GetTrainTypeStations(ctx, 501)
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, stations[1].IsPass())
	testutil.AssertTrue(t, stations[2].IsPass())
	testutil.AssertFalse(t, stations[3].IsPass())
}

func TestLoadDataset_FromClient(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		"/lines/11311":                  testutil.SampleLineResponse,
		"/lines/11311/stations":         testutil.SampleStationsResponse,
		"/stations/1131101/train-types": testutil.SampleTrainTypesResponse,
		"/train-types/501/stations":     testutil.SampleTrainTypeStationsResponse,
	})
	defer ms.Close()

	ds, err := LoadDataset(context.Background(), newTestClient(ms.URL), testutil.SampleLineID, 501)
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, ds.Stations, 5)
	testutil.AssertLen(t, ds.TrainTypes, 2)

	tt := ds.TrainType(501)
	testutil.AssertTrue(t, tt != nil)
	testutil.AssertEqual(t, tt.Stops[1131102], models.StopPass)
	testutil.AssertEqual(t, tt.Stops[1131104], models.StopAll)
	testutil.AssertEqual(t, ms.RequestCount(), 4)
}

func TestLoadDataset_WithoutTrainType(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		"/lines/11311":                  testutil.SampleLineResponse,
		"/lines/11311/stations":         testutil.SampleStationsResponse,
		"/stations/1131101/train-types": testutil.SampleTrainTypesResponse,
	})
	defer ms.Close()

	ds, err := LoadDataset(context.Background(), newTestClient(ms.URL), testutil.SampleLineID, 0)
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, ds.Stations, 5)
	testutil.AssertEqual(t, ms.RequestCount(), 3)
}

func TestLoadDataset_UnknownTrainType(t *testing.T) {
	p, err := OpenFileProvider(writeDataset(t, testutil.SampleDataset))
	testutil.AssertNil(t, err)

	_, err = LoadDataset(context.Background(), p, testutil.SampleLineID, 999)
	testutil.AssertErrorIs(t, err, ErrNotFound)
}

func TestLoadDataset_FromFile(t *testing.T) {
	p, err := OpenFileProvider(writeDataset(t, testutil.SampleDataset))
	testutil.AssertNil(t, err)

	ds, err := LoadDataset(context.Background(), p, testutil.SampleLineID, 501)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, ds.TrainType(501).Stops[1131103], models.StopPass)
}

func TestLoadDataset_EmptyLine(t *testing.T) {
	p := NewFileProvider(models.Dataset{Line: models.Line{ID: 7, Name: "Empty"}})

	ds, err := LoadDataset(context.Background(), p, 7, 0)
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, ds.Stations, 0)
	testutil.AssertEqual(t, ds.Line.Name, "Empty")
}
