package api

import (
	"fmt"
	"strconv"
)

const (
	// BaseURL is the base URL of the station-data API
	BaseURL = "https://api.trainlcd.app/v1"

	// EndpointLine returns one line
	// Path params: line id
	EndpointLine = "/lines/%d"

	// EndpointLineStations returns the stations of a line in line order
	// Path params: line id
	EndpointLineStations = "/lines/%d/stations"

	// EndpointStationTrainTypes returns the train types that serve a station
	// Path params: station id
	EndpointStationTrainTypes = "/stations/%d/train-types"

	// EndpointTrainTypeStations returns the stations of a train type with
	// their stop conditions
	// Path params: train type id
	EndpointTrainTypeStations = "/train-types/%d/stations"
)

func endpointPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

// ParseID parses a positive numeric id from a command line argument
func ParseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, notAnID(field, s)
	}
	if id <= 0 {
		return 0, invalidID(field, id)
	}
	return id, nil
}
