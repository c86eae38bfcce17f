package tui

import (
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// datasetLoadedMsg carries the line, its stations and the train type.
type datasetLoadedMsg struct {
	dataset *models.Dataset
	err     error
}

// Tick messages carry the generation of the run that scheduled them.
// A tick from an earlier run is dropped.
type headerTickMsg struct {
	gen uint64
}

type bottomTickMsg struct {
	gen uint64
}

type locationTickMsg struct {
	gen uint64
}
