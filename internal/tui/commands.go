package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TinyKitten/trainlcd-cli/internal/api"
)

const apiTimeout = 10 * time.Second

// loadDataset returns a tea.Cmd that fetches everything the journey needs.
func loadDataset(p api.Provider, lineID, trainTypeID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		ds, err := api.LoadDataset(ctx, p, lineID, trainTypeID)
		return datasetLoadedMsg{dataset: ds, err: err}
	}
}

func headerTick(gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return headerTickMsg{gen: gen}
	})
}

func bottomTick(gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bottomTickMsg{gen: gen}
	})
}

func locationTick(gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return locationTickMsg{gen: gen}
	})
}
