package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TinyKitten/trainlcd-cli/internal/config"
	"github.com/TinyKitten/trainlcd-cli/internal/location"
	"github.com/TinyKitten/trainlcd-cli/internal/navigation"
	"github.com/TinyKitten/trainlcd-cli/internal/output"
)

var replayCmd = &cobra.Command{
	Use:   "replay <line> [track]",
	Short: "Run a journey headless from a recorded track",
	Long: `Feed a recorded track (CSV or JSON) through the engine and print one line
per event. Tracks are CSV with latitude,longitude,accuracy,speed,timestamp
columns, or a JSON array of samples.

Without --live the track is replayed as fast as possible and header and
bottom ticks are interleaved at the configured intervals, so the output
is the same on every run. With --live samples are paced at the location
interval and the full display is redrawn after every event.`,
	Example: `  trainlcd replay 11311 ride.csv
  trainlcd replay 11311 ride.csv --train-type 501 --json
  trainlcd replay 11302 --simulate --from Shinagawa --live`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runReplay,
}

// replayRecord is one JSON line of replay output
type replayRecord struct {
	Event    string              `json:"event"`
	Snapshot navigation.Snapshot `json:"snapshot"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	if len(args) < 2 && !flagSimulate {
		return fmt.Errorf("a track file is required unless --simulate is set")
	}
	dir, err := getDirection()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ds, err := loadDataset(ctx, cfg, args[0])
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "trainlcd: ", 0)
	engine := navigation.NewEngine(&ds.Line, ds.Stations, ds.TrainType(flagTrainType), dir,
		navigation.WithLogger(logger),
		navigation.WithDetector(detectorConfig(cfg)),
		navigation.WithLanguages(cfg.Languages),
	)

	var source location.Source
	if flagSimulate {
		route := engine.Route()
		start := route.Last(dir.Opposite())
		if flagFrom != "" {
			if start = findStation(route.Stations, flagFrom); start == nil {
				return fmt.Errorf("station %q is not on %s", flagFrom, ds.Line.Name)
			}
		}
		simCfg := location.DefaultSimulatorConfig
		simCfg.Interval = cfg.LocationInterval
		source = location.NewSimulator(route, start, dir, simCfg)
	} else {
		track, err := location.OpenTrack(args[1])
		if err != nil {
			return err
		}
		source = track
	}

	colors := output.NewColors(getColorMode())
	opts := output.TableOptions{Colors: colors}
	publish := func(ev navigation.Event, snap navigation.Snapshot) {
		switch {
		case flagJSON:
			if err := output.WriteJSON(os.Stdout, replayRecord{Event: ev.Kind.String(), Snapshot: snap}); err != nil {
				logger.Printf("Warning: failed to write snapshot: %v", err)
			}
		case flagLive:
			output.ClearScreen(os.Stdout)
			output.RenderBoard(os.Stdout, &ds.Line, snap, opts)
		default:
			output.RenderEvent(os.Stdout, ev, snap, opts)
		}
	}

	if flagLive {
		output.HideCursor(os.Stdout)
		defer output.ShowCursor(os.Stdout)
		err = replayLive(ctx, cfg, engine, source, publish)
	} else {
		err = replayFast(ctx, cfg, engine, source, publish)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// replayFast emits every sample back to back. A header tick follows every
// HeaderInterval worth of samples and a bottom tick every BottomInterval.
func replayFast(ctx context.Context, cfg *config.Config, e *navigation.Engine, src location.Source, publish func(navigation.Event, navigation.Snapshot)) error {
	gen := e.Start()
	events := make(chan navigation.Event)
	headerEvery := ticksPer(cfg.HeaderInterval, cfg.LocationInterval)
	bottomEvery := ticksPer(cfg.BottomInterval, cfg.LocationInterval)

	go func() {
		defer close(events)
		send := func(ev navigation.Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}
		for n := 1; ; n++ {
			sample, ok := src.Next()
			if !ok {
				return
			}
			if !send(navigation.LocationEvent(sample)) {
				return
			}
			if n%headerEvery == 0 && !send(navigation.Event{Kind: navigation.EventHeaderTick, Generation: gen}) {
				return
			}
			if n%bottomEvery == 0 && !send(navigation.Event{Kind: navigation.EventBottomTick, Generation: gen}) {
				return
			}
		}
	}()

	return navigation.NewDispatcher(e, publish).Run(ctx, events)
}

// replayLive paces samples at the location interval with real header and
// bottom timers. It runs until the source is exhausted or ctx is canceled.
func replayLive(ctx context.Context, cfg *config.Config, e *navigation.Engine, src location.Source, publish func(navigation.Event, navigation.Snapshot)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gen := e.Start()
	events := make(chan navigation.Event)
	clock := navigation.SystemClock{}
	timers := navigation.StartTimers(ctx, clock, gen, cfg.HeaderInterval, cfg.BottomInterval, events)
	defer timers.Stop()

	go func() {
		// Timers share the channel, so it is never closed; canceling ends the run
		defer cancel()
		ticker := clock.NewTicker(cfg.LocationInterval)
		defer ticker.Stop()
		for {
			sample, ok := src.Next()
			if !ok {
				return
			}
			select {
			case events <- navigation.LocationEvent(sample):
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C():
			case <-ctx.Done():
				return
			}
		}
	}()

	return navigation.NewDispatcher(e, publish).Run(ctx, events)
}

// ticksPer returns how many location samples make up one interval, at least 1
func ticksPer(interval, sample time.Duration) int {
	if sample <= 0 {
		return 1
	}
	n := int(interval / sample)
	if n < 1 {
		return 1
	}
	return n
}
