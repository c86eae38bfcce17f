package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/TinyKitten/trainlcd-cli/internal/api"
	"github.com/TinyKitten/trainlcd-cli/internal/cache"
	"github.com/TinyKitten/trainlcd-cli/internal/config"
	"github.com/TinyKitten/trainlcd-cli/internal/detector"
	"github.com/TinyKitten/trainlcd-cli/internal/location"
	"github.com/TinyKitten/trainlcd-cli/internal/models"
	"github.com/TinyKitten/trainlcd-cli/internal/output"
	"github.com/TinyKitten/trainlcd-cli/internal/sequencer"
	"github.com/TinyKitten/trainlcd-cli/internal/tui"
)

var version = "0.1.0"

func main() {
	ctx, stop := output.SignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trainlcd",
	Short: "Next-station display for a train ride",
	Long: `trainlcd follows a train along a line from location samples and shows
what the in-car LCD would: the current or next station, the upcoming
stations, transfers and train type changes.

Station data comes from the station-data API, or from a dataset file
with --data for offline use.

Quick Start:
  1. Launch the LCD:          trainlcd <line> (or trainlcd tui <line>)
  2. List stations:           trainlcd stations 11302
  3. Show the next stop:      trainlcd next 11302 1130201
  4. Replay a recorded ride:  trainlcd replay 11302 ride.csv`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// A bare line id launches the TUI
		if len(args) == 1 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagData      string
	flagAPI       string
	flagDirection string
	flagTrainType int64
	flagJSON      bool
	flagColor     string
	flagNoCache   bool
)

// Journey flags
var (
	flagFrom      string
	flagTrack     string
	flagSimulate  bool
	flagLive      bool
	flagTransfers bool
)

func init() {
	// Add subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(replayCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "Dataset file to use instead of the API")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Station-data API base URL")
	rootCmd.PersistentFlags().StringVar(&flagDirection, "direction", "outbound", "Direction of travel: inbound, outbound")
	rootCmd.PersistentFlags().Int64Var(&flagTrainType, "train-type", 0, "Train type id (default: all stops)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")

	// The root command launches the TUI too
	for _, cmd := range []*cobra.Command{rootCmd, tuiCmd} {
		cmd.Flags().StringVar(&flagFrom, "from", "", "Station id the simulated train departs from")
		cmd.Flags().StringVar(&flagTrack, "track", "", "Replay a recorded track (CSV or JSON) instead of simulating")
	}

	stationsCmd.Flags().BoolVar(&flagTransfers, "transfers", false, "Show connecting lines")

	replayCmd.Flags().BoolVar(&flagSimulate, "simulate", false, "Simulate a train instead of reading a track")
	replayCmd.Flags().BoolVar(&flagLive, "live", false, "Render the full display in real time")
	replayCmd.Flags().StringVar(&flagFrom, "from", "", "Station the simulated train departs from (id or name)")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagAPI != "" {
		cfg.APIURL = flagAPI
	}
	if flagData != "" {
		cfg.DataFile = flagData
	}
	return cfg, nil
}

// createProvider returns a dataset file provider when one is configured,
// otherwise an API client with common options
func createProvider(cfg *config.Config) (api.Provider, error) {
	if cfg.DataFile != "" {
		return api.OpenFileProvider(cfg.DataFile)
	}

	opts := []api.ClientOption{api.WithBaseURL(cfg.APIURL)}

	// Enable caching unless disabled
	if !flagNoCache {
		dir := cfg.CacheDir
		if dir == "" {
			dir = cache.DefaultCacheDir()
		}
		opts = append(opts, api.WithCacheDir(dir, cfg.CacheTTL))
	}

	client, err := api.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

func getDirection() (models.Direction, error) {
	dir, err := models.ParseDirection(flagDirection)
	if err != nil {
		return dir, api.NewValidationError("direction", err.Error())
	}
	return dir, nil
}

func detectorConfig(cfg *config.Config) detector.Config {
	return detector.Config{
		AccuracyCeiling: cfg.AccuracyCeiling,
		AverageWindow:   cfg.AverageWindow,
	}
}

// loadDataset parses the line argument and fetches the line with the
// selected train type
func loadDataset(ctx context.Context, cfg *config.Config, lineArg string) (*models.Dataset, error) {
	lineID, err := api.ParseID("line", lineArg)
	if err != nil {
		return nil, err
	}
	p, err := createProvider(cfg)
	if err != nil {
		return nil, err
	}
	return api.LoadDataset(ctx, p, lineID, flagTrainType)
}

// findStation matches a station by id, name or romanized name
func findStation(stations []models.Station, arg string) *models.Station {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		for i := range stations {
			if stations[i].ID == id || stations[i].GroupID == id {
				return &stations[i]
			}
		}
		return nil
	}
	for i := range stations {
		if stations[i].Name == arg || strings.EqualFold(stations[i].NameRoman, arg) {
			return &stations[i]
		}
	}
	return nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui <line>",
	Short: "Launch the full-screen LCD",
	Long: `Launch a full-screen terminal LCD that follows a train along a line.

Without --track a train is simulated from the first station in the
direction of travel, or from --from.

Keyboard:
  space   Pause location updates
  d       Switch direction
  r       Reset the journey
  b       Hold the bottom area
  m       Toggle the route map
  ?       More help
  q       Quit`,
	Example: `  trainlcd tui 11302
  trainlcd tui 11302 --direction inbound --from 1130205
  trainlcd tui 11311 --train-type 501 --track ride.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	lineID, err := api.ParseID("line", args[0])
	if err != nil {
		return err
	}
	dir, err := getDirection()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := createProvider(cfg)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		f, err := tea.LogToFile(cfg.LogFile, "trainlcd")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logger = log.Default()
	}

	opts := tui.Options{
		Provider:         p,
		LineID:           lineID,
		TrainTypeID:      flagTrainType,
		Direction:        dir,
		HeaderInterval:   cfg.HeaderInterval,
		BottomInterval:   cfg.BottomInterval,
		LocationInterval: cfg.LocationInterval,
		Detector:         detectorConfig(cfg),
		Languages:        cfg.Languages,
		Logger:           logger,
	}
	if flagFrom != "" {
		id, err := api.ParseID("from", flagFrom)
		if err != nil {
			return err
		}
		opts.StartID = id
	}
	if flagTrack != "" {
		track, err := location.OpenTrack(flagTrack)
		if err != nil {
			return err
		}
		opts.Track = track
	}

	model := tui.New(opts)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}

var stationsCmd = &cobra.Command{
	Use:   "stations <line>",
	Short: "List the stations of a line",
	Long: `List the stations of a line in line order with their numbering.

With --train-type, stations the train passes are marked with ↓ and
stations with a partial stop condition with *.`,
	Example: `  trainlcd stations 11302
  trainlcd stations 11311 --train-type 501 --transfers
  trainlcd stations 11302 --data yamanote.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runStations,
}

func runStations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	tt := ds.TrainType(flagTrainType)
	stations := sequencer.ApplyTrainType(ds.Stations, tt)

	// JSON output
	if flagJSON {
		return output.WriteJSON(os.Stdout, stations)
	}

	// Text output with colors
	output.RenderStations(os.Stdout, &ds.Line, stations, tt, output.TableOptions{
		Colors:        output.NewColors(getColorMode()),
		ShowTransfers: flagTransfers,
	})
	return nil
}

var nextCmd = &cobra.Command{
	Use:   "next <line> <station>",
	Short: "Show the next stop after a station",
	Long: `Show what the display reads while standing at a station: the previous
and next stops, the upcoming stations and where the train is bound for.

The station can be given by id, group id, name or romanized name.`,
	Example: `  trainlcd next 11302 1130201
  trainlcd next 11302 Shinagawa --direction inbound
  trainlcd next 11311 東京 --train-type 501`,
	Args: cobra.ExactArgs(2),
	RunE: runNext,
}

func runNext(cmd *cobra.Command, args []string) error {
	dir, err := getDirection()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	tt := ds.TrainType(flagTrainType)
	route := sequencer.NewRoute(&ds.Line, ds.Stations, tt)
	st := findStation(route.Stations, args[1])
	if st == nil {
		return fmt.Errorf("%w: station %q is not on %s", api.ErrNotFound, args[1], ds.Line.Name)
	}

	window := sequencer.Window(route, st, dir, sequencer.DefaultWindowSize)
	info := output.StopInfo{
		Line:        &ds.Line,
		Station:     st,
		Direction:   dir,
		Previous:    sequencer.PreviousStop(route, st, dir, false),
		Next:        sequencer.NextStop(route, st, dir, false),
		Window:      window,
		Bound:       sequencer.Bound(route, st, dir),
		HasTerminus: sequencer.HasTerminus(window, sequencer.Terminus(route, dir)),
		TrainType:   tt,
	}

	if flagJSON {
		return output.WriteJSON(os.Stdout, info)
	}
	output.RenderStop(os.Stdout, info, output.TableOptions{Colors: output.NewColors(getColorMode())})
	return nil
}
