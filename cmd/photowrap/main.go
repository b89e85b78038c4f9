package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/photowrap/internal/config"
	"github.com/stellarlinkco/photowrap/internal/geocode"
	"github.com/stellarlinkco/photowrap/internal/notify"
	"github.com/stellarlinkco/photowrap/internal/photos"
	"github.com/stellarlinkco/photowrap/internal/sched"
	"github.com/stellarlinkco/photowrap/internal/wrapped"
)

var rootCmd = &cobra.Command{
	Use:   "photowrap",
	Short: "photowrap - personal photo recap pipeline",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze a time range and build its card deck",
	RunE:  runRun,
}

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "List a run's place clusters",
	RunE:  runPlaces,
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Show a run's card deck in render order",
	RunE:  runCards,
}

var hideCmd = &cobra.Command{
	Use:   "hide <place-id>",
	Short: "Hide a place cluster from default listings",
	Args:  cobra.ExactArgs(1),
	RunE:  runHide,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store status and the latest run",
	RunE:  runStatus,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run recaps on the configured cron schedule (foreground)",
	RunE:  runSchedule,
}

var (
	rangeFlag  string
	fromFlag   string
	toFlag     string
	runIDFlag  string
	hiddenFlag bool
)

func init() {
	runCmd.Flags().StringVar(&rangeFlag, "range", "this-year", "Preset range: this-year, last-year, last-30-days")
	runCmd.Flags().StringVar(&fromFlag, "from", "", "Window start (RFC 3339), overrides --range")
	runCmd.Flags().StringVar(&toFlag, "to", "", "Window end (RFC 3339), overrides --range")
	placesCmd.Flags().StringVar(&runIDFlag, "run", "", "Run id (default: latest run)")
	placesCmd.Flags().BoolVar(&hiddenFlag, "hidden", false, "Include hidden places")
	cardsCmd.Flags().StringVar(&runIDFlag, "run", "", "Run id (default: latest run)")
	rootCmd.AddCommand(runCmd, placesCmd, cardsCmd, hideCmd, statusCmd, scheduleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseWindow resolves the run window from --from/--to or the preset flag.
func parseWindow(preset, from, to string, now time.Time) (photos.TimeRange, error) {
	if from == "" && to == "" {
		return photos.PresetRange(preset, now)
	}
	if from == "" || to == "" {
		return photos.TimeRange{}, fmt.Errorf("--from and --to must be given together")
	}
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return photos.TimeRange{}, fmt.Errorf("parse --from: %w", err)
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return photos.TimeRange{}, fmt.Errorf("parse --to: %w", err)
	}
	if !start.Before(end) {
		return photos.TimeRange{}, fmt.Errorf("--from must be before --to")
	}
	return photos.TimeRange{Start: start, End: end}, nil
}

func newPipeline(cfg *config.Config, store *wrapped.Store) *wrapped.Pipeline {
	return &wrapped.Pipeline{
		Library:   photos.NewClient(cfg.Library.BaseURL),
		Geocoder:  geocode.NewClient(cfg.Geocode.BaseURL),
		Store:     store,
		PageSize:  cfg.Pipeline.PageSize,
		BatchSize: cfg.Pipeline.BatchSize,
		OnStage: func(stage wrapped.Stage) {
			log.Printf("[photowrap] stage: %s", stage)
		},
		OnProgress: func(processed, total int) {
			log.Printf("[photowrap] locating photos %d/%d", processed, total)
		},
	}
}

func executeRun(ctx context.Context, cfg *config.Config, store *wrapped.Store, window photos.TimeRange) (*wrapped.RunResult, error) {
	result, err := newPipeline(cfg, store).Run(ctx, window)
	if err != nil {
		return nil, err
	}

	if cfg.Telegram.Enabled {
		notifier, err := notify.NewTelegramNotifier(cfg.Telegram)
		if err != nil {
			log.Printf("[photowrap] telegram notifier: %v", err)
		} else if err := notifier.RunCompleted(result.Run, result.Cards); err != nil {
			log.Printf("[photowrap] telegram delivery: %v", err)
		}
	}
	return result, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	window, err := parseWindow(rangeFlag, fromFlag, toFlag, time.Now())
	if err != nil {
		return err
	}

	store, err := wrapped.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	result, err := executeRun(cmd.Context(), cfg, store, window)
	if errors.Is(err, wrapped.ErrNoPhotos) {
		fmt.Println("No photos found in this time range.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Run %s: %d photos, %d located (%.0f%% coverage), %d places, %d cards\n",
		result.Run.ID, result.Run.TotalAssets, result.Run.LocationAssets,
		result.Run.LocationCoveragePct, len(result.Places), len(result.Cards))
	return nil
}

func resolveRunID(store *wrapped.Store, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	run, err := store.LatestRun()
	if err != nil {
		return "", err
	}
	if run == nil {
		return "", fmt.Errorf("no runs yet; use 'photowrap run' first")
	}
	return run.ID, nil
}

func runPlaces(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := wrapped.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	runID, err := resolveRunID(store, runIDFlag)
	if err != nil {
		return err
	}
	places, err := store.Clusters(runID, hiddenFlag)
	if err != nil {
		return err
	}
	if len(places) == 0 {
		fmt.Println("No places for this run.")
		return nil
	}
	for i, p := range places {
		hidden := ""
		if p.IsHidden {
			hidden = " (hidden)"
		}
		fmt.Printf("%2d. %-24s %4d photos  %2d days  %s%s\n",
			i+1, p.Label, p.PhotoCount, p.DistinctDaysCount, p.ID, hidden)
	}
	return nil
}

func runCards(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := wrapped.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	runID, err := resolveRunID(store, runIDFlag)
	if err != nil {
		return err
	}
	run, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}
	cards, err := store.Cards(runID)
	if err != nil {
		return err
	}
	fmt.Println(notify.FormatRunSummary(run, cards))
	return nil
}

func runHide(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := wrapped.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.HidePlace(args[0]); err != nil {
		return err
	}
	fmt.Printf("Place %s hidden.\n", args[0])
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := wrapped.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	count, err := store.RunCount()
	if err != nil {
		return err
	}
	fmt.Printf("Store: %s (%d runs)\n", cfg.Store.DBPath, count)

	run, err := store.LatestRun()
	if err != nil {
		return err
	}
	if run == nil {
		return nil
	}
	fmt.Printf("Latest: %s  %s — %s  %d photos, %.0f%% located\n",
		run.ID,
		run.TimeRangeStart.Format("2006-01-02"),
		run.TimeRangeEnd.Format("2006-01-02"),
		run.TotalAssets, run.LocationCoveragePct)
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := wrapped.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	service := sched.NewService(cfg.Schedule.Expr, func(ctx context.Context) (string, error) {
		window, err := photos.PresetRange(cfg.Schedule.Range, time.Now())
		if err != nil {
			return "", err
		}
		result, err := executeRun(ctx, cfg, store, window)
		if errors.Is(err, wrapped.ErrNoPhotos) {
			return "no photos in window", nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("run %s: %d places, %d cards",
			result.Run.ID, len(result.Places), len(result.Cards)), nil
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := service.Start(ctx); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	service.Stop()
	return nil
}
