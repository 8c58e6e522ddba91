package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nolancacheux/webscrapping-clubs/internal/browser"
	"github.com/nolancacheux/webscrapping-clubs/internal/club"
	"github.com/nolancacheux/webscrapping-clubs/internal/crawl"
	"github.com/nolancacheux/webscrapping-clubs/internal/dataset"
	"github.com/nolancacheux/webscrapping-clubs/internal/logger"
	"github.com/nolancacheux/webscrapping-clubs/internal/reconcile"
	"github.com/nolancacheux/webscrapping-clubs/internal/resolver"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDataDir  string
	flagFormat   string
	flagVerbose  bool
	flagHeadless bool

	flagDistrict string
	flagLimit    int
	flagPace     time.Duration

	flagBaseURL string
	flagStart   int
	flagEnd     int
	flagOut     string
	flagResume  bool

	flagDataset   string
	flagThreshold float64
	flagDryRun    bool
)

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clubscrape",
		Short: "Harvest French football club contacts and merge them into a dataset",
		Long: `Harvests club contact details (affiliation, email, phone, address) from
district federation sites and merges them into a hand-maintained CSV dataset
without overwriting existing data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(flagFormat))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
			}
			level := logger.LevelInfo
			if flagVerbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.New(level, os.Stderr))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", envOr("CLUBSCRAPE_DATA_DIR", "~/.local/share/clubscrape"), "Data directory for the endpoint registry (or env: CLUBSCRAPE_DATA_DIR)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newResolveCmd(), newCrawlCmd(), newRangeCmd(), newReconcileCmd())
	return cmd
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Probe district sites and persist the registry of live endpoints",
		RunE:  runResolve,
	}
}

func newCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl one district's club listing and reconcile into the dataset",
		RunE:  runCrawl,
	}
	cmd.Flags().StringVar(&flagDistrict, "district", "", "District name from the registry (required)")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Stop after this many found clubs (0 = unlimited)")
	cmd.Flags().DurationVar(&flagPace, "pace", crawl.DefaultPace, "Minimum interval between page visits")
	cmd.Flags().BoolVar(&flagHeadless, "headless", true, "Run the browser headless")
	cmd.Flags().StringVar(&flagDataset, "dataset", "", "Dataset CSV to reconcile into (skip reconciliation if empty)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report reconciliation decisions without writing")
	cmd.MarkFlagRequired("district")
	return cmd
}

func newRangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Sweep a numeric club identifier range, appending finds to a harvest CSV",
		RunE:  runRange,
	}
	cmd.Flags().StringVar(&flagBaseURL, "base-url", envOr("CLUBSCRAPE_BASE_URL", "https://district44.fff.fr"), "District base URL used to build detail URLs (or env: CLUBSCRAPE_BASE_URL)")
	cmd.Flags().IntVar(&flagStart, "start", 0, "First identifier, inclusive (required)")
	cmd.Flags().IntVar(&flagEnd, "end", 0, "Last identifier, exclusive (required)")
	cmd.Flags().StringVar(&flagOut, "out", "clubs_harvest.csv", "Harvest CSV path")
	cmd.Flags().BoolVar(&flagResume, "resume", true, "Skip identifiers already present in the harvest CSV")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Stop after this many found clubs (0 = unlimited)")
	cmd.Flags().DurationVar(&flagPace, "pace", 0, "Minimum interval between page visits")
	cmd.Flags().BoolVar(&flagHeadless, "headless", true, "Run the browser headless")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func newReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Merge a harvest CSV into the dataset without overwriting existing data",
		RunE:  runReconcile,
	}
	cmd.Flags().StringVar(&flagOut, "harvest", "clubs_harvest.csv", "Harvest CSV to read records from")
	cmd.Flags().StringVar(&flagDataset, "dataset", "", "Dataset CSV to reconcile into (required)")
	cmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "Fuzzy match threshold override (0 = default)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report decisions without writing")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	store, err := resolver.NewStore(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing registry store: %w", err)
	}

	districts := resolver.Districts()
	logger.Info("resolving districts", logger.Fields{"candidates": len(districts)})

	reg := resolver.NewProber().Resolve(districts)
	if err := store.Save(reg); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}

	report := &RunReport{
		RanAt:    time.Now().UTC(),
		Mode:     "resolve",
		Resolved: len(reg.Order),
		Excluded: len(districts) - len(reg.Order),
	}
	return WriteReport(os.Stdout, report, OutputFormat(strings.ToLower(flagFormat)))
}

func runCrawl(cmd *cobra.Command, args []string) error {
	store, err := resolver.NewStore(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing registry store: %w", err)
	}
	reg, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}
	ep, ok := reg.Lookup(flagDistrict)
	if !ok {
		return fmt.Errorf("district %q not in registry (run 'clubscrape resolve' first)", flagDistrict)
	}

	chrome, err := browser.Launch(flagHeadless)
	if err != nil {
		return err
	}
	defer chrome.Close()

	controller := crawl.New(chrome, crawl.Options{
		Pace:  flagPace,
		Limit: flagLimit,
	})
	records, stats, err := controller.District(flagDistrict, ep)
	if err != nil {
		return err
	}

	report := &RunReport{
		RanAt:    time.Now().UTC(),
		Mode:     "district",
		District: flagDistrict,
		Stats:    stats,
	}

	if flagDataset != "" {
		rep, err := reconcileRecords(records, flagDataset, 0, flagDryRun)
		if err != nil {
			report.Reconcile = rep
			WriteReport(os.Stdout, report, OutputFormat(strings.ToLower(flagFormat)))
			return err
		}
		report.Reconcile = rep
	}
	return WriteReport(os.Stdout, report, OutputFormat(strings.ToLower(flagFormat)))
}

func runRange(cmd *cobra.Command, args []string) error {
	if flagEnd <= flagStart {
		return fmt.Errorf("--end must be greater than --start")
	}

	harvest, err := dataset.OpenHarvest(flagOut)
	if err != nil {
		return fmt.Errorf("opening harvest: %w", err)
	}
	defer harvest.Close()

	chrome, err := browser.Launch(flagHeadless)
	if err != nil {
		return err
	}
	defer chrome.Close()

	controller := crawl.New(chrome, crawl.Options{
		Pace:  flagPace,
		Limit: flagLimit,
		OnVisit: func(v crawl.Visit) {
			if v.Record == nil {
				return
			}
			// Committed per visit so an interrupted sweep loses nothing.
			if err := harvest.Append(v.SCL, v.Record, v.Took); err != nil {
				logger.Error("harvest append failed", logger.Fields{"scl": v.SCL}, err)
			}
		},
	})

	var skip func(int) bool
	if flagResume {
		skip = harvest.Seen
	}
	_, stats, err := controller.Range(flagBaseURL, flagStart, flagEnd, skip)
	if err != nil {
		return err
	}

	report := &RunReport{
		RanAt:      time.Now().UTC(),
		Mode:       "range",
		Start:      flagStart,
		End:        flagEnd,
		Stats:      stats,
		Population: crawl.DefaultPopulation,
	}
	return WriteReport(os.Stdout, report, OutputFormat(strings.ToLower(flagFormat)))
}

func runReconcile(cmd *cobra.Command, args []string) error {
	records, err := dataset.ReadHarvest(flagOut)
	if err != nil {
		return fmt.Errorf("reading harvest: %w", err)
	}
	logger.Info("harvest loaded", logger.Fields{"records": len(records)})

	rep, err := reconcileRecords(records, flagDataset, flagThreshold, flagDryRun)
	report := &RunReport{
		RanAt:     time.Now().UTC(),
		Mode:      "reconcile",
		Reconcile: rep,
	}
	if writeErr := WriteReport(os.Stdout, report, OutputFormat(strings.ToLower(flagFormat))); writeErr != nil && err == nil {
		err = writeErr
	}
	return err
}

// reconcileRecords merges records into the dataset CSV and returns the run
// report even on failure so the caller can surface committed vs pending.
func reconcileRecords(records []*club.Record, path string, threshold float64, dryRun bool) (*reconcile.Report, error) {
	store, err := dataset.OpenCSV(path, dataset.DefaultColumnMap())
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}

	writer := reconcile.New(store)
	if threshold > 0 {
		writer = reconcile.NewWithThreshold(store, threshold)
	}
	return writer.Run(records, dryRun)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
