package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/claromes/waybacktweets/internal/config"
	"github.com/claromes/waybacktweets/internal/database"
	"github.com/claromes/waybacktweets/internal/log"
	"github.com/claromes/waybacktweets/internal/model"
	"github.com/claromes/waybacktweets/internal/record"
	"github.com/claromes/waybacktweets/internal/report"
)

// NewVisualizeCmd creates the visualize command.
func NewVisualizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualize [records...]",
		Short: "Render a report from parsed archived-tweet records",
		Long: `Visualize renders parsed archived-tweet records into a browsable report.

Each argument is either the path of a JSON records file or a literal JSON
array. The default output is a paginated, self-contained HTML page; the
--markdown, --json, and --csv flags select alternative export formats.

Examples:
  # Render an HTML report to a file
  waybacktweets visualize -u jack tweets.json -o jack.html

  # Render to stdout
  waybacktweets visualize -u jack tweets.json

  # Render a literal JSON array
  waybacktweets visualize -u jack '[{"archived_tweet_url": "..."}]'

  # Export Markdown instead of HTML
  waybacktweets visualize -u jack --markdown tweets.json -o jack.md

  # Render several record files concurrently into a directory
  waybacktweets visualize -u jack part1.json part2.json -o reports/

  # Keep records and the report run in the local store
  waybacktweets visualize -u jack tweets.json -o jack.html --save-db

Configuration file (.waybacktweets) example:
  defaults:
    outputDir: reports
  users:
    jack:
      pageSize: 12`,
		Args: cobra.ArbitraryArgs,
		RunE: runVisualizeCmd,
	}

	// Input flags
	cmd.Flags().StringP("username", "u", "",
		"Username the records belong to, without the leading @ (required)")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output path (file, or directory for multiple inputs; default stdout)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Export Markdown (mutually exclusive with --json and --csv)")
	cmd.Flags().BoolP("json", "j", false,
		"Export JSON (mutually exclusive with --markdown and --csv)")
	cmd.Flags().Bool("csv", false,
		"Export CSV (mutually exclusive with --markdown and --json)")

	// Rendering flags
	cmd.Flags().IntP("page-size", "p", config.DefaultPageSize,
		"Tweet cards per HTML report page")
	cmd.Flags().Bool("unescaped", false,
		"Interpolate raw field values like the original visualizer (unsafe)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of inputs rendered concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .waybacktweets in current or home directory)")

	// Store flags
	cmd.Flags().Bool("save-db", false,
		"Save records and the report run to the local store")

	return cmd
}

// runVisualizeCmd executes the visualize command.
func runVisualizeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runVisualize(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Username, err = cmd.Flags().GetString("username")
	if err != nil {
		return nil, err
	}
	cfg.Username = strings.TrimPrefix(cfg.Username, "@")

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.CSVReport, err = cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}

	cfg.PageSize, err = cmd.Flags().GetInt("page-size")
	if err != nil {
		return nil, err
	}

	cfg.Unescaped, err = cmd.Flags().GetBool("unescaped")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-username configuration from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.UserConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.UserConfigs = &config.File{
			Users: make(map[string]config.UserConfig),
		}
	}

	// Apply per-username overrides where the flag was left at its default
	userCfg := cfg.UserConfigs.GetUserConfig(cfg.Username)
	if userCfg.PageSize > 0 && !cmd.Flags().Changed("page-size") {
		cfg.PageSize = userCfg.PageSize
	}
	if userCfg.OutputDir != "" && cfg.OutputPath == "" {
		cfg.OutputPath = userCfg.OutputDir
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save-db")
	if err != nil {
		return nil, err
	}
	cfg.DBDir = config.XDGDataDir()

	// Positional arguments are the record inputs
	cfg.Sources = args

	return cfg, nil
}

// runVisualize renders every input source.
func runVisualize(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting render",
		"username", cfg.Username,
		"sources", len(cfg.Sources),
		"format", string(cfg.Format()),
		"saveToDB", cfg.SaveToDB,
	)

	// Open the store if saving is enabled
	var db *database.ReportDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	if len(cfg.Sources) > 1 && cfg.BatchSize > 1 {
		return renderBatch(ctx, cfg, db, logger)
	}

	for i, source := range cfg.Sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := renderSource(ctx, cfg, db, logger, source, i); err != nil {
			return err
		}
	}

	return nil
}

// renderBatch renders multiple inputs concurrently.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because each input is independent and the group propagates the first
// error with context cancellation for free.
func renderBatch(ctx context.Context, cfg *config.Config, db *database.ReportDB, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchSize)

	for i, source := range cfg.Sources {
		i, source := i, source
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return renderSource(ctx, cfg, db, logger, source, i)
		})
	}

	return g.Wait()
}

// renderSource loads one input, renders it, and persists the run.
func renderSource(ctx context.Context, cfg *config.Config, db *database.ReportDB, logger *slog.Logger, source string, index int) error {
	records, err := record.Load(source)
	if err != nil {
		return err
	}

	tweetReport := model.NewTweetReport(cfg.Username, records)
	logger.Info("records loaded", "source", sourceLabel(source), "count", len(records))

	outputPath, err := outputPathFor(cfg, source, index)
	if err != nil {
		return err
	}

	if err := outputReport(cfg, tweetReport, outputPath); err != nil {
		return err
	}
	if outputPath != "" {
		fmt.Printf("Report written to %s (%d tweets)\n", outputPath, len(records))
	}

	return saveReportRun(ctx, db, cfg, tweetReport, outputPath, logger)
}

// outputPathFor derives the output path for one source.
// A single source uses the configured path as-is (empty means stdout).
// Multiple sources need a directory; each report is named after its
// source file inside it.
func outputPathFor(cfg *config.Config, source string, index int) (string, error) {
	ext := cfg.Format().Extension()

	if len(cfg.Sources) == 1 {
		if cfg.OutputPath == "" {
			return "", nil
		}
		if isDir(cfg.OutputPath) {
			return filepath.Join(cfg.OutputPath, fmt.Sprintf("%s_tweets.%s", cfg.Username, ext)), nil
		}
		return cfg.OutputPath, nil
	}

	if cfg.OutputPath == "" {
		return "", fmt.Errorf("multiple inputs require --output to name a directory")
	}

	name := fmt.Sprintf("%s_tweets_%d.%s", cfg.Username, index+1, ext)
	if info, err := os.Stat(source); err == nil && info.Mode().IsRegular() {
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		name = fmt.Sprintf("%s.%s", base, ext)
	}

	return filepath.Join(cfg.OutputPath, name), nil
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// sourceLabel shortens a source argument for logging.
// File paths pass through; literal JSON is labeled rather than dumped.
func sourceLabel(source string) string {
	if _, err := os.Stat(source); err == nil {
		return source
	}
	return "(literal JSON)"
}

// outputReport writes the report in the requested format.
func outputReport(cfg *config.Config, tweetReport *model.TweetReport, outputPath string) error {
	var output io.Writer
	if outputPath != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // Reports are meant to be shared
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	writer := writerFor(cfg, output)
	if _, err := writer.Write(tweetReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// writerFor builds the report writer for the selected format.
func writerFor(cfg *config.Config, output io.Writer) report.Writer {
	switch cfg.Format() {
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(output)
	case config.FormatJSON:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case config.FormatCSV:
		return report.NewCSVWriter(output)
	default:
		opts := []report.HTMLWriterOption{report.WithHTMLPageSize(cfg.PageSize)}
		if cfg.Unescaped {
			opts = append(opts, report.WithoutEscaping())
		}
		return report.NewHTMLWriter(output, opts...)
	}
}

// saveReportRun saves the records and the report run to the store.
// If db is nil, this function is a no-op.
func saveReportRun(ctx context.Context, db *database.ReportDB, cfg *config.Config, tweetReport *model.TweetReport, outputPath string, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	saved, err := db.SaveRecords(ctx, tweetReport.Username, tweetReport.Records)
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	run := &database.ReportRun{
		Username:    tweetReport.Username,
		Format:      string(cfg.Format()),
		OutputPath:  outputPath,
		RecordCount: len(tweetReport.Records),
	}
	if err := db.SaveReportRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save report run: %w", err)
	}

	logger.Info("report run saved", "username", tweetReport.Username, "records", saved)
	return nil
}
