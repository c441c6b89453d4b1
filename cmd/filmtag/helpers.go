package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"filmtag/internal/config"
	"filmtag/internal/logging"
	"filmtag/internal/match"
	"filmtag/internal/photo"
	"filmtag/internal/services/exiftool"
	"filmtag/internal/shootlog"
)

// loadRecords reads and parses a shoot log file. An empty format string
// triggers detection from the file name and content.
func loadRecords(path, format string) ([]shootlog.Record, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve shoot log path: %w", err)
	}
	content, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read shoot log: %w", err)
	}

	parsed := shootlog.FormatAuto
	if strings.TrimSpace(format) != "" {
		parsed, err = shootlog.ParseFormat(format)
		if err != nil {
			return nil, err
		}
	}
	return shootlog.Parse(expanded, content, parsed)
}

// scanPhotos lists the photos under dir and, when the strategy needs
// capture times, backfills them from the files themselves.
func scanPhotos(ctx context.Context, cfg *config.Config, dir string, strategy match.Strategy) ([]photo.Ref, error) {
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve photo directory: %w", err)
	}
	photos, err := photo.Scan(expanded)
	if err != nil {
		return nil, err
	}
	if strategy == match.StrategySequence || len(photos) == 0 {
		return photos, nil
	}

	client, err := exiftool.New(cfg.ExifToolBinary())
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(photos))
	for _, ref := range photos {
		paths = append(paths, ref.Path)
	}
	stamps, err := client.ReadTimestamps(ctx, paths)
	if err != nil {
		return nil, err
	}
	for i := range photos {
		if ts, ok := stamps[photos[i].Path]; ok {
			stamp := ts
			photos[i].KnownTimestamp = &stamp
		}
	}
	return photos, nil
}

// matchOptions builds matcher options from config plus command flags.
// Flag values win when the flag was changed.
func matchOptions(cfg *config.Config, flags *matchFlags) (match.Options, error) {
	strategy := cfg.Match.Strategy
	if flags.strategy != "" {
		strategy = flags.strategy
	}
	parsed, err := match.ParseStrategy(strategy)
	if err != nil {
		return match.Options{}, err
	}

	tolerance := time.Duration(cfg.Match.ToleranceMinutes) * time.Minute
	if flags.toleranceMinutes > 0 {
		tolerance = time.Duration(flags.toleranceMinutes) * time.Minute
	}
	offset := cfg.Match.Offset
	if flags.offsetSet {
		offset = flags.offset
	}
	return match.Options{
		Strategy:        parsed,
		Tolerance:       tolerance,
		Offset:          offset,
		HybridThreshold: cfg.Match.HybridThreshold,
	}, nil
}

// runMatch performs the parse and match steps shared by the match, plan,
// and apply commands.
func runMatch(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, logPath, photoDir, format string, flags *matchFlags) (*match.Result, error) {
	records, err := loadRecords(logPath, format)
	if err != nil {
		return nil, err
	}
	opts, err := matchOptions(cfg, flags)
	if err != nil {
		return nil, err
	}
	photos, err := scanPhotos(cmd.Context(), cfg, photoDir, opts.Strategy)
	if err != nil {
		return nil, err
	}
	logger := ctx.ensureLogger(cmd)
	result, err := match.Match(photos, records, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("matched records to photos",
		logging.String("strategy", string(result.Strategy)),
		logging.Int("matched", result.Matched),
		logging.Int("total", result.Total),
	)
	return result, nil
}

// matchFlags carries the matching flags shared by match, plan, and apply.
type matchFlags struct {
	strategy         string
	toleranceMinutes int
	offset           int
	offsetSet        bool
}

func titleLabel(value string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(value, "_", " "))
}

func formatTimestamp(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return ts.Format("2006-01-02 15:04:05")
}

func formatRate(matched, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(matched)/float64(total)*100)
}
