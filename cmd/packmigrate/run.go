package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ricechen/packmigrate/internal/archive"
	"github.com/ricechen/packmigrate/internal/config"
	"github.com/ricechen/packmigrate/internal/logging"
	"github.com/ricechen/packmigrate/internal/pack"
	"github.com/ricechen/packmigrate/internal/walker"
)

type runOptions struct {
	mode       string
	input      string
	output     string
	configPath string
	logLevel   string
	keepTemp   bool
}

// run wires configuration, staging, the walk, and the final summary.
// Precedence: environment < config file < explicit CLI flags.
func run(cmd *cobra.Command, opts *runOptions) error {
	cfg := config.LoadOrDefault()
	if opts.configPath != "" {
		if err := cfg.ApplyFile(opts.configPath); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = opts.mode
	}
	if cmd.Flags().Changed("input") {
		cfg.Input = opts.input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = opts.output
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if cmd.Flags().Changed("keep-temp") {
		cfg.KeepTemp = opts.keepTemp
	}

	mode, err := pack.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{Level: cfg.Logging.Level, Console: cfg.Logging.Console})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputRoot, cleanupIn, err := stageInput(cfg, log)
	if err != nil {
		return err
	}
	defer cleanupIn()

	outputRoot, finish, err := stageOutput(cfg, log)
	if err != nil {
		return err
	}

	w := walker.New(mode, log, &walker.LogReporter{Log: log})
	summary, err := w.Run(ctx, inputRoot, outputRoot)
	if err != nil {
		return err
	}
	if err := finish(); err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

// stageInput resolves the input root, extracting zip packs into a staging
// directory first. The returned cleanup removes the staging directory unless
// keep-temp is set.
func stageInput(cfg *config.Config, log *logging.Logger) (string, func(), error) {
	isZip, err := archive.IsZip(cfg.Input)
	if err != nil {
		return "", nil, fmt.Errorf("input root unreadable: %w", err)
	}
	if !isZip {
		return cfg.Input, func() {}, nil
	}

	staging, err := archive.StagingDir(appName)
	if err != nil {
		return "", nil, err
	}
	n, err := archive.Extract(cfg.Input, staging)
	if err != nil {
		os.RemoveAll(staging)
		return "", nil, fmt.Errorf("extract %s: %w", cfg.Input, err)
	}
	log.Info(fmt.Sprintf("extracted %d files from %s", n, cfg.Input))

	cleanup := func() {
		if cfg.KeepTemp {
			log.Info("staging directory kept: " + staging)
			return
		}
		os.RemoveAll(staging)
	}
	return staging, cleanup, nil
}

// stageOutput resolves where the walker writes and what happens afterwards.
// When the target is a zip, conversion goes through a staging directory that
// is archived by the returned finish func.
func stageOutput(cfg *config.Config, log *logging.Logger) (string, func() error, error) {
	target := cfg.Output
	if target == "" {
		if isZip, _ := archive.IsZip(cfg.Input); isZip {
			target = fmt.Sprintf("converted_%s.zip", time.Now().Format("20060102_150405"))
		} else {
			target = strings.TrimSuffix(filepath.Clean(cfg.Input), string(os.PathSeparator)) + "_converted"
		}
	}

	if !strings.EqualFold(filepath.Ext(target), ".zip") {
		return target, func() error { return nil }, nil
	}

	staging, err := archive.StagingDir(appName + "-out")
	if err != nil {
		return "", nil, err
	}
	finish := func() error {
		defer func() {
			if !cfg.KeepTemp {
				os.RemoveAll(staging)
			}
		}()
		n, err := archive.Create(staging, target)
		if err != nil {
			return fmt.Errorf("create output archive: %w", err)
		}
		log.Info(fmt.Sprintf("archived %d files into %s", n, target))
		return nil
	}
	return staging, finish, nil
}

// printSummary renders the run report the way the tool has always ended:
// per-file outcomes worth mentioning, then the counts.
func printSummary(s *walker.Summary) {
	fmt.Println()
	for _, ev := range s.Events {
		if ev.Outcome == walker.OutcomeConverted || ev.Detail != "" {
			fmt.Printf("  %-9s %s", ev.Outcome, ev.Path)
			if ev.Detail != "" {
				fmt.Printf("  (%s)", ev.Detail)
			}
			fmt.Println()
		}
	}
	fmt.Printf("\nProcessed %d files: %d converted, %d copied, %d skipped, %d errors\n",
		s.Total(), s.Converted, s.Copied, s.Skipped, s.Errored)
}
