package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/capsaicin/mockscan/internal/config"
	"github.com/capsaicin/mockscan/internal/metrics"
	"github.com/capsaicin/mockscan/internal/prng"
	"github.com/capsaicin/mockscan/internal/reporting"
	"github.com/capsaicin/mockscan/internal/scanner"
	"github.com/capsaicin/mockscan/internal/ui"
)

func main() {
	cfg := config.Parse()
	ui.SetNoColor(cfg.NoColor)
	ui.PrintBanner()

	logger := config.NewLogger(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	targets := []string{}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		fmt.Println("Reading targets from STDIN...")
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			target := strings.TrimSpace(sc.Text())
			if target != "" && !strings.HasPrefix(target, "#") {
				targets = append(targets, target)
			}
		}
		fmt.Printf("Loaded %d targets\n", len(targets))
	} else if cfg.TargetURL != "" {
		targets = append(targets, cfg.TargetURL)
	}

	if err := config.Validate(&cfg, targets); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	ui.PrintConfig(cfg, len(targets))

	if cfg.DryRun {
		for _, target := range targets {
			normalized := scanner.Normalize(target)
			ui.PrintSeed(target, normalized, prng.Seed(normalized))
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\n[!] Received signal %s, shutting down gracefully...\n", sig)
		cancel()
	}()

	opts := []scanner.Option{scanner.WithLogger(logger)}
	if cfg.MetricsAddr != "" {
		recorder, err := metrics.NewRecorder()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		opts = append(opts, scanner.WithObserver(recorder))
		go func() {
			if err := recorder.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
		logger.Info("serving metrics", slog.String("addr", cfg.MetricsAddr))
	}

	engine := scanner.NewEngine(cfg, opts...)
	start := time.Now()

	fmt.Println("Starting scan...")

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	board := ui.NewBoard()
	onProgress := board.Update
	if cfg.Verbose {
		onProgress = func(target string, p scanner.Progress) {
			board.Update(target, p)
			ui.PrintProgress(scanner.Normalize(target), p)
		}
	}

	type scanResult struct {
		outcomes []scanner.Outcome
		stats    *scanner.Stats
		err      error
	}

	resultCh := make(chan scanResult, 1)

	go func() {
		res, st, err := engine.RunContext(ctx, targets, onProgress)
		resultCh <- scanResult{outcomes: res, stats: st, err: err}
	}()

	reporterCtx, stopReporter := context.WithCancel(ctx)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		if !cfg.Verbose && interactive {
			ui.StartProgressReporter(reporterCtx, engine.Stats(), board)
		}
	}()

	sr := <-resultCh
	stopReporter()
	<-reporterDone

	if sr.err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "[!] Scan cancelled by user")
		} else {
			fmt.Fprintf(os.Stderr, "Scan error: %s\n", sr.err)
			os.Exit(1)
		}
	}

	if sr.stats == nil {
		os.Exit(1)
	}

	for _, o := range sr.outcomes {
		ui.PrintOutcome(o)
	}

	ui.PrintSummary(sr.stats)

	if cfg.OutputFile != "" {
		if err := reporting.SaveJSONReport(sr.outcomes, cfg.OutputFile, targets, reporting.GenerateRunID(), start); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save JSON: %s\n", err)
		} else {
			fmt.Printf("\nJSON report saved: %s\n", cfg.OutputFile)
		}
	}

	if cfg.HTMLReport != "" {
		if err := reporting.GenerateHTML(sr.outcomes, cfg.HTMLReport); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate HTML: %s\n", err)
		} else {
			fmt.Printf("HTML report saved: %s\n", cfg.HTMLReport)
		}
	}

	if sr.stats.GetFailed() > 0 {
		os.Exit(1)
	}
}
