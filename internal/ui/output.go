package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"

	"github.com/capsaicin/mockscan/internal/config"
	"github.com/capsaicin/mockscan/internal/detection"
	"github.com/capsaicin/mockscan/internal/scanner"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	boldRed = color.New(color.FgRed, color.Bold).SprintFunc()
	green   = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	white   = color.New(color.FgWhite).SprintFunc()
	magenta = color.New(color.BgMagenta, color.Bold).SprintFunc()
)

var (
	outputMu sync.Mutex
	output   io.Writer = color.Output
)

// SetOutput redirects everything this package prints.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

func SetNoColor(noColor bool) {
	color.NoColor = noColor
}

func printf(format string, args ...any) {
	outputMu.Lock()
	defer outputMu.Unlock()
	fmt.Fprintf(output, format, args...)
}

func PrintBanner() {
	banner := figure.NewFigure("MOCKSCAN", "doom", true).String()
	printf("\n%s\n", boldRed(strings.TrimRight(banner, "\n")))
	printf("   %s\n", cyan("Deterministic website vulnerability scan simulator"))
	printf("%s\n\n", dim(strings.Repeat("═", 52)))
}

func PrintConfig(cfg config.Config, targetCount int) {
	printf("\n%s\n", bold(cyan(" ⚙  Scan Configuration")))
	printf("%s\n", dim(strings.Repeat("─", 31)))
	printf("  %s     %s\n", dim("Targets"), white(targetCount))
	printf("  %s     %s\n", dim("Threads"), white(cfg.Threads))
	printf("  %s  %s\n", dim("Time Scale"), white(fmt.Sprintf("%gx", cfg.TimeScale)))
	if cfg.RateLimit > 0 {
		printf("  %s  %s\n", dim("Rate Limit"), white(fmt.Sprintf("%d scans/s per host", cfg.RateLimit)))
	}
	if cfg.MetricsAddr != "" {
		printf("  %s     %s\n", dim("Metrics"), white(cfg.MetricsAddr))
	}
	if cfg.DryRun {
		printf("  %s        %s\n", dim("Mode"), bold(yellow("Dry Run")))
	}
	printf("\n")
}

// PrintSeed is the dry-run line for a single target.
func PrintSeed(target, normalized string, seed int64) {
	printf("  %s  %s  %s\n", cyan(normalized), dim("seed"), white(seed))
	if target != normalized {
		printf("      %s %s\n", dim("from"), dim(target))
	}
}

// PrintOutcome renders a finished scan the way the results view does: the
// discovered URL table followed by the findings.
func PrintOutcome(o scanner.Outcome) {
	if o.Err != nil {
		printf("\n  %s %s  %s\n", boldRed("✗"), o.Normalized, red(o.Err.Error()))
		return
	}

	s := scanner.Summarize(o)
	tag := ""
	if o.Cached {
		tag = "  " + magenta(" CACHED ")
	}
	printf("\n%s%s\n", bold(cyan(" ◉  Results for "+o.Normalized)), tag)
	printf("%s\n", dim(strings.Repeat("─", 31)))
	printf("  %s  %s\n", dim(" # "), dim("Discovered URL"))
	for _, d := range o.Result.DiscoveredURLs {
		printf("  %3d  %s\n", d.Index, d.URL)
	}

	printf("\n")
	if s.Clean {
		printf("  %s\n", green("✔ No vulnerabilities detected!"))
		return
	}

	printf("  %s\n", boldRed(fmt.Sprintf("⚠ %d vulnerabilities found", s.FindingCount)))
	for _, f := range o.Result.Vulnerabilities {
		printf("  %s\n", yellow(f.URL))
		for _, name := range f.Vulnerabilities {
			printf("      %s %s %s\n", red("•"), name, severityTag(detection.SeverityOf(name)))
		}
	}
}

func severityTag(s detection.Severity) string {
	label := "[" + string(s) + "]"
	switch s {
	case detection.SeverityCritical:
		return boldRed(label)
	case detection.SeverityHigh:
		return red(label)
	case detection.SeverityMedium:
		return yellow(label)
	default:
		return dim(label)
	}
}

func PrintSummary(stats *scanner.Stats) {
	elapsed := time.Since(stats.StartTime)

	printf("\n\n%s\n", green(" ✔  Scan Complete"))
	printf("%s\n", dim(strings.Repeat("─", 31)))
	printf("  %s     %s\n", dim("Targets"), white(stats.GetProcessed()))
	printf("  %s    %s\n", dim("Computed"), white(stats.GetComputed()))
	if stats.GetCacheHits() > 0 {
		printf("  %s  %s\n", dim("Cache Hits"), white(stats.GetCacheHits()))
	}

	if findings := stats.GetFindings(); findings > 0 {
		printf("  %s    %s\n", dim("Findings"), boldRed(findings))
	} else {
		printf("  %s    %s\n", dim("Findings"), green(findings))
	}
	if stats.GetFailed() > 0 {
		printf("  %s      %s\n", dim("Failed"), boldRed(stats.GetFailed()))
	}
	if stats.GetCancelled() > 0 {
		printf("  %s   %s\n", dim("Cancelled"), yellow(stats.GetCancelled()))
	}

	printf("  %s    %s\n", dim("Duration"), white(elapsed.Round(time.Millisecond)))
	printf("\n")
}
