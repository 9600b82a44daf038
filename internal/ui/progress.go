package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/capsaicin/mockscan/internal/scanner"
)

// Stage is one of the labelled phases shown while a scan runs.
type Stage struct {
	Message string
	Icon    string
}

var stages = [...]Stage{
	{"Initializing scan...", "🛡"},
	{"Discovering URLs...", "🔍"},
	{"Analyzing server configuration...", "🖥"},
	{"Checking for SQL vulnerabilities...", "🗄"},
	{"Scanning for XSS vulnerabilities...", "</>"},
	{"Testing for injection attacks...", "⚠"},
	{"Analyzing authentication mechanisms...", "🔒"},
	{"Checking for file inclusion vulnerabilities...", "📄"},
	{"Testing for SSRF vulnerabilities...", "🌐"},
	{"Finalizing results...", "🛡"},
}

// StageFor maps an engine step onto the display stages. There are more
// stages than steps, so the last two are only reached by clamping.
func StageFor(step int) Stage {
	if step < 0 {
		step = 0
	}
	return stages[min(step, len(stages)-1)]
}

func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages[:])
	return out
}

const barWidth = 20

func progressBar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// Board remembers the latest progress of every running target.
type Board struct {
	mu     sync.Mutex
	latest map[string]scanner.Progress
	last   string
}

func NewBoard() *Board {
	return &Board{latest: make(map[string]scanner.Progress)}
}

func (b *Board) Update(target string, p scanner.Progress) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest[target] = p
	b.last = target
}

// Current returns the most recently updated target and its progress.
func (b *Board) Current() (string, scanner.Progress, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == "" {
		return "", scanner.Progress{}, false
	}
	return b.last, b.latest[b.last], true
}

// ProgressLine is the single status line for one target.
func ProgressLine(target string, p scanner.Progress) string {
	stage := StageFor(p.Step)
	percent := p.Percent()
	return fmt.Sprintf("%s %s %s  %s %s",
		dim(progressBar(percent)),
		bold(fmt.Sprintf("%3.0f%%", percent)),
		cyan(target),
		stage.Icon, stage.Message)
}

// PrintProgress prints one line per event, for verbose runs.
func PrintProgress(target string, p scanner.Progress) {
	printf("  %s\n", ProgressLine(target, p))
}

// StartProgressReporter redraws a status line until ctx is done.
func StartProgressReporter(ctx context.Context, stats *scanner.Stats, board *Board) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := 0

	for {
		select {
		case <-ctx.Done():
			printf("\r\033[K")
			return
		case <-ticker.C:
			s := spinner[frame%len(spinner)]
			frame++

			done := fmt.Sprintf("%d/%d", stats.GetProcessed(), stats.GetTotal())
			line := dim("waiting for first event")
			if target, p, ok := board.Current(); ok {
				line = ProgressLine(target, p)
			}
			printf("\r\033[K  %s %s  %s", cyan(s), white(done), line)
		}
	}
}
