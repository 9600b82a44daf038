package reporting

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
	"github.com/spaolacci/murmur3"

	"github.com/capsaicin/mockscan/internal/detection"
	"github.com/capsaicin/mockscan/internal/model"
	"github.com/capsaicin/mockscan/internal/scanner"
)

const (
	schemaVersion = "1.0"
	toolVersion   = "1.0.0"
)

type ScanReport struct {
	SchemaVersion string         `json:"schema_version"`
	RunID         string         `json:"run_id"`
	Metadata      ScanMetadata   `json:"metadata"`
	Counts        map[string]int `json:"counts"`
	Findings      map[string]int `json:"findings"`
	Severities    map[string]int `json:"severities"`
	Targets       []TargetReport `json:"targets"`
}

type ScanMetadata struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TargetCount int    `json:"target_count"`
	TargetsHash string `json:"targets_hash"`
	Version     string `json:"version"`
}

// TargetReport is one scanned target. Durations are in milliseconds.
type TargetReport struct {
	Target      string            `json:"target"`
	Normalized  string            `json:"normalized"`
	Seed        int64             `json:"seed"`
	Cached      bool              `json:"cached"`
	SimulatedMS int64             `json:"simulated_ms"`
	ElapsedMS   int64             `json:"elapsed_ms"`
	Error       string            `json:"error,omitempty"`
	Result      *model.ScanResult `json:"result,omitempty"`
}

func NewTargetReport(o scanner.Outcome) TargetReport {
	tr := TargetReport{
		Target:      o.Target,
		Normalized:  o.Normalized,
		Seed:        o.Seed,
		Cached:      o.Cached,
		SimulatedMS: o.Simulated.Milliseconds(),
		ElapsedMS:   o.Elapsed.Milliseconds(),
		Result:      o.Result,
	}
	if o.Err != nil {
		tr.Error = o.Err.Error()
	}
	return tr
}

// SortOutcomes orders outcomes by normalized URL, then by raw target.
func SortOutcomes(outcomes []scanner.Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		if outcomes[i].Normalized != outcomes[j].Normalized {
			return outcomes[i].Normalized < outcomes[j].Normalized
		}
		return outcomes[i].Target < outcomes[j].Target
	})
}

func sortedCopy(outcomes []scanner.Outcome) []scanner.Outcome {
	sorted := make([]scanner.Outcome, len(outcomes))
	copy(sorted, outcomes)
	SortOutcomes(sorted)
	return sorted
}

func BuildReport(outcomes []scanner.Outcome, targets []string, runID string, start, end time.Time) ScanReport {
	sorted := sortedCopy(outcomes)
	reports := make([]TargetReport, 0, len(sorted))
	for _, o := range sorted {
		reports = append(reports, NewTargetReport(o))
	}

	return ScanReport{
		SchemaVersion: schemaVersion,
		RunID:         runID,
		Metadata: ScanMetadata{
			StartTime:   start.Format(time.RFC3339),
			EndTime:     end.Format(time.RFC3339),
			TargetCount: len(targets),
			TargetsHash: hashStrings(targets),
			Version:     toolVersion,
		},
		Counts:     CountOutcomes(outcomes),
		Findings:   CountFindings(outcomes),
		Severities: CountSeverities(outcomes),
		Targets:    reports,
	}
}

func WriteJSON(w io.Writer, v any) error {
	if err := json.MarshalWrite(w, v, jsontext.WithIndent("  "), json.Deterministic(true)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func SaveJSONReport(outcomes []scanner.Outcome, filename string, targets []string, runID string, start time.Time) error {
	report := BuildReport(outcomes, targets, runID, start, time.Now())

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, report)
}

// FormatResultJSON renders res in the {discoveredUrls, vulnerabilities}
// wire shape.
func FormatResultJSON(res *model.ScanResult) (string, error) {
	if res == nil {
		res = &model.ScanResult{}
	}
	data, err := json.Marshal(res, jsontext.WithIndent("  "), json.Deterministic(true))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func hashStrings(ss []string) string {
	h := murmur3.New64()
	for _, s := range ss {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func GenerateRunID() string {
	return uuid.NewString()
}

func CountOutcomes(outcomes []scanner.Outcome) map[string]int {
	counts := map[string]int{
		"computed":  0,
		"cached":    0,
		"failed":    0,
		"cancelled": 0,
		"clean":     0,
	}

	for _, o := range outcomes {
		switch {
		case o.Cancelled():
			counts["cancelled"]++
		case o.Err != nil:
			counts["failed"]++
		case o.Cached:
			counts["cached"]++
		default:
			counts["computed"]++
		}
		if o.Err == nil && o.Result.FindingCount() == 0 {
			counts["clean"]++
		}
	}
	return counts
}

// CountFindings tallies each vulnerability name across every outcome.
func CountFindings(outcomes []scanner.Outcome) map[string]int {
	counts := make(map[string]int)
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		for _, f := range o.Result.Vulnerabilities {
			for _, name := range f.Vulnerabilities {
				counts[name]++
			}
		}
	}
	return counts
}

// CountSeverities buckets every reported name by its severity.
func CountSeverities(outcomes []scanner.Outcome) map[string]int {
	counts := map[string]int{
		string(detection.SeverityCritical): 0,
		string(detection.SeverityHigh):     0,
		string(detection.SeverityMedium):   0,
		string(detection.SeverityLow):      0,
	}
	for name, n := range CountFindings(outcomes) {
		counts[string(detection.SeverityOf(name))] += n
	}
	return counts
}
