package detection

import "sort"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Score orders severities for comparison. Unknown values score 0.
func (s Severity) Score() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

var severities = map[string]Severity{
	"SQL injection vulnerability":                              SeverityCritical,
	"Remote File Inclusion (RFI) vulnerability":                SeverityCritical,
	"Command Injection vulnerability":                          SeverityCritical,
	"Software and Data Integrity Failures vulnerability":       SeverityHigh,
	"Server-Side Request Forgery (SSRF) vulnerability":         SeverityHigh,
	"Cross-site scripting (XSS) vulnerability":                 SeverityHigh,
	"Broken Access Control vulnerability":                      SeverityHigh,
	"Insufficient Logging and Monitoring vulnerability":        SeverityLow,
	"Security Misconfiguration vulnerability":                  SeverityMedium,
	InsecureServerConfiguration:                                SeverityMedium,
	"Cryptographic Failure vulnerability":                      SeverityHigh,
	"Insecure Design vulnerability":                            SeverityMedium,
	"Identification and Authentication Failures vulnerability": SeverityHigh,
	"Local File Inclusion (LFI) vulnerability":                 SeverityHigh,
	"Directory Traversal vulnerability":                        SeverityHigh,
	"Open Redirect vulnerability":                              SeverityMedium,
	"HTTP Header Injection vulnerability":                      SeverityMedium,
	"Vulnerable and Outdated Components vulnerability":         SeverityMedium,
}

// SeverityOf rates a finding name. Names outside the catalog are low.
func SeverityOf(name string) Severity {
	if s, ok := severities[name]; ok {
		return s
	}
	return SeverityLow
}

// Worst returns the highest severity among names, or "" for none.
func Worst(names []string) Severity {
	var worst Severity
	for _, name := range names {
		if s := SeverityOf(name); s.Score() > worst.Score() {
			worst = s
		}
	}
	return worst
}

// SortBySeverity orders names from most to least severe, keeping catalog
// order within a severity.
func SortBySeverity(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return SeverityOf(names[i]).Score() > SeverityOf(names[j]).Score()
	})
}
