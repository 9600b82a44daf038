package model

import "slices"

// DiscoveredURL is one entry of the crawl listing. Index starts at 1 for the
// root and follows generation order.
type DiscoveredURL struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
}

// Finding lists the vulnerability names attached to a single URL.
type Finding struct {
	URL             string   `json:"url"`
	Vulnerabilities []string `json:"vulnerabilities"`
}

// ScanResult is the fabricated output for one normalized URL.
type ScanResult struct {
	DiscoveredURLs  []DiscoveredURL `json:"discoveredUrls"`
	Vulnerabilities []Finding       `json:"vulnerabilities"`
}

// FindingCount returns the total number of vulnerability names across all
// findings.
func (r *ScanResult) FindingCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, f := range r.Vulnerabilities {
		total += len(f.Vulnerabilities)
	}
	return total
}

// FindingsFor returns the finding recorded for url, if any.
func (r *ScanResult) FindingsFor(url string) (Finding, bool) {
	if r == nil {
		return Finding{}, false
	}
	for _, f := range r.Vulnerabilities {
		if f.URL == url {
			return f, true
		}
	}
	return Finding{}, false
}

// Clone returns a deep copy so callers can't reach into cached state.
func (r *ScanResult) Clone() *ScanResult {
	if r == nil {
		return nil
	}
	out := &ScanResult{
		DiscoveredURLs:  slices.Clone(r.DiscoveredURLs),
		Vulnerabilities: make([]Finding, len(r.Vulnerabilities)),
	}
	for i, f := range r.Vulnerabilities {
		out.Vulnerabilities[i] = Finding{URL: f.URL, Vulnerabilities: slices.Clone(f.Vulnerabilities)}
	}
	return out
}
