package detection

import (
	"math"
	"slices"
	"strings"

	"github.com/capsaicin/mockscan/internal/model"
	"github.com/capsaicin/mockscan/internal/prng"
)

const (
	rootFindingChance = 0.7

	minRootFindings = 2
	maxRootFindings = 5

	minExtraFindings = 1
	maxExtraFindings = 3

	extraShareBase   = 0.3
	extraShareSpread = 0.2
)

// Assign decides which discovered URLs carry findings. discovered[0] is the
// root. Entries are returned in creation order: the root's gated set, then
// one entry per picked URL, then a forced insecure-config entry if the root
// had none.
func Assign(src prng.Source, normalizedURL string, discovered []model.DiscoveredURL) []model.Finding {
	base := BaseURL(normalizedURL)
	if len(discovered) > 0 {
		base = discovered[0].URL
	}

	var findings []model.Finding

	if src.Float64() < rootFindingChance {
		findings = append(findings, model.Finding{
			URL:             base,
			Vulnerabilities: prng.Subset(src, catalog, minRootFindings, maxRootFindings),
		})
	}

	// The share multiplies the full listing length, root included. The
	// explicit float64 conversion keeps the compiler from fusing the
	// multiply-add, which would change rounding.
	share := extraShareBase + float64(src.Float64()*extraShareSpread)
	extra := int(math.Floor(float64(len(discovered)) * share))

	var rest []model.DiscoveredURL
	if len(discovered) > 1 {
		rest = prng.WeakShuffle(src, discovered[1:])
	}
	if extra > len(rest) {
		extra = len(rest)
	}
	for _, d := range rest[:extra] {
		findings = append(findings, model.Finding{
			URL:             d.URL,
			Vulnerabilities: prng.Subset(src, catalog, minExtraFindings, maxExtraFindings),
		})
	}

	if !strings.HasPrefix(normalizedURL, secureScheme) {
		findings = forceInsecureConfig(findings, base)
	}
	return findings
}

func forceInsecureConfig(findings []model.Finding, base string) []model.Finding {
	for i := range findings {
		if findings[i].URL != base {
			continue
		}
		if !slices.Contains(findings[i].Vulnerabilities, InsecureServerConfiguration) {
			findings[i].Vulnerabilities = append(findings[i].Vulnerabilities, InsecureServerConfiguration)
		}
		return findings
	}
	return append(findings, model.Finding{
		URL:             base,
		Vulnerabilities: []string{InsecureServerConfiguration},
	})
}
