package detection

import (
	"strings"

	"github.com/capsaicin/mockscan/internal/model"
	"github.com/capsaicin/mockscan/internal/prng"
)

const (
	minDiscoveredPaths = 4
	maxDiscoveredPaths = 10
)

// BaseURL drops a single trailing slash from the normalized URL.
func BaseURL(normalizedURL string) string {
	return strings.TrimSuffix(normalizedURL, "/")
}

// Discover fabricates the crawl listing: the root at index 1 followed by
// 4 to 10 sampled paths.
func Discover(src prng.Source, normalizedURL string) []model.DiscoveredURL {
	base := BaseURL(normalizedURL)
	paths := prng.Subset(src, candidatePaths, minDiscoveredPaths, maxDiscoveredPaths)

	discovered := make([]model.DiscoveredURL, 0, len(paths)+1)
	discovered = append(discovered, model.DiscoveredURL{URL: base, Index: 1})
	for i, path := range paths {
		discovered = append(discovered, model.DiscoveredURL{
			URL:   base + path,
			Index: i + 2,
		})
	}
	return discovered
}
