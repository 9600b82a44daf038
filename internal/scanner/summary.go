package scanner

import "time"

// Summary is the headline of a single scan as the results view shows it.
type Summary struct {
	Target       string
	URLCount     int
	FindingCount int
	Elapsed      time.Duration
	Clean        bool
}

func Summarize(o Outcome) Summary {
	s := Summary{Target: o.Normalized, Elapsed: o.Elapsed}
	if o.Result != nil {
		s.URLCount = len(o.Result.DiscoveredURLs)
		s.FindingCount = o.Result.FindingCount()
	}
	s.Clean = o.Err == nil && s.FindingCount == 0
	return s
}
