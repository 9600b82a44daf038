package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityOf_CoversCatalog(t *testing.T) {
	for _, name := range Catalog() {
		_, ok := severities[name]
		assert.True(t, ok, "no severity for %q", name)
	}
	assert.Len(t, severities, len(Catalog()))
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SeverityCritical, SeverityOf("SQL injection vulnerability"))
	assert.Equal(t, SeverityMedium, SeverityOf(InsecureServerConfiguration))
	assert.Equal(t, SeverityLow, SeverityOf("made up"))
}

func TestWorst(t *testing.T) {
	assert.Equal(t, Severity(""), Worst(nil))
	assert.Equal(t, SeverityHigh, Worst([]string{
		"Open Redirect vulnerability",
		"Directory Traversal vulnerability",
		InsecureServerConfiguration,
	}))
}

func TestSortBySeverity(t *testing.T) {
	names := []string{
		"Insufficient Logging and Monitoring vulnerability",
		"Open Redirect vulnerability",
		"Command Injection vulnerability",
		"HTTP Header Injection vulnerability",
	}
	SortBySeverity(names)
	assert.Equal(t, []string{
		"Command Injection vulnerability",
		"Open Redirect vulnerability",
		"HTTP Header Injection vulnerability",
		"Insufficient Logging and Monitoring vulnerability",
	}, names)
}

func TestSeverity_Score(t *testing.T) {
	assert.Greater(t, SeverityCritical.Score(), SeverityHigh.Score())
	assert.Greater(t, SeverityMedium.Score(), SeverityLow.Score())
	assert.Zero(t, Severity("bogus").Score())
}
