package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/capsaicin/mockscan/internal/model"
)

type Task struct {
	Index  int
	Target string
}

// Outcome is one target's scan with the details reports need.
type Outcome struct {
	Target     string
	Normalized string
	Seed       int64
	Cached     bool
	Simulated  time.Duration
	Elapsed    time.Duration
	Result     *model.ScanResult
	Err        error
}

// Cancelled reports whether the scan was abandoned through its context.
func (o Outcome) Cancelled() bool {
	return errors.Is(o.Err, context.Canceled) || errors.Is(o.Err, context.DeadlineExceeded)
}
