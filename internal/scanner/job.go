package scanner

import (
	"context"

	"github.com/capsaicin/mockscan/internal/model"
)

// Job is a scan running in the background. Its progress arrives on Events,
// which is unbuffered: the scan only advances as fast as events are
// consumed, unless ctx is cancelled, in which case pending events are
// dropped. Callers must drain Events or cancel ctx before Wait returns.
type Job struct {
	events  chan Progress
	done    chan struct{}
	outcome Outcome
}

// Start launches a scan of rawURL and returns immediately.
func (e *Engine) Start(ctx context.Context, rawURL string) *Job {
	j := &Job{
		events: make(chan Progress),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(j.done)
		defer close(j.events)
		j.outcome = e.Execute(ctx, rawURL, func(p Progress) {
			select {
			case j.events <- p:
			case <-ctx.Done():
			}
		})
	}()
	return j
}

// Events is closed once the scan has finished.
func (j *Job) Events() <-chan Progress {
	return j.events
}

// Done is closed once the result is available.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

func (j *Job) Wait() (*model.ScanResult, error) {
	<-j.done
	return j.outcome.Result, j.outcome.Err
}

// Outcome blocks like Wait and returns the full record.
func (j *Job) Outcome() Outcome {
	<-j.done
	return j.outcome
}
