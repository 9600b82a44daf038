package scanner

import (
	"context"
	"sync"
)

func (e *Engine) Run(targets []string) ([]Outcome, *Stats, error) {
	return e.RunContext(context.Background(), targets, nil)
}

// RunContext scans targets with config.Threads workers. Outcomes come back
// in input order. onProgress, if set, may be called concurrently from
// several workers.
func (e *Engine) RunContext(ctx context.Context, targets []string, onProgress func(target string, p Progress)) ([]Outcome, *Stats, error) {
	stats := NewStats(int64(len(targets)))
	outcomes := make([]Outcome, len(targets))
	ran := make([]bool, len(targets))

	threads := e.config.Threads
	if threads <= 0 {
		threads = 1
	}
	if threads > len(targets) {
		threads = len(targets)
	}

	taskChan := make(chan Task, threads*2)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				var report func(Progress)
				if onProgress != nil {
					target := task.Target
					report = func(p Progress) { onProgress(target, p) }
				}
				outcomes[task.Index] = e.execute(ctx, task.Target, report, stats)
				ran[task.Index] = true
			}
		}()
	}

	go func() {
		defer close(taskChan)
		for i, target := range targets {
			select {
			case taskChan <- Task{Index: i, Target: target}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	for i := range outcomes {
		if !ran[i] {
			outcomes[i] = Outcome{Target: targets[i], Normalized: Normalize(targets[i]), Err: ctx.Err()}
		}
	}

	return outcomes, stats, ctx.Err()
}
