package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"flipgrid/internal/domain"
)

// Runner executes one media input and always yields a result envelope.
type Runner interface {
	Run(ctx context.Context, media domain.MediaInput) *domain.PipelineResult
}

// BatchConfig holds settings for batch execution.
type BatchConfig struct {
	// Workers bounds how many inputs run concurrently.
	Workers int
	// Timeout covers the whole batch and is the only cancellation point;
	// individual inputs have no per-item deadline.
	Timeout time.Duration
}

// BatchRunner fans a batch of media inputs over a bounded worker pool. Each
// input is fully isolated: one failing or slow input never blocks its
// siblings beyond pool capacity.
type BatchRunner struct {
	runner Runner
	cfg    BatchConfig
}

// NewBatchRunner creates a new BatchRunner.
func NewBatchRunner(runner Runner, cfg BatchConfig) *BatchRunner {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	return &BatchRunner{runner: runner, cfg: cfg}
}

// RunBatch processes all inputs and returns one result per input. Results
// carry the input's correlation ID; their order matches the submission order
// even though completion order does not.
func (b *BatchRunner) RunBatch(ctx context.Context, inputs []domain.MediaInput) []domain.PipelineResult {
	if b.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()
	}

	log.Printf("service.BatchRunner: starting batch of %d (workers=%d)", len(inputs), b.cfg.Workers)

	results := make([]domain.PipelineResult, len(inputs))
	sem := make(chan struct{}, b.cfg.Workers)
	var wg sync.WaitGroup

	for i := range inputs {
		media := inputs[i]
		idx := i

		select {
		case sem <- struct{}{}: // acquire
		case <-ctx.Done():
			// Batch deadline hit while waiting for a slot: everything not yet
			// started fails uniformly.
			for j := idx; j < len(inputs); j++ {
				results[j] = domain.PipelineResult{
					InputID: inputs[j].ID(),
					Status:  domain.StatusError,
					Message: fmt.Sprintf("batch canceled: %v", ctx.Err()),
				}
			}
			wg.Wait()
			return results
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release
			results[idx] = *b.runner.Run(ctx, media)
		}()
	}

	wg.Wait()
	log.Printf("service.BatchRunner: batch complete")
	return results
}
