package service_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipgrid/internal/domain"
	"flipgrid/internal/service"
)

// funcRunner adapts a function to the Runner contract.
type funcRunner func(ctx context.Context, media domain.MediaInput) *domain.PipelineResult

func (f funcRunner) Run(ctx context.Context, media domain.MediaInput) *domain.PipelineResult {
	return f(ctx, media)
}

func TestRunBatch_SiblingIsolation(t *testing.T) {
	runner := funcRunner(func(_ context.Context, media domain.MediaInput) *domain.PipelineResult {
		if strings.Contains(media.VideoPath, "corrupt") {
			return &domain.PipelineResult{
				InputID: media.ID(),
				Status:  domain.StatusError,
				Message: "frame selection: input unavailable",
			}
		}
		return &domain.PipelineResult{InputID: media.ID(), Status: domain.StatusCreated, Committed: true}
	})

	batch := service.NewBatchRunner(runner, service.BatchConfig{Workers: 3})
	inputs := []domain.MediaInput{
		{VideoPath: "a.mp4"},
		{VideoPath: "b.mp4"},
		{VideoPath: "corrupt.mp4"},
		{VideoPath: "d.mp4"},
		{VideoPath: "e.mp4"},
	}

	results := batch.RunBatch(context.Background(), inputs)
	require.Len(t, results, 5)

	// Results line up with submission order and carry the input IDs.
	for i, in := range inputs {
		assert.Equal(t, in.ID(), results[i].InputID)
	}
	assert.Equal(t, domain.StatusError, results[2].Status)
	for _, i := range []int{0, 1, 3, 4} {
		assert.Equal(t, domain.StatusCreated, results[i].Status, "sibling %d must not be affected", i)
	}
}

func TestRunBatch_BoundedConcurrency(t *testing.T) {
	var current, peak int64
	var mu sync.Mutex

	runner := funcRunner(func(context.Context, domain.MediaInput) *domain.PipelineResult {
		n := atomic.AddInt64(&current, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&current, -1)
		return &domain.PipelineResult{Status: domain.StatusFetched}
	})

	batch := service.NewBatchRunner(runner, service.BatchConfig{Workers: 2})
	inputs := make([]domain.MediaInput, 6)
	for i := range inputs {
		inputs[i] = domain.MediaInput{VideoPath: "v.mp4"}
	}

	results := batch.RunBatch(context.Background(), inputs)
	require.Len(t, results, 6)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(2))
}

func TestRunBatch_TimeoutFailsPendingInputs(t *testing.T) {
	runner := funcRunner(func(_ context.Context, media domain.MediaInput) *domain.PipelineResult {
		time.Sleep(200 * time.Millisecond)
		return &domain.PipelineResult{InputID: media.ID(), Status: domain.StatusFetched}
	})

	batch := service.NewBatchRunner(runner, service.BatchConfig{Workers: 1, Timeout: 50 * time.Millisecond})
	inputs := []domain.MediaInput{
		{VideoPath: "slow1.mp4"},
		{VideoPath: "slow2.mp4"},
		{VideoPath: "slow3.mp4"},
	}

	results := batch.RunBatch(context.Background(), inputs)
	require.Len(t, results, 3)

	// The first input held the only slot past the deadline; the inputs that
	// never got a slot fail uniformly.
	assert.Equal(t, domain.StatusFetched, results[0].Status)
	for _, i := range []int{1, 2} {
		assert.Equal(t, domain.StatusError, results[i].Status)
		assert.Contains(t, results[i].Message, "batch canceled")
	}
}

func TestRunBatch_EmptyBatch(t *testing.T) {
	batch := service.NewBatchRunner(funcRunner(func(context.Context, domain.MediaInput) *domain.PipelineResult {
		t.Fatal("runner must not be called")
		return nil
	}), service.BatchConfig{})

	assert.Empty(t, batch.RunBatch(context.Background(), nil))
}

func TestRunBatch_DefaultWorkerCount(t *testing.T) {
	batch := service.NewBatchRunner(funcRunner(func(_ context.Context, media domain.MediaInput) *domain.PipelineResult {
		return &domain.PipelineResult{InputID: media.ID(), Status: domain.StatusFetched}
	}), service.BatchConfig{Workers: 0})

	results := batch.RunBatch(context.Background(), []domain.MediaInput{{VideoPath: "a.mp4"}})
	require.Len(t, results, 1)
	assert.Equal(t, "a.mp4", results[0].InputID)
}
