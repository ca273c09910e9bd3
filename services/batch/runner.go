package batch

import (
	"context"
	"sync"
	"time"

	"queuedesk/models"
	"queuedesk/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Runner spaces out batch items and bounds how many run at once.
type Runner struct {
	MinSpacing    time.Duration
	MaxConcurrent int
}

func NewRunner(minSpacing time.Duration, maxConcurrent int) Runner {
	return Runner{MinSpacing: minSpacing, MaxConcurrent: maxConcurrent}
}

// Run applies fn to every item. Item failures are counted and logged but do
// not stop the batch. Once ctx is done no further items are dispatched and
// the undispatched ones count as errors.
func Run[T any](ctx context.Context, r Runner, name string, items []T, fn func(ctx context.Context, item T) error) models.BatchResult {
	result := models.BatchResult{ToProcess: len(items)}
	if len(items) == 0 {
		return result
	}

	limit := rate.Inf
	if r.MinSpacing > 0 {
		limit = rate.Every(r.MinSpacing)
	}
	limiter := rate.NewLimiter(limit, 1)

	concurrent := r.MaxConcurrent
	if concurrent <= 0 {
		concurrent = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrent)

	var mu sync.Mutex
	logger := utils.GetLogger()

	for i, item := range items {
		if err := limiter.Wait(ctx); err != nil {
			skipped := len(items) - i
			mu.Lock()
			result.Errors += skipped
			mu.Unlock()
			logger.Warn("batch interrupted", zap.String("batch", name), zap.Int("skipped", skipped), zap.Error(err))
			break
		}
		g.Go(func() error {
			err := fn(ctx, item)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors++
				logger.Error("batch item failed", zap.String("batch", name), zap.Error(err))
				return nil
			}
			result.Processed++
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("batch finished",
		zap.String("batch", name),
		zap.Int("toProcess", result.ToProcess),
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors))
	return result
}
