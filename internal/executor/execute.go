package executor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fileflow/internal/model"
	"fileflow/internal/pool"
	"fileflow/internal/task"
)

// submitTask increments the active-task gauge and hands t's execution to
// the pool.
func (e *Executor) submitTask(ctx context.Context, t *task.Task) *pool.Handle {
	e.metrics.IncActiveTasks()
	return e.pool.Submit(func() {
		e.runTask(ctx, t)
	})
}

// runTask executes t's operation, completing it exactly once and recording
// its duration in metrics regardless of outcome.
func (e *Executor) runTask(ctx context.Context, t *task.Task) {
	_, span := e.tracer.Start(ctx, "operation."+string(t.Operation().Kind))
	defer span.End()

	t.MarkStarted()
	start := time.Now()

	location, details, err := e.safeDispatch(t)
	duration := time.Since(start)

	e.metrics.DecActiveTasks()

	if err != nil {
		span.RecordError(err)
		t.CompleteExceptionally(err, e.metrics, duration.Milliseconds())
		return
	}

	if details == "" {
		details = "Operation completed successfully"
	}
	result := model.NewOperationResult(
		t.File().ID(), t.Operation().Kind, model.StatusSuccess,
		details, start, start.Add(duration), location,
	)
	t.Complete(result, e.metrics, duration.Milliseconds())
}

// safeDispatch recovers from a panicking operation and turns it into a
// FAILED result rather than crashing a pool worker.
func (e *Executor) safeDispatch(t *task.Task) (location, details string, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("operation panicked", zap.Any("panic", r), zap.String("file_id", t.File().ID()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.dispatch(t.File(), t.Operation())
}
