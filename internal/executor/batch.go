package executor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fileflow/internal/model"
	"fileflow/internal/workflow"
)

// ProcessWorkflow is batch mode: expand request into tasks, build the
// Workflow aggregate over them, submit them all, block until every task is
// done, and fold results in submission order. An empty task set returns an
// all-zero summary immediately.
//
// The join-on-every-handle step uses errgroup.Group purely for its Wait()
// semantics, never its error propagation: each goroutine always returns nil
// once its handle's Await() unblocks, since per-task failure is folded into a FAILED result
// rather than cancelling siblings the way errgroup's first-error
// short-circuit would.
func (e *Executor) ProcessWorkflow(ctx context.Context, request model.Request) model.Summary {
	e.metrics.IncActiveRequests()
	start := time.Now()
	defer func() {
		e.metrics.DecActiveRequests()
		e.metrics.RecordRequestCompleted(time.Since(start).Milliseconds())
	}()

	tasks := expand(request)
	wf := workflow.New("", tasks)

	ctx, span := e.tracer.Start(ctx, "workflow.process",
		trace.WithAttributes(attribute.String("workflow.id", wf.ID)))
	defer span.End()

	if len(tasks) == 0 {
		return model.FoldResults(0, nil)
	}

	var g errgroup.Group
	for _, t := range tasks {
		h := e.submitTask(ctx, t)
		g.Go(func() error {
			h.Await()
			return nil
		})
	}
	_ = g.Wait()

	results := make([]model.OperationResult, len(tasks))
	for i, t := range tasks {
		r, _ := t.Result()
		results[i] = r
	}

	span.SetAttributes(
		attribute.Int("workflow.total", wf.Total()),
		attribute.Int("workflow.completed", wf.Completed()),
		attribute.Int("workflow.failed", wf.Failed()),
	)
	e.log.Debug("workflow completed",
		zap.String("workflow_id", wf.ID),
		zap.Int("total", wf.Total()),
		zap.Int("completed", wf.Completed()),
		zap.Int("failed", wf.Failed()),
	)

	return model.FoldResults(len(request.Files()), results)
}
