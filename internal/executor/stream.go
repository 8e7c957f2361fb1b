package executor

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"fileflow/internal/model"
	"fileflow/internal/task"
	"fileflow/internal/workflow"
)

// StreamHandle completes once every task of a streamed workflow has been
// delivered to the sink, whether its underlying task completed normally or
// exceptionally. WorkflowID is the id of the workflow this handle tracks.
type StreamHandle struct {
	WorkflowID string
	done       chan struct{}
}

// Await blocks until every task has been delivered.
func (h *StreamHandle) Await() { <-h.done }

// ProcessWorkflowStreamed is stream mode: each completing task (in
// completion order, not submission order) is pushed to sink under a lock
// that serializes the sink across all of this workflow's tasks. Returns
// immediately; an empty task set returns an already-completed handle.
func (e *Executor) ProcessWorkflowStreamed(ctx context.Context, request model.Request, sink Sink) *StreamHandle {
	e.metrics.IncActiveRequests()
	start := time.Now()

	tasks := expand(request)
	wf := workflow.New("", tasks)
	handle := &StreamHandle{WorkflowID: wf.ID, done: make(chan struct{})}

	ctx, span := e.tracer.Start(ctx, "workflow.process_streamed",
		trace.WithAttributes(attribute.String("workflow.id", wf.ID)))

	if len(tasks) == 0 {
		span.End()
		e.metrics.DecActiveRequests()
		e.metrics.RecordRequestCompleted(time.Since(start).Milliseconds())
		close(handle.done)
		return handle
	}

	var sinkMu sync.Mutex
	var deliverMu sync.Mutex
	delivered := 0

	finish := func() {
		span.SetAttributes(
			attribute.Int("workflow.total", wf.Total()),
			attribute.Int("workflow.completed", wf.Completed()),
			attribute.Int("workflow.failed", wf.Failed()),
		)
		e.log.Debug("streamed workflow completed",
			zap.String("workflow_id", wf.ID),
			zap.Int("total", wf.Total()),
			zap.Int("completed", wf.Completed()),
			zap.Int("failed", wf.Failed()),
		)
		span.End()
		e.metrics.DecActiveRequests()
		e.metrics.RecordRequestCompleted(time.Since(start).Milliseconds())
		close(handle.done)
	}

	for _, t := range tasks {
		e.submitStreamedTask(ctx, t, func(result model.OperationResult) {
			e.deliverOne(&sinkMu, sink, result)

			deliverMu.Lock()
			delivered++
			allDelivered := delivered == len(tasks)
			deliverMu.Unlock()

			if allDelivered {
				finish()
			}
		})
	}

	return handle
}

// submitStreamedTask runs t through the pool, then hands its result to
// onComplete — the streaming counterpart to submitTask.
func (e *Executor) submitStreamedTask(ctx context.Context, t *task.Task, onComplete func(model.OperationResult)) {
	e.metrics.IncActiveTasks()
	e.pool.Submit(func() {
		e.runTask(ctx, t)
		result, _ := t.Result()
		onComplete(result)
	})
}

// deliverOne invokes sink under sinkMu, recovering from a panicking sink so
// one bad delivery never aborts the rest of the stream.
func (e *Executor) deliverOne(sinkMu *sync.Mutex, sink Sink, result model.OperationResult) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("sink panicked, result dropped", zap.Any("panic", r), zap.String("file_id", result.FileID))
		}
	}()
	sink(result)
}
