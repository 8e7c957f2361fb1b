// Package task implements the single unit of scheduling: one file paired
// with one operation, completed exactly once via a set-once flag.
package task

import (
	"sync"
	"sync/atomic"
	"time"

	"fileflow/internal/metrics"
	"fileflow/internal/model"
)

// State describes where a task is in its scheduling lifecycle.
type State string

const (
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Task is one (file, operation) unit of work. Once constructed, File and
// Operation never change; Complete/CompleteExceptionally may each be called
// from any goroutine, but only the first call — of either — takes effect.
type Task struct {
	file      model.File
	operation model.Operation

	createdAt time.Time
	startedAt atomic.Value // time.Time
	endedAt   atomic.Value // time.Time

	done   atomic.Bool
	result model.OperationResult

	resultReady chan struct{}
	once        sync.Once
}

// New constructs a Task. It panics when file has no id or operation has no
// kind, since File and Operation are values rather than nilable references
// and there is no zero-value task worth scheduling.
func New(file model.File, operation model.Operation) *Task {
	if file.ID() == "" {
		panic("task: file must have a non-empty id")
	}
	if operation.Kind == "" {
		panic("task: operation must have a kind")
	}
	return &Task{
		file:        file,
		operation:   operation,
		createdAt:   time.Now(),
		resultReady: make(chan struct{}),
	}
}

func (t *Task) File() model.File           { return t.file }
func (t *Task) Operation() model.Operation { return t.operation }
func (t *Task) CreatedAt() time.Time       { return t.createdAt }

// MarkStarted records the instant a worker began executing this task.
func (t *Task) MarkStarted() {
	t.startedAt.Store(time.Now())
}

// IsDone reflects the completed flag.
func (t *Task) IsDone() bool { return t.done.Load() }

// Complete records a successful (or caller-classified) result. On the first
// call it records task duration in reg and marks the task done; subsequent
// calls — including a racing CompleteExceptionally — are silent no-ops.
func (t *Task) Complete(result model.OperationResult, reg *metrics.Registry, durationMillis int64) {
	t.once.Do(func() {
		t.result = result
		t.endedAt.Store(time.Now())
		if result.Status == model.StatusSuccess {
			reg.RecordTaskCompleted(durationMillis)
		} else {
			reg.RecordTaskFailed(durationMillis)
		}
		t.done.Store(true)
		close(t.resultReady)
	})
}

// CompleteExceptionally marks the task failed with cause. On the first call
// it increments the failed-task counter and records duration; subsequent
// calls are silent no-ops, same as Complete.
func (t *Task) CompleteExceptionally(cause error, reg *metrics.Registry, durationMillis int64) {
	t.once.Do(func() {
		t.result = model.NewOperationResult(
			t.file.ID(), t.operation.Kind, model.StatusFailed,
			"Error: "+cause.Error(), time.Time{}, time.Time{}, "",
		)
		t.endedAt.Store(time.Now())
		reg.RecordTaskFailed(durationMillis)
		t.done.Store(true)
		close(t.resultReady)
	})
}

// Await blocks until the task completes and returns its result. Safe to
// call from multiple goroutines; all callers observe the same result.
func (t *Task) Await() model.OperationResult {
	<-t.resultReady
	return t.result
}

// Result returns the task's result if it is already done, with ok=false
// otherwise — the non-blocking counterpart to Await.
func (t *Task) Result() (model.OperationResult, bool) {
	if !t.done.Load() {
		return model.OperationResult{}, false
	}
	return t.result, true
}

// Done returns the channel Await waits on, so callers that need to select
// across many tasks can do so without polling.
func (t *Task) Done() <-chan struct{} { return t.resultReady }
