// Package workflow holds the Workflow aggregate: the ordered set of tasks
// derived from one request, plus derived total/completed/failed views read
// straight from task state.
package workflow

import (
	"time"

	"github.com/google/uuid"

	"fileflow/internal/model"
	"fileflow/internal/task"
)

// Workflow is the ordered sequence of tasks expanded from one Request,
// identified by an id generated when the caller supplies none.
type Workflow struct {
	ID          string
	Tasks       []*task.Task
	SubmittedAt time.Time
}

// New builds a Workflow, generating an id if one wasn't supplied.
func New(id string, tasks []*task.Task) Workflow {
	if id == "" {
		id = uuid.New().String()
	}
	return Workflow{ID: id, Tasks: tasks, SubmittedAt: time.Now()}
}

// Total is the number of tasks in the workflow.
func (w Workflow) Total() int { return len(w.Tasks) }

// Completed is the number of tasks that have finished, success or failure.
func (w Workflow) Completed() int {
	n := 0
	for _, t := range w.Tasks {
		if t.IsDone() {
			n++
		}
	}
	return n
}

// Failed is the number of finished tasks whose result status is FAILED.
func (w Workflow) Failed() int {
	n := 0
	for _, t := range w.Tasks {
		if r, ok := t.Result(); ok && r.Status == model.StatusFailed {
			n++
		}
	}
	return n
}
