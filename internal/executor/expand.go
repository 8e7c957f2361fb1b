package executor

import (
	"fileflow/internal/model"
	"fileflow/internal/task"
)

// defaultParameters returns the per-kind parameter defaults: IMAGE_RESIZE
// gets maxW=800/maxH=600, FORMAT_CONVERSION gets target="jpg", everything
// else gets none.
func defaultParameters(kind model.OperationKind) map[string]any {
	switch kind {
	case model.ImageResize:
		return map[string]any{"maxW": 800, "maxH": 600}
	case model.FormatConversion:
		return map[string]any{"target": "jpg"}
	default:
		return map[string]any{}
	}
}

// expand turns a Request into its ordered task list: file order, then
// per-file operation order. A file whose operations list is empty
// contributes zero tasks — intentional.
func expand(request model.Request) []*task.Task {
	var tasks []*task.Task
	for _, f := range request.Files() {
		for _, kind := range request.OperationsFor(f.ID()) {
			op := model.NewOperation(kind, defaultParameters(kind))
			tasks = append(tasks, task.New(f, op))
		}
	}
	return tasks
}
