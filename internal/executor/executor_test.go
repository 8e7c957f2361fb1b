package executor

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileflow/internal/metrics"
	"fileflow/internal/model"
	"fileflow/internal/operations"
	"fileflow/internal/pool"
	"fileflow/internal/testutil"
)

func newTestExecutor(t *testing.T) (*Executor, *metrics.Registry) {
	t.Helper()
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	p := pool.New(pool.Config{CoreWorkers: 2, MaxWorkers: 4, MonitorInterval: time.Hour, IdleTimeout: time.Hour}, nil)
	t.Cleanup(p.Shutdown)
	ops := operations.New(t.TempDir(), 0, nil)
	return New(p, ops, reg, nil), reg
}

func TestProcessWorkflowSingleValidImage(t *testing.T) {
	exec, _ := newTestExecutor(t)
	png := testutil.TinyPNG()
	f := model.NewFile("x1", "test.png", png, "png", int64(len(png)))
	req, err := model.NewRequest([]model.File{f}, []model.OperationKind{model.Validate}, nil)
	require.NoError(t, err)

	summary := exec.ProcessWorkflow(context.Background(), req)

	assert.Equal(t, 1, summary.TotalFiles)
	assert.Equal(t, 1, summary.SuccessfulCount)
	assert.Equal(t, 0, summary.FailedCount)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "x1", summary.Results[0].FileID)
	assert.Equal(t, model.Validate, summary.Results[0].OperationKind)
	assert.Equal(t, model.StatusSuccess, summary.Results[0].Status)
}

// Two files with two default operations each expand to four tasks, so
// SuccessfulCount counts four operation outcomes, not two files.
func TestProcessWorkflowMultipleFilesMultipleOperations(t *testing.T) {
	exec, _ := newTestExecutor(t)
	png := testutil.TinyPNG()
	files := []model.File{
		model.NewFile("a", "test.png", png, "png", int64(len(png))),
		model.NewFile("b", "test.png", png, "png", int64(len(png))),
	}
	req, err := model.NewRequest(files, []model.OperationKind{model.Validate, model.MetadataExtraction}, nil)
	require.NoError(t, err)

	summary := exec.ProcessWorkflow(context.Background(), req)

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 4, summary.SuccessfulCount)
	assert.Equal(t, 0, summary.FailedCount)
	require.Len(t, summary.Results, 4)

	counts := map[string]int{}
	for _, r := range summary.Results {
		counts[r.FileID]++
	}
	assert.Equal(t, 2, counts["a"])
	assert.Equal(t, 2, counts["b"])
}

func TestProcessWorkflowInvalidType(t *testing.T) {
	exec, _ := newTestExecutor(t)
	f := model.NewFile("x", "bad.xyz", nil, "xyz", 0)
	req, err := model.NewRequest([]model.File{f}, []model.OperationKind{model.Validate}, nil)
	require.NoError(t, err)

	summary := exec.ProcessWorkflow(context.Background(), req)

	assert.Equal(t, 1, summary.TotalFiles)
	assert.Equal(t, 0, summary.SuccessfulCount)
	assert.Equal(t, 1, summary.FailedCount)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, model.StatusFailed, summary.Results[0].Status)
	assert.Contains(t, summary.Results[0].Details, "File is empty")
}

func TestProcessWorkflowPathTraversal(t *testing.T) {
	exec, _ := newTestExecutor(t)
	png := testutil.TinyPNG()
	f := model.NewFile("x", "../evil.png", png, "png", int64(len(png)))
	req, err := model.NewRequest([]model.File{f}, []model.OperationKind{model.Validate}, nil)
	require.NoError(t, err)

	summary := exec.ProcessWorkflow(context.Background(), req)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, model.StatusFailed, summary.Results[0].Status)
	assert.Contains(t, summary.Results[0].Details, "invalid file name")
}

func TestProcessWorkflowLargeFileCompression(t *testing.T) {
	exec, _ := newTestExecutor(t)
	content := make([]byte, 5*1024*1024)
	copy(content, testutil.TinyPNG())
	f := model.NewFile("big", "large.png", content, "png", int64(len(content)))
	req, err := model.NewRequest([]model.File{f}, []model.OperationKind{model.Validate, model.FileCompression}, nil)
	require.NoError(t, err)

	summary := exec.ProcessWorkflow(context.Background(), req)

	assert.Equal(t, 2, summary.SuccessfulCount)
	assert.Equal(t, 0, summary.FailedCount)

	var compressionResult model.OperationResult
	for _, r := range summary.Results {
		if r.OperationKind == model.FileCompression {
			compressionResult = r
		}
	}
	assert.Contains(t, compressionResult.ResultLocation, ".gz")
}

func TestProcessWorkflowEmptyTaskSet(t *testing.T) {
	exec, _ := newTestExecutor(t)
	f := model.NewFile("x", "test.png", testutil.TinyPNG(), "png", int64(len(testutil.TinyPNG())))
	req, err := model.NewRequest([]model.File{f}, nil, nil)
	require.NoError(t, err)

	summary := exec.ProcessWorkflow(context.Background(), req)

	assert.Equal(t, model.Summary{Results: []model.OperationResult{}}, summary)
}

func TestProcessWorkflowActiveTasksReturnsToZero(t *testing.T) {
	exec, reg := newTestExecutor(t)
	png := testutil.TinyPNG()
	f := model.NewFile("x", "test.png", png, "png", int64(len(png)))
	req, err := model.NewRequest([]model.File{f}, []model.OperationKind{model.Validate, model.MetadataExtraction}, nil)
	require.NoError(t, err)

	exec.ProcessWorkflow(context.Background(), req)

	assert.Equal(t, int64(0), reg.Snapshot().Tasks.Active)
}

// The sink must never be invoked concurrently for the same workflow, and
// every task's result must eventually be delivered.
func TestProcessWorkflowStreamedDeliversAllResultsWithoutOverlap(t *testing.T) {
	exec, _ := newTestExecutor(t)
	png := testutil.TinyPNG()
	files := make([]model.File, 10)
	for i := range files {
		files[i] = model.NewFile(string(rune('a'+i)), "test.png", png, "png", int64(len(png)))
	}
	req, err := model.NewRequest(files, []model.OperationKind{model.Validate}, nil)
	require.NoError(t, err)

	var mu sync.Mutex
	var inSink bool
	var overlapDetected bool
	var delivered []model.OperationResult

	handle := exec.ProcessWorkflowStreamed(context.Background(), req, func(result model.OperationResult) {
		mu.Lock()
		if inSink {
			overlapDetected = true
		}
		inSink = true
		mu.Unlock()

		time.Sleep(time.Millisecond)
		delivered = append(delivered, result)

		mu.Lock()
		inSink = false
		mu.Unlock()
	})

	assert.NotEmpty(t, handle.WorkflowID)
	handle.Await()

	assert.False(t, overlapDetected)
	assert.Len(t, delivered, 10)
}

// An unrecognized operation kind is logged and skipped: treated as a
// successful no-op rather than a failure.
func TestProcessWorkflowUnknownKindSucceedsWithSkipDetails(t *testing.T) {
	exec, _ := newTestExecutor(t)
	f := model.NewFile("x1", "test.png", testutil.TinyPNG(), "png", int64(len(testutil.TinyPNG())))
	req, err := model.NewRequest([]model.File{f}, []model.OperationKind{model.Unknown}, nil)
	require.NoError(t, err)

	summary := exec.ProcessWorkflow(context.Background(), req)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, model.StatusSuccess, summary.Results[0].Status)
	assert.Contains(t, summary.Results[0].Details, "not recognized")
}

// Five identical requests submitted concurrently from five goroutines must
// each get their own correct summary, and the registry must show exactly 10
// completed tasks with the active gauge back at zero once every request has
// returned.
func TestProcessWorkflowConcurrentSubmissions(t *testing.T) {
	exec, reg := newTestExecutor(t)
	png := testutil.TinyPNG()

	const requests = 5
	var wg sync.WaitGroup
	summaries := make([]model.Summary, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			f := model.NewFile("x1", "test.png", png, "png", int64(len(png)))
			req, err := model.NewRequest([]model.File{f}, []model.OperationKind{model.Validate, model.MetadataExtraction}, nil)
			require.NoError(t, err)
			summaries[idx] = exec.ProcessWorkflow(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for _, summary := range summaries {
		assert.Equal(t, 2, summary.SuccessfulCount)
		assert.Equal(t, 0, summary.FailedCount)
	}

	snap := reg.Snapshot()
	assert.Equal(t, int64(requests*2), snap.Tasks.Completed)
	assert.Equal(t, int64(0), snap.Tasks.Active)
}

func TestProcessWorkflowStreamedEmptyTaskSetCompletesImmediately(t *testing.T) {
	exec, _ := newTestExecutor(t)
	f := model.NewFile("x", "test.png", testutil.TinyPNG(), "png", int64(len(testutil.TinyPNG())))
	req, err := model.NewRequest([]model.File{f}, nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	handle := exec.ProcessWorkflowStreamed(context.Background(), req, func(model.OperationResult) {
		buf.WriteString("x")
	})
	handle.Await()

	assert.Equal(t, "", buf.String())
}
