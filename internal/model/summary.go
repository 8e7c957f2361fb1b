package model

import "errors"

// ErrNegativeCount is returned by NewSummary when a caller passes a
// negative successfulCount/failedCount/totalFiles.
var ErrNegativeCount = errors.New("summary counts must not be negative")

// Summary aggregates the outcome of an entire workflow.
// SuccessfulCount/FailedCount count operation outcomes, not files, so their
// sum can exceed TotalFiles whenever a file carries more than one
// operation. TotalFiles equals the number of files in the originating
// request, except when the request expands to no tasks at all: the batch
// executor then returns an all-zero Summary.
type Summary struct {
	TotalFiles      int
	SuccessfulCount int
	FailedCount     int
	Results         []OperationResult
}

// NewSummary defensively copies results and rejects negative counts.
func NewSummary(totalFiles, successfulCount, failedCount int, results []OperationResult) (Summary, error) {
	if totalFiles < 0 || successfulCount < 0 || failedCount < 0 {
		return Summary{}, ErrNegativeCount
	}
	cp := make([]OperationResult, len(results))
	copy(cp, results)
	return Summary{
		TotalFiles:      totalFiles,
		SuccessfulCount: successfulCount,
		FailedCount:     failedCount,
		Results:         cp,
	}, nil
}

// FoldResults builds a Summary from a request's file count and the ordered
// results collected for it — the batch executor's sole aggregation point.
func FoldResults(totalFiles int, results []OperationResult) Summary {
	s := Summary{TotalFiles: totalFiles}
	s.Results = make([]OperationResult, len(results))
	copy(s.Results, results)
	for _, r := range results {
		if r.Status == StatusSuccess {
			s.SuccessfulCount++
		} else {
			s.FailedCount++
		}
	}
	return s
}
