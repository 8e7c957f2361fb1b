// Package metrics implements thread-safe counters: one category for task
// executions, one for incoming requests, each exposing
// active/completed/failed/totalDurationMillis and a derived average. Every
// counter is also mirrored into a promauto collector so an external
// Prometheus scraper has something to read.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// category holds one family of counters (tasks, or requests).
type category struct {
	active              int64
	completed           int64
	failed              int64
	totalDurationMillis int64

	activeGauge    prometheus.Gauge
	completedTotal prometheus.Counter
	failedTotal    prometheus.Counter
	durationTotal  prometheus.Counter
}

func newCategory(reg prometheus.Registerer, name string) *category {
	factory := promauto.With(reg)
	return &category{
		activeGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fileflow_" + name + "_active",
			Help: "Number of " + name + " currently in flight.",
		}),
		completedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fileflow_" + name + "_completed_total",
			Help: "Total " + name + " completed successfully.",
		}),
		failedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fileflow_" + name + "_failed_total",
			Help: "Total " + name + " completed with failure.",
		}),
		durationTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fileflow_" + name + "_duration_millis_total",
			Help: "Sum of " + name + " durations in milliseconds.",
		}),
	}
}

func (c *category) incActive() {
	atomic.AddInt64(&c.active, 1)
	c.activeGauge.Inc()
}

// decActive is a no-op at zero — active never goes negative.
func (c *category) decActive() {
	for {
		cur := atomic.LoadInt64(&c.active)
		if cur <= 0 {
			return
		}
		if atomic.CompareAndSwapInt64(&c.active, cur, cur-1) {
			c.activeGauge.Dec()
			return
		}
	}
}

func (c *category) recordCompleted(durationMillis int64) {
	atomic.AddInt64(&c.completed, 1)
	atomic.AddInt64(&c.totalDurationMillis, durationMillis)
	c.completedTotal.Inc()
	c.durationTotal.Add(float64(durationMillis))
}

func (c *category) recordFailed(durationMillis int64) {
	atomic.AddInt64(&c.failed, 1)
	atomic.AddInt64(&c.totalDurationMillis, durationMillis)
	c.failedTotal.Inc()
	c.durationTotal.Add(float64(durationMillis))
}

func (c *category) snapshot() CategorySnapshot {
	completed := atomic.LoadInt64(&c.completed)
	var average float64
	if completed > 0 {
		average = float64(atomic.LoadInt64(&c.totalDurationMillis)) / float64(completed)
	}
	return CategorySnapshot{
		Active:              atomic.LoadInt64(&c.active),
		Completed:           completed,
		Failed:              atomic.LoadInt64(&c.failed),
		TotalDurationMillis: atomic.LoadInt64(&c.totalDurationMillis),
		Average:             average,
	}
}

// reset zeroes the category's counters. Snapshot consistency across the
// four fields is not guaranteed.
func (c *category) reset() {
	atomic.StoreInt64(&c.active, 0)
	atomic.StoreInt64(&c.completed, 0)
	atomic.StoreInt64(&c.failed, 0)
	atomic.StoreInt64(&c.totalDurationMillis, 0)
}

// CategorySnapshot is a point-in-time read of one counter family.
type CategorySnapshot struct {
	Active              int64
	Completed           int64
	Failed              int64
	TotalDurationMillis int64
	Average             float64
}

// SuccessRatePercent returns completed*100/(completed+failed), or 0 when
// there have been no completions at all — the derived field the HTTP
// projection serves per category.
func (s CategorySnapshot) SuccessRatePercent() float64 {
	total := s.Completed + s.Failed
	if total == 0 {
		return 0
	}
	return float64(s.Completed) * 100 / float64(total)
}

// Registry holds one counter category for task executions and one for
// incoming requests.
type Registry struct {
	Tasks    *category
	Requests *category
}

// NewRegistry builds a Registry backed by reg, which receives the mirrored
// promauto collectors. Pass prometheus.NewRegistry() in tests so repeated
// construction doesn't collide on the global default registry; pass
// prometheus.DefaultRegisterer in production.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return &Registry{
		Tasks:    newCategory(reg, "tasks"),
		Requests: newCategory(reg, "requests"),
	}
}

// Snapshot is the full, named view of every counter — the shape the
// /summary HTTP endpoint in server.go projects.
type Snapshot struct {
	Tasks    CategorySnapshot
	Requests CategorySnapshot
}

// Snapshot returns a point-in-time read of every counter in the registry.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Tasks:    r.Tasks.snapshot(),
		Requests: r.Requests.snapshot(),
	}
}

// Reset zeroes every counter in the registry.
func (r *Registry) Reset() {
	r.Tasks.reset()
	r.Requests.reset()
}

// IncActiveTasks / DecActiveTasks / RecordTaskCompleted / RecordTaskFailed
// are the task-category mutators the executor and task package call.
func (r *Registry) IncActiveTasks() { r.Tasks.incActive() }
func (r *Registry) DecActiveTasks() { r.Tasks.decActive() }
func (r *Registry) RecordTaskCompleted(durationMillis int64) {
	r.Tasks.recordCompleted(durationMillis)
}
func (r *Registry) RecordTaskFailed(durationMillis int64) {
	r.Tasks.recordFailed(durationMillis)
}

// IncActiveRequests / DecActiveRequests / RecordRequestCompleted /
// RecordRequestFailed are the request-category mutators the executor calls
// around processWorkflow / processWorkflowStreamed.
func (r *Registry) IncActiveRequests() { r.Requests.incActive() }
func (r *Registry) DecActiveRequests() { r.Requests.decActive() }
func (r *Registry) RecordRequestCompleted(durationMillis int64) {
	r.Requests.recordCompleted(durationMillis)
}
func (r *Registry) RecordRequestFailed(durationMillis int64) {
	r.Requests.recordFailed(durationMillis)
}
