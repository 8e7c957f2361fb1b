// Package executor implements the workflow executor: it expands a Request
// into Tasks, drives them through the worker pool, and delivers results in
// batch or streaming form.
package executor

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"fileflow/internal/metrics"
	"fileflow/internal/model"
	"fileflow/internal/operations"
	"fileflow/internal/pool"
)

// Sink receives each OperationResult as its task completes, in completion
// order. The executor invokes it under a per-workflow serializing lock, so
// implementations never need their own synchronization.
type Sink func(model.OperationResult)

// Executor drives Requests through a worker pool using an operations
// Library as its dispatch target.
type Executor struct {
	pool    *pool.Pool
	ops     *operations.Library
	metrics *metrics.Registry
	log     *zap.Logger
	tracer  trace.Tracer
}

// New builds an Executor over the given pool, operations library and
// metrics registry.
func New(p *pool.Pool, ops *operations.Library, reg *metrics.Registry, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		pool:    p,
		ops:     ops,
		metrics: reg,
		log:     log,
		tracer:  otel.Tracer("fileflow-executor"),
	}
}
