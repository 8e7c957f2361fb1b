// Package pool implements a bounded-queue, adaptively-sized worker pool —
// the only place in fileflow that spawns worker goroutines. A monitor loop
// polls queue depth every MonitorInterval and grows or shrinks the worker
// set against it; when the queue is full, Submit falls back to running the
// work on the caller's own goroutine.
package pool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Config configures a Pool. Zero values are replaced with defaults by New.
type Config struct {
	CoreWorkers     int
	MaxWorkers      int
	QueueCapacity   int
	ResizeThreshold int
	IdleTimeout     time.Duration
	MonitorInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.CoreWorkers <= 0 {
		c.CoreWorkers = 1
	}
	if c.MaxWorkers < c.CoreWorkers {
		c.MaxWorkers = c.CoreWorkers * 4
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 200
	}
	if c.ResizeThreshold <= 0 {
		c.ResizeThreshold = 50
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.MonitorInterval <= 0 {
		c.MonitorInterval = 1 * time.Second
	}
	return c
}

// Handle signals the completion of one submitted unit of work.
type Handle struct {
	done chan struct{}
}

// Await blocks until the submitted work has run to completion (whether it
// ran on a pool worker or, under backpressure, on the caller's goroutine).
func (h *Handle) Await() { <-h.done }

// Pool is a bounded-queue executor with adaptive worker sizing and a
// caller-runs backpressure policy.
type Pool struct {
	cfg    Config
	log    *zap.Logger
	queue  chan func()

	sizeMu   sync.Mutex
	coreSize int
	maxSize  int

	liveWorkers   atomic.Int64
	activeWorkers atomic.Int64
	nextWorkerID  atomic.Int64

	wg           sync.WaitGroup
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	accepting    atomic.Bool
}

// New builds a Pool and starts its core workers and monitor loop.
func New(cfg Config, log *zap.Logger) *Pool {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool{
		cfg:        cfg,
		log:        log,
		queue:      make(chan func(), cfg.QueueCapacity),
		coreSize:   cfg.CoreWorkers,
		maxSize:    cfg.CoreWorkers,
		shutdownCh: make(chan struct{}),
	}
	p.accepting.Store(true)

	for i := 0; i < cfg.CoreWorkers; i++ {
		p.spawnWorker()
	}

	p.wg.Add(1)
	go p.monitorLoop()

	return p
}

// Submit accepts a unit of work. If the queue is full the caller's own
// goroutine runs it inline (caller-runs); otherwise it's handed to a pool
// worker. Safe for concurrent callers.
func (p *Pool) Submit(work func()) *Handle {
	h := &Handle{done: make(chan struct{})}
	wrapped := func() {
		defer close(h.done)
		p.runSafely(work)
	}

	if p.accepting.Load() {
		select {
		case p.queue <- wrapped:
			return h
		default:
		}
	}

	// Queue full, or the pool has stopped accepting new work: caller-runs.
	wrapped()
	return h
}

func (p *Pool) runSafely(work func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker panic recovered", zap.Any("panic", r))
		}
	}()
	work()
}

// ActiveWorkers returns the number of workers currently executing a job.
func (p *Pool) ActiveWorkers() int64 { return p.activeWorkers.Load() }

// QueueDepth returns the number of items currently buffered in the queue.
func (p *Pool) QueueDepth() int { return len(p.queue) }

// Stats is a point-in-time snapshot of pool sizing. The metrics registry
// does not read it; it has no pool gauges.
type Stats struct {
	LiveWorkers   int64
	ActiveWorkers int64
	CoreSize      int
	MaxSize       int
	QueueDepth    int
}

func (p *Pool) Stats() Stats {
	p.sizeMu.Lock()
	core, max := p.coreSize, p.maxSize
	p.sizeMu.Unlock()
	return Stats{
		LiveWorkers:   p.liveWorkers.Load(),
		ActiveWorkers: p.activeWorkers.Load(),
		CoreSize:      core,
		MaxSize:       max,
		QueueDepth:    len(p.queue),
	}
}

func (p *Pool) spawnWorker() {
	id := p.nextWorkerID.Add(1)
	p.liveWorkers.Add(1)
	p.wg.Add(1)
	go p.runWorker(id)
}

func (p *Pool) coreSizeSnapshot() int {
	p.sizeMu.Lock()
	defer p.sizeMu.Unlock()
	return p.coreSize
}

func (p *Pool) runWorker(id int64) {
	name := workerName(id)
	defer p.wg.Done()
	defer p.liveWorkers.Add(-1)

	idleTimer := time.NewTimer(p.cfg.IdleTimeout)
	defer idleTimer.Stop()

	for {
		select {
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			if !idleTimer.Stop() {
				<-idleTimer.C
			}
			p.activeWorkers.Add(1)
			job()
			p.activeWorkers.Add(-1)
			idleTimer.Reset(p.cfg.IdleTimeout)

		case <-idleTimer.C:
			if p.liveWorkers.Load() > int64(p.coreSizeSnapshot()) {
				p.log.Debug("worker idle past core size, exiting", zap.String("worker", name))
				return
			}
			idleTimer.Reset(p.cfg.IdleTimeout)

		case <-p.shutdownCh:
			p.drainQueue()
			return
		}
	}
}

// drainQueue runs whatever work is still buffered at shutdown, so every
// handle that was accepted into the queue still completes before the pool
// terminates.
func (p *Pool) drainQueue() {
	for {
		select {
		case job := <-p.queue:
			p.activeWorkers.Add(1)
			job()
			p.activeWorkers.Add(-1)
		default:
			return
		}
	}
}

func workerName(id int64) string {
	return fmt.Sprintf("file-task-thread-%d", id)
}

// monitorLoop periodically resizes the pool: grow toward MaxWorkers when
// the queue is backed up, shrink toward CoreWorkers when it's quiet.
func (p *Pool) monitorLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.cfg.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.resizeIfNeeded()
		case <-p.shutdownCh:
			return
		}
	}
}

func (p *Pool) resizeIfNeeded() {
	depth := len(p.queue)

	p.sizeMu.Lock()
	curCore, curMax := p.coreSize, p.maxSize
	grew := false
	switch {
	case depth > p.cfg.ResizeThreshold && curMax < p.cfg.MaxWorkers:
		newMax := min(p.cfg.MaxWorkers, curMax+2)
		p.maxSize = newMax
		p.coreSize = newMax / 2
		grew = true
	case depth < p.cfg.ResizeThreshold/2 && curCore > p.cfg.CoreWorkers:
		newCore := max(p.cfg.CoreWorkers, curCore-1)
		p.coreSize = newCore
		p.maxSize = newCore * 2
	}
	target := p.maxSize
	changed := p.coreSize != curCore || p.maxSize != curMax
	p.sizeMu.Unlock()

	if changed {
		p.log.Debug("pool resized",
			zap.Int("core", p.coreSizeSnapshot()), zap.Int("max", target), zap.Int("queue_depth", depth))
	}
	if grew {
		for p.liveWorkers.Load() < int64(target) {
			p.spawnWorker()
		}
	}
}

// Shutdown stops accepting new work, interrupts the monitor and idle
// workers, and waits up to 30s for in-flight work to drain before
// returning. Idempotent.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.accepting.Store(false)
		close(p.shutdownCh)

		drained := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(drained)
		}()

		select {
		case <-drained:
		case <-time.After(30 * time.Second):
			p.log.Warn("pool shutdown timed out waiting for workers to drain")
		}
	})
}
