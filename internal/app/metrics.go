package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts the work done by the event loop. Counters may be read
// from any goroutine.
type Metrics struct {
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	eventCount atomic.Uint64
	taskCount  atomic.Uint64
	reloads    atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordRender records one full render pass.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)
	for {
		current := m.renderMaxNs.Load()
		if ns <= current || m.renderMaxNs.CompareAndSwap(current, ns) {
			break
		}
	}
}

// RecordEvent records one handled backend event.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// RecordTasks records n scheduler callbacks having run.
func (m *Metrics) RecordTasks(n int) {
	m.taskCount.Add(uint64(n))
}

// RecordReload records one reload of the watched file.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Renders       uint64
	RenderAverage time.Duration
	RenderMax     time.Duration
	Events        uint64
	Tasks         uint64
	Reloads       uint64
	Uptime        time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Renders:   m.renderCount.Load(),
		RenderMax: time.Duration(m.renderMaxNs.Load()),
		Events:    m.eventCount.Load(),
		Tasks:     m.taskCount.Load(),
		Reloads:   m.reloads.Load(),
		Uptime:    time.Since(m.startTime),
	}
	if s.Renders > 0 {
		s.RenderAverage = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	return s
}
