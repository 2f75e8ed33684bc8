// Package profiler - Operation timing with periodic summary reports.
//
// The profiler is driven by its caller: StartOperation times a unit of work
// and MaybeReport emits a summary once the report interval has elapsed. It
// starts no goroutines.
package profiler

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/nvr-ai/go-annotate/logger"
)

// Operation names timed by the annotation loop.
const (
	OpFrame     = "frame"
	OpInference = "inference"
	OpRender    = "render"
)

// TimeTracker tracks timing statistics of one operation over a sliding window.
type TimeTracker struct {
	Name      string
	durations []time.Duration
	total     time.Duration
	min       time.Duration
	max       time.Duration
	count     int64
}

// Average returns the mean duration over the retained samples.
func (t *TimeTracker) Average() time.Duration {
	if len(t.durations) == 0 {
		return 0
	}
	return t.total / time.Duration(len(t.durations))
}

// Min returns the shortest duration seen.
func (t *TimeTracker) Min() time.Duration { return t.min }

// Max returns the longest duration seen.
func (t *TimeTracker) Max() time.Duration { return t.max }

// Count returns how many times the operation completed.
func (t *TimeTracker) Count() int64 { return t.count }

// Options configures the profiler.
type Options struct {
	// ReportInterval is how often MaybeReport emits (default: 10s).
	ReportInterval time.Duration
	// MaxSamples bounds the per operation window (default: 600).
	MaxSamples int
	// Now is the clock (default: time.Now).
	Now func() time.Time
}

// Profiler collects operation timings for the single loop that owns it.
type Profiler struct {
	log            *logger.Logger
	reportInterval time.Duration
	maxSamples     int
	now            func() time.Time
	start          time.Time
	lastReport     time.Time
	reports        int
	operations     map[string]*TimeTracker
}

// New creates a profiler that reports through log.
//
// Arguments:
//   - log: The destination of reports.
//   - opts: Interval and window options; zero values take defaults.
//
// Returns:
//   - *Profiler: The profiler, with its report clock started.
func New(log *logger.Logger, opts Options) *Profiler {
	if opts.ReportInterval <= 0 {
		opts.ReportInterval = 10 * time.Second
	}
	if opts.MaxSamples <= 0 {
		opts.MaxSamples = 600
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()
	return &Profiler{
		log:            log,
		reportInterval: opts.ReportInterval,
		maxSamples:     opts.MaxSamples,
		now:            opts.Now,
		start:          now,
		lastReport:     now,
		operations:     make(map[string]*TimeTracker),
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
//   - name: The name of the operation to track.
//
// Returns:
//   - func(): Call when the operation completes. A nil profiler returns a no-op.
func (p *Profiler) StartOperation(name string) func() {
	if p == nil {
		return func() {}
	}
	start := p.now()
	return func() {
		p.Record(name, p.now().Sub(start))
	}
}

// Record adds one completed duration for name.
func (p *Profiler) Record(name string, d time.Duration) {
	t, ok := p.operations[name]
	if !ok {
		t = &TimeTracker{Name: name, min: d, max: d}
		p.operations[name] = t
	}
	t.durations = append(t.durations, d)
	if len(t.durations) > p.maxSamples {
		t.total -= t.durations[0]
		t.durations = t.durations[1:]
	}
	t.total += d
	t.count++
	if d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

// Operation returns the tracker for name, if any samples were recorded.
func (p *Profiler) Operation(name string) (*TimeTracker, bool) {
	t, ok := p.operations[name]
	return t, ok
}

// Reports returns how many reports were emitted.
func (p *Profiler) Reports() int {
	return p.reports
}

// MaybeReport emits a report when the interval has elapsed since the last one.
//
// Arguments:
//   - now: The current time.
//
// Returns:
//   - bool: Whether a report was emitted.
func (p *Profiler) MaybeReport(now time.Time) bool {
	if p == nil || now.Sub(p.lastReport) < p.reportInterval {
		return false
	}
	p.lastReport = now
	p.Report(now)
	return true
}

// Report logs the current statistics.
func (p *Profiler) Report(now time.Time) {
	p.reports++

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	p.log.Info("profiler report",
		"uptime", now.Sub(p.start).Truncate(time.Millisecond).String(),
		"heap_alloc", formatBytes(mem.HeapAlloc),
		"sys", formatBytes(mem.Sys),
		"gc_cycles", mem.NumGC,
		"goroutines", runtime.NumGoroutine(),
	)

	names := make([]string, 0, len(p.operations))
	for name := range p.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := p.operations[name]
		p.log.Info("operation timing",
			"operation", name,
			"avg", t.Average().Truncate(time.Microsecond).String(),
			"min", t.min.Truncate(time.Microsecond).String(),
			"max", t.max.Truncate(time.Microsecond).String(),
			"count", t.count,
		)
	}
}

// formatBytes formats byte counts in human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
