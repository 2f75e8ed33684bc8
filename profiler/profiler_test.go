package profiler

import (
	"testing"
	"time"

	"github.com/nvr-ai/go-annotate/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStartOperation(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := New(logger.NewNopLogger(), Options{Now: clock.Now})

	for _, d := range []time.Duration{10, 30, 20} {
		done := p.StartOperation(OpInference)
		clock.Advance(d * time.Millisecond)
		done()
	}

	tr, ok := p.Operation(OpInference)
	require.True(t, ok)
	assert.Equal(t, int64(3), tr.Count())
	assert.Equal(t, 20*time.Millisecond, tr.Average())
	assert.Equal(t, 10*time.Millisecond, tr.Min())
	assert.Equal(t, 30*time.Millisecond, tr.Max())

	_, ok = p.Operation(OpRender)
	assert.False(t, ok)
}

func TestSlidingWindow(t *testing.T) {
	p := New(logger.NewNopLogger(), Options{MaxSamples: 2})

	p.Record(OpFrame, 100*time.Millisecond)
	p.Record(OpFrame, 10*time.Millisecond)
	p.Record(OpFrame, 20*time.Millisecond)

	tr, _ := p.Operation(OpFrame)
	assert.Equal(t, 15*time.Millisecond, tr.Average())
	assert.Equal(t, int64(3), tr.Count())
	assert.Equal(t, 100*time.Millisecond, tr.Max())
}

func TestMaybeReport(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := New(&logger.Logger{Logger: zap.New(core)}, Options{ReportInterval: time.Second, Now: clock.Now})
	p.Record(OpRender, time.Millisecond)

	assert.False(t, p.MaybeReport(clock.t.Add(500*time.Millisecond)))
	assert.True(t, p.MaybeReport(clock.t.Add(time.Second)))
	assert.False(t, p.MaybeReport(clock.t.Add(1500*time.Millisecond)))
	assert.True(t, p.MaybeReport(clock.t.Add(2*time.Second)))
	assert.Equal(t, 2, p.Reports())

	assert.Len(t, logs.FilterMessage("profiler report").All(), 2)
	timings := logs.FilterMessage("operation timing").All()
	require.Len(t, timings, 2)
	assert.Equal(t, OpRender, timings[0].ContextMap()["operation"])
}

func TestNilProfiler(t *testing.T) {
	var p *Profiler
	p.StartOperation(OpFrame)()
	assert.False(t, p.MaybeReport(time.Now()))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2*1024*1024))
}
