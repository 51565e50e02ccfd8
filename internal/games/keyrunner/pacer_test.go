package keyrunner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerStopIsFinal(t *testing.T) {
	var calls atomic.Int64
	p := NewPacer(time.Millisecond, func() { calls.Add(1) })

	p.Start(context.Background())
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())
	stopped := calls.Load()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load(), "fn ran after Stop returned")

	p.Stop()
}

func TestPacerRestartMakesNewHandle(t *testing.T) {
	var calls atomic.Int64
	p := NewPacer(time.Millisecond, func() { calls.Add(1) })

	p.Start(context.Background())
	first := p.Generation()
	p.Start(context.Background())
	assert.Equal(t, first+1, p.Generation())
	assert.True(t, p.Running())

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
	p.Stop()
}

func TestPacerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPacer(time.Millisecond, func() {})

	p.Start(ctx)
	cancel()
	require.Eventually(t, func() bool { return !p.Running() }, time.Second, time.Millisecond)
	p.Stop()
}

func TestPacerSetInterval(t *testing.T) {
	var calls atomic.Int64
	p := NewPacer(time.Hour, func() { calls.Add(1) })
	p.Start(context.Background())
	defer p.Stop()

	p.SetInterval(time.Millisecond)
	assert.Equal(t, time.Millisecond, p.Interval())
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)

	p.SetInterval(0)
	assert.Equal(t, time.Millisecond, p.Interval(), "non-positive interval ignored")
}
