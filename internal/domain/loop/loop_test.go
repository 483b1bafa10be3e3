package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T, opts ...Option) (*Loop, context.CancelFunc) {
	t.Helper()
	l := New(nil, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return l, cancel
}

func TestCallRunsOnLoop(t *testing.T) {
	l, _ := startLoop(t)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, l.Post(func() { order = append(order, i) }))
	}
	require.NoError(t, l.Call(context.Background(), func() { order = append(order, 99) }))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 99}, order)
}

func TestPanicsAreRecovered(t *testing.T) {
	l, _ := startLoop(t)

	require.NoError(t, l.Post(func() { panic("boom") }))

	ran := false
	require.NoError(t, l.Call(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestRequestFrameFiresOnce(t *testing.T) {
	l, _ := startLoop(t, WithFrameInterval(time.Millisecond))

	var frames atomic.Int32
	fired := make(chan struct{}, 1)
	l.RequestFrame(func(now time.Time) {
		frames.Add(1)
		fired <- struct{}{}
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback never fired")
	}
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), frames.Load())
}

func TestPostAfterStop(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()
	<-l.Done()

	assert.ErrorIs(t, l.Post(func() {}), ErrStopped)
	assert.ErrorIs(t, l.Call(context.Background(), func() {}), ErrStopped)
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	var seen []time.Time
	var again func(now time.Time)
	again = func(now time.Time) {
		seen = append(seen, now)
		c.RequestFrame(again)
	}
	c.RequestFrame(again)

	c.Advance(10 * time.Millisecond)
	assert.Len(t, seen, 1, "requeued callback waits for the next advance")
	assert.Equal(t, 1, c.Pending())

	c.Step(2, 5*time.Millisecond)
	require.Len(t, seen, 3)
	assert.Equal(t, start.Add(20*time.Millisecond), seen[2])
	assert.Equal(t, start.Add(20*time.Millisecond), c.Now())
}
