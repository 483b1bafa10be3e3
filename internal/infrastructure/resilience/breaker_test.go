package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFrame = errors.New("frame failed")

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(clock *fakeClock, trip uint32, settings Settings) *Breaker {
	settings.Now = clock.Now
	settings.ReadyToTrip = func(counts Counts) bool {
		return counts.ConsecutiveFailures >= trip
	}
	return New("test", settings)
}

func fail() error    { return errFrame }
func succeed() error { return nil }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{"stays closed on successes", []bool{true, true, true}, StateClosed},
		{"stays closed below threshold", []bool{false, false, true, false}, StateClosed},
		{"opens after consecutive failures", []bool{false, false, false}, StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Unix(0, 0)}
			breaker := newTestBreaker(clock, 3, Settings{Timeout: time.Second})

			for _, success := range tt.requests {
				if success {
					_ = breaker.Do(succeed)
				} else {
					_ = breaker.Do(fail)
				}
			}

			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker := New("test", Settings{})

	require.NoError(t, breaker.Do(succeed))
	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
	assert.Equal(t, uint32(1), counts.ConsecutiveSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)

	assert.ErrorIs(t, breaker.Do(fail), errFrame)
	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerOpenRejectsCalls(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 2, Settings{Timeout: time.Minute})

	_ = breaker.Do(fail)
	_ = breaker.Do(fail)
	require.Equal(t, StateOpen, breaker.State())

	ran := false
	err := breaker.Do(func() error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ran)
}

func TestBreakerHalfOpenCloses(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 2, Settings{MaxRequests: 2, Timeout: time.Second})

	_ = breaker.Do(fail)
	_ = breaker.Do(fail)
	require.Equal(t, StateOpen, breaker.State())

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, StateOpen, breaker.State())
	clock.Advance(time.Millisecond)
	assert.Equal(t, StateHalfOpen, breaker.State())

	require.NoError(t, breaker.Do(succeed))
	assert.Equal(t, StateHalfOpen, breaker.State())
	require.NoError(t, breaker.Do(succeed))
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerHalfOpenReopensOnFailure(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 1, Settings{Timeout: time.Second})

	_ = breaker.Do(fail)
	clock.Advance(time.Second)
	require.Equal(t, StateHalfOpen, breaker.State())

	_ = breaker.Do(fail)
	assert.Equal(t, StateOpen, breaker.State())
	assert.ErrorIs(t, breaker.Do(succeed), ErrCircuitOpen)
}

func TestBreakerHalfOpenLimitsTrials(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 1, Settings{MaxRequests: 1, Timeout: time.Second})

	_ = breaker.Do(fail)
	clock.Advance(time.Second)

	err := breaker.Do(func() error {
		return breaker.Do(succeed)
	})
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestBreakerIntervalClearsCounts(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 2, Settings{Interval: time.Minute})

	_ = breaker.Do(fail)
	clock.Advance(time.Minute)
	_ = breaker.Do(fail)

	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, uint32(1), breaker.Counts().ConsecutiveFailures)
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 1, Settings{Timeout: time.Second})

	assert.PanicsWithValue(t, "boom", func() {
		_ = breaker.Do(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerCallbacks(t *testing.T) {
	var transitions []string
	clock := &fakeClock{now: time.Unix(0, 0)}
	breaker := newTestBreaker(clock, 2, Settings{
		Timeout: 10 * time.Millisecond,
		OnStateChange: func(name string, from State, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = breaker.Do(fail)
	_ = breaker.Do(fail)
	clock.Advance(10 * time.Millisecond)
	require.NoError(t, breaker.Do(succeed))

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
	assert.Equal(t, "test", breaker.Name())
}
