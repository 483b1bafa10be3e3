/*
Package resilience provides a circuit breaker for work that can fail
repeatedly, such as rendering a frame onto a broken surface.

# States

  - Closed: calls run; failures are counted
  - Open: calls are rejected with ErrCircuitOpen until Timeout passes
  - Half-Open: up to MaxRequests trial calls run; any failure reopens

	Closed --[ReadyToTrip]-> Open --[Timeout]-> Half-Open --[successes]-> Closed
	                                               |
	                                           [failure]
	                                               v
	                                             Open

# Usage

	guard := resilience.New("frames", resilience.Settings{
		Timeout: time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		Now: clock.Now,
	})

	err := guard.Do(func() error {
		return renderFrame()
	})

Settings.Now lets a manual clock drive the timeouts in tests.
*/
package resilience
