/*
Package monitoring provides Prometheus metrics for the desktop.

# Overview

Metrics cover window lifecycle (created, destroyed, active, focus changes),
event dispatch (per event type, listener faults), frame pacing (frames
rendered, render duration, skipped ticks) and the inspection API.

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

The core packages (wm, desktop) depend on small recorder interfaces that
*Metrics satisfies; they fall back to no-op recorders when none is supplied.
*/
package monitoring
