/*
Package tracing provides lightweight request tracing for the desktop API.

Every API request gets a span. Spans carry a trace id that a client may
supply through the X-Trace-ID header, so a script driving the desktop can
correlate its own requests with the log lines they produced. Completed
spans are handed to a buffered collector goroutine and written through zap.

# Usage

	tracer := tracing.New("desktop-api", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Trace Format

  - X-Trace-ID: identifier for the whole request flow
  - X-Span-ID: identifier for the current operation

A full buffer drops spans rather than blocking the request.
*/
package tracing
