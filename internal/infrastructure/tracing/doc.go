/*
Package tracing provides lightweight request tracing for debugging production issues.

# Overview

Each HTTP request and WebSocket stream gets a span carrying a trace ID that
is propagated through headers, so a shell can correlate its own logs with
desktop commands on the backend.

# Usage

	// Create tracer
	tracer := tracing.New("overlay", logger, 250*time.Millisecond)

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("desktop_id", desktopID)

# Trace Format

Traces use standard HTTP headers for propagation:
- X-Trace-ID: Unique identifier for entire request flow
- X-Span-ID: Identifier for current operation

Spans are collected through a buffered channel (1000 spans) and logged
asynchronously. Spans slower than the configured threshold are logged at
warn level, the rest at debug.
*/
package tracing
