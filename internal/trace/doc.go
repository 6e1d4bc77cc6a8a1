// Package trace records what the linter is doing while it runs.
//
// Tracing is off unless the CLI asks for it:
//
//	effectlint analyze --trace=- --trace-level=phase src/
//
// Tracers:
//
//   - Nop: disabled tracing, no allocation per event
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the most recent events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// Levels gate scopes: phase emits driver and pass spans, detail adds one
// span per file, debug adds node-level points.
//
// The tracer travels in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
