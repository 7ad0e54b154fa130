// Package trace records what a run of astpretty spends its time on.
//
// Enable it from the command line:
//
//	astpretty --trace=- --trace-level=file ./testdata
//
// # Tracers
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last events in memory and dumps them on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Events carry a scope. ScopeDriver covers a whole run, ScopePass covers the
// load, parse and format passes, ScopeFile covers one input file. The level
// decides which scopes are emitted: LevelPhase emits driver and pass events,
// LevelDetail adds per-file events.
//
// Tracers travel through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
