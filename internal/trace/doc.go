// Package trace is the logging layer of vhdlcheck: leveled span events that
// follow a check run from the CLI down to single declarative regions.
//
// Enable it with flags:
//
//	vhdlcheck check --trace=- --trace-level=detail build/ast
//
// A Tracer travels through context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "document", parentID)
//	defer span.End("")
//
// Levels gate scopes: phase shows driver and pass spans, detail adds one span
// per design unit, debug adds point events per declarative region. The ring
// tracer keeps the latest events in memory so a crash can dump them.
package trace
