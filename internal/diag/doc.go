// Package diag defines the diagnostic model shared by the checking passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short, human oriented text.
//   - Primary: the source.Span the problem is reported at.
//   - Notes: secondary spans with their own text, e.g. "Previously defined here".
//
// # Emitting diagnostics
//
// Passes write through a Reporter and never read back what they emitted.
// ReportError(...).WithNote(...).Emit() builds and sends one diagnostic;
// BagReporter appends into a Bag, which keeps insertion order and enforces the
// configured limit. Nothing in this package deduplicates.
//
// Package diag does no IO and no formatting beyond FormatShortDiagnostics;
// rendering lives in internal/diagfmt.
package diag
