package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"vhdlcheck/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line as
//
//	<severity> <CODE> <path>:<line>:<col> <message>
//
// Notes follow their diagnostic with severity "note" when includeNotes is set.
// With sorted=false the input order is kept, which for the homograph check is
// declaration order.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes, sorted bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendDiagnostic(rendered, d, fs, includeNotes)
	}

	if sorted {
		sort.SliceStable(rendered, func(i, j int) bool {
			di, dj := rendered[i], rendered[j]
			if di.Path != dj.Path {
				return di.Path < dj.Path
			}
			if di.Line != dj.Line {
				return di.Line < dj.Line
			}
			return di.Column < dj.Column
		})
	}

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []shortDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []shortDiagnostic {
	loc := resolveSpan(fs, d.Primary)
	out = append(out, shortDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     loc.Path,
		Line:     loc.Line,
		Column:   loc.Column,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			nloc := resolveSpan(fs, note.Span)
			out = append(out, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     nloc.Path,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) resolvedSpan {
	path := "<unknown>"
	if file := fs.Get(span.File); file != nil {
		path = normalizePath(file.FormatPath("relative", fs.BaseDir()))
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{Path: path, Line: start.Line, Column: start.Col}
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
