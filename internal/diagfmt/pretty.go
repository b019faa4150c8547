package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes each diagnostic in bag order as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline under the span, and then
// the notes in the same shape. Sort the bag first for file order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, opts, p, p.caret)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			nstart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				p.note.Sprint("note:"),
				formatPath(fs, note.Span.File, opts.PathMode), nstart.Line, nstart.Col,
				note.Msg)
			writeSnippet(w, fs, note.Span, opts, p, p.note)
		}
	}
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette, caret *color.Color) {
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- non-negative int8
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	lines := uint32(len(f.LineIdx)) + 1 // #nosec G115 -- bounded by FileSet.Add
	if f.Content[len(f.Content)-1] == '\n' {
		lines--
	}
	last := max(min(start.Line+ctx, lines), start.Line)
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		raw := f.GetLine(ln)
		col := min(int(start.Col-1), len(raw))
		stop := len(raw)
		if end.Line == start.Line {
			stop = min(int(end.Col-1), len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:col]))
		width := max(runewidth.StringWidth(expandTabs(raw[col:max(stop, col)])), 1)
		underline := "^" + strings.Repeat("~", width-1)
		if opts.Width > 0 && pad+width > int(opts.Width) {
			width = max(int(opts.Width)-pad, 1)
			underline = "^" + strings.Repeat("~", width-1)
		}
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), caret.Sprint(underline))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
