package ast

import (
	"vhdlcheck/internal/source"
)

// Builder creates identifiers for one source file, interning names with VHDL
// rules. It is used by the unit-document decoder and by tests.
type Builder struct {
	Strings *source.Interner
	File    source.FileID
}

func NewBuilder(strs *source.Interner, file source.FileID) *Builder {
	if strs == nil {
		strs = source.NewInterner()
	}
	return &Builder{Strings: strs, File: file}
}

// Ident interns name and attaches the byte range [start, end).
func (b *Builder) Ident(name string, start, end uint32) Ident {
	return Ident{
		Name: b.Strings.InternIdent(name),
		Span: b.Span(start, end),
	}
}

func (b *Builder) Span(start, end uint32) source.Span {
	return source.Span{File: b.File, Start: start, End: end}
}

// Name returns the display spelling of id.
func (b *Builder) Name(id Ident) string {
	s, _ := b.Strings.Lookup(id.Name)
	return s
}
