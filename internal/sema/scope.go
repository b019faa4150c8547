package sema

import (
	"fmt"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/source"
)

// DuplicateDeclaration is reported when a name is declared a second time in
// one region. Previous is always the first declaration of the name.
type DuplicateDeclaration struct {
	Name     source.StringID
	Span     source.Span
	Previous source.Span
}

func (d DuplicateDeclaration) Error() string {
	return fmt.Sprintf("duplicate declaration of name #%d at %s, previously defined at %s", d.Name, d.Span, d.Previous)
}

// scope maps each name of one declarative region to its first declaration.
type scope map[source.StringID]source.Span

func newScope(sizeHint int) scope {
	return make(scope, sizeHint)
}

// check declares id. The first span stays recorded, so every later
// occurrence is reported against the original declaration.
func (s scope) check(id ast.Ident) (DuplicateDeclaration, bool) {
	if prev, ok := s[id.Name]; ok {
		return DuplicateDeclaration{Name: id.Name, Span: id.Span, Previous: prev}, true
	}
	s[id.Name] = id.Span
	return DuplicateDeclaration{}, false
}
