package sema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/source"
)

// code is VHDL-looking text whose identifiers tests point at by occurrence,
// so every ident in a hand-built AST carries a real span.
type code struct {
	t   *testing.T
	src string
	fs  *source.FileSet
	b   *ast.Builder
}

func newCode(t *testing.T, src string) *code {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual("test.vhd", []byte(src))
	return &code{t: t, src: src, fs: fs, b: ast.NewBuilder(source.NewInterner(), file)}
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// s returns the occurrence-th (1-based) whole-word match of name.
func (c *code) s(name string, occurrence int) ast.Ident {
	c.t.Helper()
	from := 0
	for seen := 0; ; {
		idx := strings.Index(c.src[from:], name)
		if idx < 0 {
			c.t.Fatalf("occurrence %d of %q not found", occurrence, name)
		}
		start := from + idx
		end := start + len(name)
		from = end
		if start > 0 && isIdentByte(c.src[start-1]) || end < len(c.src) && isIdentByte(c.src[end]) {
			continue
		}
		seen++
		if seen == occurrence {
			return c.b.Ident(name, uint32(start), uint32(end))
		}
	}
}

func (c *code) s1(name string) ast.Ident {
	c.t.Helper()
	return c.s(name, 1)
}

func (c *code) constant(name string, occurrence int) *ast.ObjectDecl {
	c.t.Helper()
	return &ast.ObjectDecl{Class: ast.ClassConstant, Ident: c.s(name, occurrence), Subtype: "natural"}
}

func (c *code) param(name string, occurrence int) ast.InterfaceDecl {
	c.t.Helper()
	return &ast.InterfaceObject{Class: ast.ClassConstant, Mode: ast.ModeIn, Ident: c.s(name, occurrence), Subtype: "natural"}
}

func (c *code) element(name string, occurrence int) ast.ElementDecl {
	c.t.Helper()
	return ast.ElementDecl{Ident: c.s(name, occurrence), Subtype: "natural"}
}

func (c *code) typeDecl(name string, occurrence int, def ast.TypeDefinition) *ast.TypeDecl {
	c.t.Helper()
	return &ast.TypeDecl{Ident: c.s(name, occurrence), Def: def}
}

func (c *code) procedure(name string, occurrence int, params ...ast.InterfaceDecl) *ast.ProcedureSpec {
	c.t.Helper()
	return &ast.ProcedureSpec{Name: c.s(name, occurrence), Params: params}
}

func (c *code) function(name string, occurrence int, params ...ast.InterfaceDecl) *ast.FunctionSpec {
	c.t.Helper()
	return &ast.FunctionSpec{Name: c.s(name, occurrence), Params: params, Return: "natural"}
}

func (c *code) options(bag *diag.Bag) Options {
	return Options{Reporter: diag.BagReporter{Bag: bag}, Strings: c.b.Strings}
}

func (c *code) declarativePart(decls ...ast.Declaration) []*diag.Diagnostic {
	bag := diag.NewBag(100)
	NewChecker(c.options(bag)).checkDeclarativePartUniqueIdent(decls)
	return bag.Items()
}

func (c *code) designUnit(unit ast.LibraryUnit) []*diag.Diagnostic {
	bag := diag.NewBag(100)
	CheckDesignUnit(&ast.DesignUnit{Unit: unit}, c.options(bag))
	return bag.Items()
}

func duplicate(dup, first ast.Ident, name string) *diag.Diagnostic {
	return diag.NewError(diag.SemaDuplicateDeclaration, dup.Span, fmt.Sprintf("Duplicate declaration of '%s'", name)).
		WithNote(first.Span, "Previously defined here")
}

// expectedMessages builds the diagnostics for names a1, b1, c1, ... each
// declared twice, in that order.
func (c *code) expectedMessages(num int) []*diag.Diagnostic {
	c.t.Helper()
	out := make([]*diag.Diagnostic, 0, num)
	for i := range num {
		name := fmt.Sprintf("%c1", 'a'+i)
		out = append(out, duplicate(c.s(name, 2), c.s1(name), name))
	}
	return out
}

func checkNoMessages(t *testing.T, got []*diag.Diagnostic) {
	t.Helper()
	if len(got) != 0 {
		t.Fatalf("expected no diagnostics, got %d: first %q at %s", len(got), got[0].Message, got[0].Primary)
	}
}

func checkMessages(t *testing.T, c *code, got, want []*diag.Diagnostic) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s\nwant:\n%s\n\ngot:\n%s", diff,
			diag.FormatShortDiagnostics(want, c.fs, true, false),
			diag.FormatShortDiagnostics(got, c.fs, true, false))
	}
}
