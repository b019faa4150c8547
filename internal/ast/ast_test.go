package ast

import (
	"testing"

	"vhdlcheck/internal/source"
)

func TestBuilderIdentFoldsCase(t *testing.T) {
	b := NewBuilder(nil, source.FileID(3))
	a := b.Ident("Clk", 0, 3)
	c := b.Ident("CLK", 10, 13)

	if a.Name != c.Name {
		t.Fatal("basic identifiers must compare case-insensitively")
	}
	if c.Span != (source.Span{File: 3, Start: 10, End: 13}) {
		t.Fatalf("unexpected span %v", c.Span)
	}
	if got := b.Name(c); got != "Clk" {
		t.Fatalf("Name must return first spelling, got %q", got)
	}
	if !a.IsValid() || (Ident{}).IsValid() {
		t.Fatal("IsValid mismatch")
	}
}

func TestDeclKind(t *testing.T) {
	tests := []struct {
		decl Declaration
		want string
	}{
		{&ObjectDecl{}, "object"},
		{&FileDecl{}, "file"},
		{&AliasDecl{}, "alias"},
		{&AttributeDecl{}, "attribute"},
		{&ComponentDecl{}, "component"},
		{&SubprogramDecl{}, "subprogram_decl"},
		{&SubprogramBody{}, "subprogram_body"},
		{&UseClause{}, "use"},
		{&NestedPackage{}, "package"},
		{&ConfigurationSpec{}, "configuration"},
		{&TypeDecl{}, "type"},
	}
	for _, tt := range tests {
		if got := DeclKind(tt.decl); got != tt.want {
			t.Errorf("DeclKind(%T) = %q, want %q", tt.decl, got, tt.want)
		}
	}
}

func TestUnitKindAndName(t *testing.T) {
	name := Ident{Name: 7}
	units := map[string]LibraryUnit{
		"package":          &PackageDeclaration{Ident: name},
		"package_body":     &PackageBody{Ident: name},
		"entity":           &EntityDeclaration{Ident: name},
		"architecture":     &ArchitectureBody{Ident: name},
		"configuration":    &Configuration{Ident: name},
		"package_instance": &PackageInstance{Ident: name},
		"context":          &ContextDeclaration{Ident: name},
	}
	for want, u := range units {
		if got := UnitKind(u); got != want {
			t.Errorf("UnitKind(%T) = %q, want %q", u, got, want)
		}
		if u.UnitName() != name {
			t.Errorf("%T.UnitName() lost the identifier", u)
		}
	}
}

func TestSubprogramSpecAccessors(t *testing.T) {
	params := []InterfaceDecl{&InterfaceObject{Ident: Ident{Name: 1}}}
	specs := []SubprogramSpec{
		&FunctionSpec{Name: Ident{Name: 2}, Params: params, Return: "natural"},
		&ProcedureSpec{Name: Ident{Name: 2}, Params: params},
	}
	for _, s := range specs {
		if s.Designator().Name != 2 || len(s.Parameters()) != 1 {
			t.Errorf("%T accessors mismatch", s)
		}
	}
}
