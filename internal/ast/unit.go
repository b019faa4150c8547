package ast

import "vhdlcheck/internal/source"

// DesignUnit is one compilation unit: its context clause and library unit.
type DesignUnit struct {
	Context []ContextItem
	Unit    LibraryUnit
	Span    source.Span
}

type ContextKind uint8

const (
	ContextLibrary ContextKind = iota
	ContextUse
	ContextReference
)

type ContextItem struct {
	Kind  ContextKind
	Names []string
}

// LibraryUnit is the primary or secondary unit inside a DesignUnit.
type LibraryUnit interface {
	UnitName() Ident
	isLibraryUnit()
}

type PackageDeclaration struct {
	Ident    Ident
	Generics []InterfaceDecl
	Decls    []Declaration
}

type PackageBody struct {
	Ident Ident
	Decls []Declaration
}

// EntityDeclaration keeps Generics/Ports nil when the clause is absent.
type EntityDeclaration struct {
	Ident    Ident
	Generics []InterfaceDecl
	Ports    []InterfaceDecl
	Decls    []Declaration
}

type ArchitectureBody struct {
	Ident  Ident
	Entity Ident
	Decls  []Declaration
}

type Configuration struct {
	Ident  Ident
	Entity Ident
}

type PackageInstance struct {
	Ident   Ident
	Package string
}

type ContextDeclaration struct {
	Ident Ident
	Items []ContextItem
}

func (u *PackageDeclaration) UnitName() Ident { return u.Ident }
func (u *PackageBody) UnitName() Ident        { return u.Ident }
func (u *EntityDeclaration) UnitName() Ident  { return u.Ident }
func (u *ArchitectureBody) UnitName() Ident   { return u.Ident }
func (u *Configuration) UnitName() Ident      { return u.Ident }
func (u *PackageInstance) UnitName() Ident    { return u.Ident }
func (u *ContextDeclaration) UnitName() Ident { return u.Ident }

func (*PackageDeclaration) isLibraryUnit() {}
func (*PackageBody) isLibraryUnit()        {}
func (*EntityDeclaration) isLibraryUnit()  {}
func (*ArchitectureBody) isLibraryUnit()   {}
func (*Configuration) isLibraryUnit()      {}
func (*PackageInstance) isLibraryUnit()    {}
func (*ContextDeclaration) isLibraryUnit() {}

// UnitKind returns a short lower-case name for u's variant.
func UnitKind(u LibraryUnit) string {
	switch u.(type) {
	case *PackageDeclaration:
		return "package"
	case *PackageBody:
		return "package_body"
	case *EntityDeclaration:
		return "entity"
	case *ArchitectureBody:
		return "architecture"
	case *Configuration:
		return "configuration"
	case *PackageInstance:
		return "package_instance"
	case *ContextDeclaration:
		return "context"
	}
	return "unknown"
}
