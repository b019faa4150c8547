package ast

// Declaration is an item of a declarative part. The set of variants is
// closed: every implementation lives in this file.
type Declaration interface {
	isDeclaration()
}

// ObjectDecl declares a constant, signal, variable or shared variable.
type ObjectDecl struct {
	Class   ObjectClass
	Ident   Ident
	Subtype string
}

type FileDecl struct {
	Ident   Ident
	Subtype string
}

type AliasDecl struct {
	Designator Ident
	Name       string
}

// AttributeDecl covers both attribute declarations and attribute
// specifications (Spec set).
type AttributeDecl struct {
	Ident Ident
	Spec  bool
}

type ComponentDecl struct {
	Ident    Ident
	Generics []InterfaceDecl
	Ports    []InterfaceDecl
}

// SubprogramDecl is a subprogram specification without a body.
type SubprogramDecl struct {
	Spec SubprogramSpec
}

type SubprogramBody struct {
	Spec  SubprogramSpec
	Decls []Declaration
}

type UseClause struct {
	Names []string
}

// NestedPackage is a package declaration inside another declarative part.
type NestedPackage struct {
	Package *PackageDeclaration
}

// ConfigurationSpec is a "for <inst> : <comp> use ..." specification.
type ConfigurationSpec struct {
	Instances []string
	Component string
}

type TypeDecl struct {
	Ident Ident
	Def   TypeDefinition
}

func (*ObjectDecl) isDeclaration()        {}
func (*FileDecl) isDeclaration()          {}
func (*AliasDecl) isDeclaration()         {}
func (*AttributeDecl) isDeclaration()     {}
func (*ComponentDecl) isDeclaration()     {}
func (*SubprogramDecl) isDeclaration()    {}
func (*SubprogramBody) isDeclaration()    {}
func (*UseClause) isDeclaration()         {}
func (*NestedPackage) isDeclaration()     {}
func (*ConfigurationSpec) isDeclaration() {}
func (*TypeDecl) isDeclaration()          {}

// DeclKind returns a short lower-case name for d's variant.
func DeclKind(d Declaration) string {
	switch d.(type) {
	case *ObjectDecl:
		return "object"
	case *FileDecl:
		return "file"
	case *AliasDecl:
		return "alias"
	case *AttributeDecl:
		return "attribute"
	case *ComponentDecl:
		return "component"
	case *SubprogramDecl:
		return "subprogram_decl"
	case *SubprogramBody:
		return "subprogram_body"
	case *UseClause:
		return "use"
	case *NestedPackage:
		return "package"
	case *ConfigurationSpec:
		return "configuration"
	case *TypeDecl:
		return "type"
	}
	return "unknown"
}
