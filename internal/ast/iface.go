package ast

// InterfaceDecl is an entry of a generic clause, port clause or parameter list.
type InterfaceDecl interface {
	isInterfaceDecl()
}

type InterfaceObject struct {
	Class   ObjectClass
	Mode    Mode
	Ident   Ident
	Subtype string
}

type InterfaceFile struct {
	Ident   Ident
	Subtype string
}

// InterfaceType is a VHDL-2008 generic type.
type InterfaceType struct {
	Ident Ident
}

// InterfaceSubprogram is a VHDL-2008 generic subprogram.
type InterfaceSubprogram struct {
	Spec SubprogramSpec
}

func (*InterfaceObject) isInterfaceDecl()     {}
func (*InterfaceFile) isInterfaceDecl()       {}
func (*InterfaceType) isInterfaceDecl()       {}
func (*InterfaceSubprogram) isInterfaceDecl() {}
