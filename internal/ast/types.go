package ast

// TypeDefinition is the right-hand side of a type (or subtype) declaration.
type TypeDefinition interface {
	isTypeDefinition()
}

// IncompleteType is the forward form "type t;".
type IncompleteType struct{}

// ProtectedType is the declaration part of a protected type. It only lists
// subprogram specifications.
type ProtectedType struct {
	Items []ProtectedItem
}

// ProtectedBody carries the declarative part of "protected body ... end".
type ProtectedBody struct {
	Decls []Declaration
}

type RecordType struct {
	Elements []ElementDecl
}

type EnumerationType struct {
	Literals []Ident
}

type IntegerType struct {
	Range string
}

type PhysicalType struct {
	Range string
	Units []Ident
}

type ArrayType struct {
	Indexes []string
	Element string
}

type AccessType struct {
	Designated string
}

type FileTypeDef struct {
	Of string
}

// SubtypeIndication is the definition of a "subtype s is ..." declaration.
type SubtypeIndication struct {
	Subtype string
}

func (*IncompleteType) isTypeDefinition()    {}
func (*ProtectedType) isTypeDefinition()     {}
func (*ProtectedBody) isTypeDefinition()     {}
func (*RecordType) isTypeDefinition()        {}
func (*EnumerationType) isTypeDefinition()   {}
func (*IntegerType) isTypeDefinition()       {}
func (*PhysicalType) isTypeDefinition()      {}
func (*ArrayType) isTypeDefinition()         {}
func (*AccessType) isTypeDefinition()        {}
func (*FileTypeDef) isTypeDefinition()       {}
func (*SubtypeIndication) isTypeDefinition() {}

// ProtectedItem is an entry of a protected type declaration.
type ProtectedItem interface {
	isProtectedItem()
}

type ProtectedSubprogram struct {
	Spec SubprogramSpec
}

func (*ProtectedSubprogram) isProtectedItem() {}

// ElementDecl is one record field.
type ElementDecl struct {
	Ident   Ident
	Subtype string
}
