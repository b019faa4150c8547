package ast

import "vhdlcheck/internal/source"

// Ident is an interned name plus where it was written. Two identifiers denote
// the same name iff their Name values are equal.
type Ident struct {
	Name source.StringID
	Span source.Span
}

// IsValid reports whether the identifier carries a name.
func (id Ident) IsValid() bool {
	return id.Name != source.NoStringID
}

// ObjectClass is the class of an object or interface object declaration.
type ObjectClass uint8

const (
	ClassConstant ObjectClass = iota
	ClassSignal
	ClassVariable
	ClassSharedVariable
)

func (c ObjectClass) String() string {
	switch c {
	case ClassConstant:
		return "constant"
	case ClassSignal:
		return "signal"
	case ClassVariable:
		return "variable"
	case ClassSharedVariable:
		return "shared variable"
	}
	return "unknown"
}

// Mode is the direction of an interface object.
type Mode uint8

const (
	ModeIn Mode = iota
	ModeOut
	ModeInout
	ModeBuffer
	ModeLinkage
)

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	case ModeInout:
		return "inout"
	case ModeBuffer:
		return "buffer"
	case ModeLinkage:
		return "linkage"
	}
	return "unknown"
}
