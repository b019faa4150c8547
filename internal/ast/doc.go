// Package ast holds the VHDL declaration taxonomy consumed by semantic checks.
//
// Every sum type (Declaration, TypeDefinition, InterfaceDecl, SubprogramSpec,
// ProtectedItem, LibraryUnit) is sealed with an unexported marker method, so
// its variants are exactly the ones declared here. Consumers switch on the
// concrete pointer types. Nodes are built by the caller and treated as
// read-only by the checks.
package ast
