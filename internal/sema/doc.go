// Package sema implements the homograph check for VHDL design units: within a
// single declarative region no two declarations may bind the same identifier.
//
// The check is split in three layers:
//
//   - scope (scope.go) records the first span seen for each name of one flat
//     region and reports later occurrences against it;
//   - declIdent/interfaceIdent (ident.go) decide which declarations
//     contribute a name at all;
//   - the Checker walk (homograph.go) maps a unit onto independent scopes,
//     descending into component interfaces, subprograms, protected types and
//     records.
//
// Subprograms are never compared because VHDL allows overloading. Incomplete
// types and protected type bodies complete an earlier declaration and are
// skipped as well. Alias, attribute, use and nested package declarations are
// not checked yet, nor are declarative parts inside concurrent statements.
package sema
