// Package testkit holds assertions shared by tests of packages that build
// design units from documents.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on lowered units:
// 1) every identifier span points at sf and is not reversed
// 2) every identifier span lies within sf's content, unless sf is virtual
// 3) a non-empty unit span covers the identifiers of its unit
func CheckSpanInvariants(units []*ast.DesignUnit, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil source file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	virtual := sf.Flags&source.FileVirtual != 0

	for i, unit := range units {
		if unit == nil || unit.Unit == nil {
			return fmt.Errorf("units[%d]: nil unit", i)
		}
		var idents []ast.Ident
		collectUnit(unit.Unit, &idents)
		for _, id := range idents {
			sp := id.Span
			if sp.File != sf.ID {
				return fmt.Errorf("units[%d]: span %v points to file %d, want %d", i, sp, sp.File, sf.ID)
			}
			if sp.End < sp.Start {
				return fmt.Errorf("units[%d]: reversed span %v", i, sp)
			}
			if !virtual && sp.End > lenContent {
				return fmt.Errorf("units[%d]: span %v beyond content (%d bytes)", i, sp, lenContent)
			}
			if !unit.Span.Empty() && !unit.Span.Contains(sp) {
				return fmt.Errorf("units[%d]: unit span %v does not cover %v", i, unit.Span, sp)
			}
		}
	}
	return nil
}

func collectUnit(u ast.LibraryUnit, out *[]ast.Ident) {
	*out = append(*out, u.UnitName())
	switch u := u.(type) {
	case *ast.PackageDeclaration:
		collectInterfaces(u.Generics, out)
		collectDecls(u.Decls, out)
	case *ast.PackageBody:
		collectDecls(u.Decls, out)
	case *ast.EntityDeclaration:
		collectInterfaces(u.Generics, out)
		collectInterfaces(u.Ports, out)
		collectDecls(u.Decls, out)
	case *ast.ArchitectureBody:
		collectDecls(u.Decls, out)
	}
}

func collectDecls(decls []ast.Declaration, out *[]ast.Ident) {
	for _, d := range decls {
		switch d := d.(type) {
		case *ast.ObjectDecl:
			*out = append(*out, d.Ident)
		case *ast.FileDecl:
			*out = append(*out, d.Ident)
		case *ast.AliasDecl:
			*out = append(*out, d.Designator)
		case *ast.AttributeDecl:
			*out = append(*out, d.Ident)
		case *ast.ComponentDecl:
			*out = append(*out, d.Ident)
			collectInterfaces(d.Generics, out)
			collectInterfaces(d.Ports, out)
		case *ast.SubprogramDecl:
			collectSpec(d.Spec, out)
		case *ast.SubprogramBody:
			collectSpec(d.Spec, out)
			collectDecls(d.Decls, out)
		case *ast.NestedPackage:
			if d.Package != nil {
				collectUnit(d.Package, out)
			}
		case *ast.TypeDecl:
			*out = append(*out, d.Ident)
			collectTypeDef(d.Def, out)
		}
	}
}

func collectTypeDef(def ast.TypeDefinition, out *[]ast.Ident) {
	switch def := def.(type) {
	case *ast.ProtectedType:
		for _, item := range def.Items {
			if p, ok := item.(*ast.ProtectedSubprogram); ok {
				collectSpec(p.Spec, out)
			}
		}
	case *ast.ProtectedBody:
		collectDecls(def.Decls, out)
	case *ast.RecordType:
		for _, el := range def.Elements {
			*out = append(*out, el.Ident)
		}
	case *ast.EnumerationType:
		*out = append(*out, def.Literals...)
	case *ast.PhysicalType:
		*out = append(*out, def.Units...)
	}
}

func collectInterfaces(list []ast.InterfaceDecl, out *[]ast.Ident) {
	for _, decl := range list {
		switch decl := decl.(type) {
		case *ast.InterfaceObject:
			*out = append(*out, decl.Ident)
		case *ast.InterfaceFile:
			*out = append(*out, decl.Ident)
		case *ast.InterfaceType:
			*out = append(*out, decl.Ident)
		case *ast.InterfaceSubprogram:
			collectSpec(decl.Spec, out)
		}
	}
}

func collectSpec(spec ast.SubprogramSpec, out *[]ast.Ident) {
	if spec == nil {
		return
	}
	*out = append(*out, spec.Designator())
	collectInterfaces(spec.Parameters(), out)
}
