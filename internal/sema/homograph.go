package sema

import (
	"fmt"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/source"
)

// Options configures a homograph check.
type Options struct {
	Reporter diag.Reporter
	// Strings resolves names for messages; it should be the interner the AST
	// was built with.
	Strings *source.Interner
}

// Checker walks declarative regions and reports homographs. It keeps no state
// between regions; one Checker may be reused for any number of units but not
// from several goroutines unless the Reporter allows it.
type Checker struct {
	reporter diag.Reporter
	strings  *source.Interner
}

// NewChecker returns a Checker reporting to opts.Reporter, or discarding
// diagnostics when it is nil.
func NewChecker(opts Options) *Checker {
	r := opts.Reporter
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Checker{reporter: r, strings: opts.Strings}
}

// CheckDesignUnit reports every homograph in unit. Unit kinds without
// declarative regions of their own (configurations, package instances,
// contexts) and nil units are accepted and produce nothing.
func CheckDesignUnit(unit *ast.DesignUnit, opts Options) {
	NewChecker(opts).CheckDesignUnit(unit)
}

// CheckDesignUnit is the package-level CheckDesignUnit on c's reporter.
func (c *Checker) CheckDesignUnit(unit *ast.DesignUnit) {
	if unit == nil {
		return
	}
	switch u := unit.Unit.(type) {
	case *ast.PackageDeclaration:
		c.checkPackageDeclaration(u)
	case *ast.PackageBody:
		c.checkPackageBody(u)
	case *ast.EntityDeclaration:
		c.checkEntityDeclaration(u)
	case *ast.ArchitectureBody:
		c.checkArchitectureBody(u)
	}
}

func (c *Checker) checkPackageDeclaration(pkg *ast.PackageDeclaration) {
	c.checkDeclarativePartUniqueIdent(pkg.Decls)
}

func (c *Checker) checkPackageBody(body *ast.PackageBody) {
	c.checkDeclarativePartUniqueIdent(body.Decls)
}

func (c *Checker) checkArchitectureBody(arch *ast.ArchitectureBody) {
	c.checkDeclarativePartUniqueIdent(arch.Decls)
	// TODO: declarative parts of block, generate and process statements
}

func (c *Checker) checkEntityDeclaration(ent *ast.EntityDeclaration) {
	if ent.Generics != nil {
		c.checkInterfaceListUniqueIdent(ent.Generics)
	}
	if ent.Ports != nil {
		c.checkInterfaceListUniqueIdent(ent.Ports)
	}
	c.checkDeclarativePartUniqueIdent(ent.Decls)
}

// checkInterfaceListUniqueIdent checks one generic, port or parameter list.
func (c *Checker) checkInterfaceListUniqueIdent(list []ast.InterfaceDecl) {
	idents := newScope(len(list))
	for _, decl := range list {
		if id, ok := interfaceIdent(decl); ok {
			c.checkUnique(idents, id)
		}
	}
}

// checkElementDeclarationUniqueIdent checks the fields of one record type.
func (c *Checker) checkElementDeclarationUniqueIdent(elements []ast.ElementDecl) {
	idents := newScope(len(elements))
	for _, el := range elements {
		c.checkUnique(idents, el.Ident)
	}
}

// checkDeclarativePartUniqueIdent checks one declarative part and every
// region nested in it. Nested regions get their own scope; a name may be
// redeclared there freely.
func (c *Checker) checkDeclarativePartUniqueIdent(decls []ast.Declaration) {
	idents := newScope(len(decls))
	for _, decl := range decls {
		if id, ok := declIdent(decl); ok {
			c.checkUnique(idents, id)
		}

		switch d := decl.(type) {
		case *ast.ComponentDecl:
			c.checkInterfaceListUniqueIdent(d.Generics)
			c.checkInterfaceListUniqueIdent(d.Ports)
		case *ast.SubprogramBody:
			c.checkSubprogramSpec(d.Spec)
			c.checkDeclarativePartUniqueIdent(d.Decls)
		case *ast.SubprogramDecl:
			c.checkSubprogramSpec(d.Spec)
		case *ast.TypeDecl:
			c.checkTypeDefinition(d.Def)
		}
	}
}

func (c *Checker) checkTypeDefinition(def ast.TypeDefinition) {
	switch def := def.(type) {
	case *ast.ProtectedBody:
		c.checkDeclarativePartUniqueIdent(def.Decls)
	case *ast.ProtectedType:
		for _, item := range def.Items {
			switch item := item.(type) {
			case *ast.ProtectedSubprogram:
				c.checkSubprogramSpec(item.Spec)
			}
		}
	case *ast.RecordType:
		c.checkElementDeclarationUniqueIdent(def.Elements)
	}
}

func (c *Checker) checkSubprogramSpec(spec ast.SubprogramSpec) {
	if spec == nil {
		return
	}
	c.checkInterfaceListUniqueIdent(spec.Parameters())
}

func (c *Checker) checkUnique(idents scope, id ast.Ident) {
	dup, found := idents.check(id)
	if !found {
		return
	}
	msg := fmt.Sprintf("Duplicate declaration of '%s'", c.name(dup.Name))
	diag.ReportError(c.reporter, diag.SemaDuplicateDeclaration, dup.Span, msg).
		WithNote(dup.Previous, "Previously defined here").
		Emit()
}

func (c *Checker) name(id source.StringID) string {
	if c.strings != nil {
		if s, ok := c.strings.Lookup(id); ok {
			return s
		}
	}
	return fmt.Sprintf("#%d", id)
}
