package sema

import "vhdlcheck/internal/ast"

// declIdent returns the identifier d adds to its enclosing region's
// uniqueness set, if any.
func declIdent(d ast.Declaration) (ast.Ident, bool) {
	switch d := d.(type) {
	case *ast.ObjectDecl:
		return d.Ident, true
	case *ast.FileDecl:
		return d.Ident, true
	case *ast.ComponentDecl:
		return d.Ident, true
	case *ast.TypeDecl:
		switch d.Def.(type) {
		case *ast.IncompleteType, *ast.ProtectedBody:
			// completed or completing another declaration of the same name
			return ast.Ident{}, false
		}
		return d.Ident, true
	case *ast.SubprogramDecl, *ast.SubprogramBody:
		// overloading
		return ast.Ident{}, false
	case *ast.AliasDecl, *ast.AttributeDecl, *ast.UseClause, *ast.NestedPackage:
		// TODO: homographs of aliases, attributes, use clauses and nested packages are not checked
		return ast.Ident{}, false
	case *ast.ConfigurationSpec:
		return ast.Ident{}, false
	}
	return ast.Ident{}, false
}

// interfaceIdent is declIdent for interface lists.
func interfaceIdent(d ast.InterfaceDecl) (ast.Ident, bool) {
	switch d := d.(type) {
	case *ast.InterfaceObject:
		return d.Ident, true
	case *ast.InterfaceFile:
		return d.Ident, true
	case *ast.InterfaceType:
		return d.Ident, true
	case *ast.InterfaceSubprogram:
		return ast.Ident{}, false
	}
	return ast.Ident{}, false
}
