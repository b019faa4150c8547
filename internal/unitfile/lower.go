package unitfile

import (
	"fmt"

	"fortio.org/safecast"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/source"
)

// Lower converts the wire document into design units, interning names through
// b. When fs holds b.File as a real (non-virtual) file every span is checked
// against its length.
func Lower(doc *Document, b *ast.Builder, fs *source.FileSet) ([]*ast.DesignUnit, error) {
	l := &lowerer{b: b}
	if fs != nil {
		if f := fs.Get(b.File); f != nil && f.Flags&source.FileVirtual == 0 {
			l.fs = fs
		}
	}
	units := make([]*ast.DesignUnit, 0, len(doc.Units))
	for i := range doc.Units {
		u, err := l.designUnit(&doc.Units[i], fmt.Sprintf("units[%d]", i))
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

type lowerer struct {
	b  *ast.Builder
	fs *source.FileSet
}

func (l *lowerer) span(path string, start, end uint64) (source.Span, error) {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return source.Span{}, &PathError{Path: path, Msg: fmt.Sprintf("start offset %d: %v", start, err), Err: ErrBadSpan}
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return source.Span{}, &PathError{Path: path, Msg: fmt.Sprintf("end offset %d: %v", end, err), Err: ErrBadSpan}
	}
	sp := l.b.Span(s, e)
	if e < s || l.fs != nil && !l.fs.InBounds(sp) {
		return source.Span{}, &PathError{Path: path, Msg: fmt.Sprintf("span %d..%d outside source", start, end), Err: ErrBadSpan}
	}
	return sp, nil
}

func (l *lowerer) ident(path string, id *Ident) (ast.Ident, error) {
	if id == nil || id.Name == "" {
		return ast.Ident{}, &PathError{Path: path, Msg: "missing identifier", Err: ErrMissingIdent}
	}
	sp, err := l.span(path, id.Start, id.End)
	if err != nil {
		return ast.Ident{}, err
	}
	return ast.Ident{Name: l.b.Strings.InternIdent(id.Name), Span: sp}, nil
}

// optIdent is ident for names that may be absent (e.g. an unnamed unit).
func (l *lowerer) optIdent(path string, id *Ident) (ast.Ident, error) {
	if id == nil {
		return ast.Ident{}, nil
	}
	return l.ident(path, id)
}

func (l *lowerer) idents(path string, ids []Ident) ([]ast.Ident, error) {
	out := make([]ast.Ident, 0, len(ids))
	for i := range ids {
		id, err := l.ident(fmt.Sprintf("%s[%d]", path, i), &ids[i])
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (l *lowerer) designUnit(u *Unit, path string) (*ast.DesignUnit, error) {
	out := &ast.DesignUnit{}
	if u.End != 0 {
		sp, err := l.span(path, u.Start, u.End)
		if err != nil {
			return nil, err
		}
		out.Span = sp
	}
	ctx, err := l.contextItems(path+".context", u.Context)
	if err != nil {
		return nil, err
	}
	out.Context = ctx
	lib, err := l.libraryUnit(u, path)
	if err != nil {
		return nil, err
	}
	out.Unit = lib
	return out, nil
}

func (l *lowerer) contextItems(path string, items []ContextItem) ([]ast.ContextItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]ast.ContextItem, 0, len(items))
	for i, item := range items {
		var kind ast.ContextKind
		switch item.Kind {
		case "library":
			kind = ast.ContextLibrary
		case "use":
			kind = ast.ContextUse
		case "context":
			kind = ast.ContextReference
		default:
			return nil, unknownKind(fmt.Sprintf("%s[%d]", path, i), "context item kind", item.Kind)
		}
		out = append(out, ast.ContextItem{Kind: kind, Names: item.Names})
	}
	return out, nil
}

func (l *lowerer) libraryUnit(u *Unit, path string) (ast.LibraryUnit, error) {
	name, err := l.optIdent(path+".ident", u.Ident)
	if err != nil {
		return nil, err
	}
	switch u.Kind {
	case "package":
		generics, err := l.interfaceList(path+".generics", u.Generics)
		if err != nil {
			return nil, err
		}
		decls, err := l.declarativePart(path+".decls", u.Decls)
		if err != nil {
			return nil, err
		}
		return &ast.PackageDeclaration{Ident: name, Generics: generics, Decls: decls}, nil
	case "package_body":
		decls, err := l.declarativePart(path+".decls", u.Decls)
		if err != nil {
			return nil, err
		}
		return &ast.PackageBody{Ident: name, Decls: decls}, nil
	case "entity":
		generics, err := l.interfaceList(path+".generics", u.Generics)
		if err != nil {
			return nil, err
		}
		ports, err := l.interfaceList(path+".ports", u.Ports)
		if err != nil {
			return nil, err
		}
		decls, err := l.declarativePart(path+".decls", u.Decls)
		if err != nil {
			return nil, err
		}
		return &ast.EntityDeclaration{Ident: name, Generics: generics, Ports: ports, Decls: decls}, nil
	case "architecture":
		entity, err := l.optIdent(path+".entity", u.Entity)
		if err != nil {
			return nil, err
		}
		decls, err := l.declarativePart(path+".decls", u.Decls)
		if err != nil {
			return nil, err
		}
		return &ast.ArchitectureBody{Ident: name, Entity: entity, Decls: decls}, nil
	case "configuration":
		entity, err := l.optIdent(path+".entity", u.Entity)
		if err != nil {
			return nil, err
		}
		return &ast.Configuration{Ident: name, Entity: entity}, nil
	case "package_instance":
		return &ast.PackageInstance{Ident: name, Package: u.Package}, nil
	case "context":
		items, err := l.contextItems(path+".items", u.Items)
		if err != nil {
			return nil, err
		}
		return &ast.ContextDeclaration{Ident: name, Items: items}, nil
	}
	return nil, unknownKind(path, "unit kind", u.Kind)
}

// interfaceList keeps nil for an absent clause; an empty clause stays empty.
func (l *lowerer) interfaceList(path string, list []Interface) ([]ast.InterfaceDecl, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]ast.InterfaceDecl, 0, len(list))
	for i := range list {
		d, err := l.interfaceDecl(&list[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (l *lowerer) interfaceDecl(d *Interface, path string) (ast.InterfaceDecl, error) {
	switch d.Kind {
	case "object":
		class, err := objectClass(path, d.Class)
		if err != nil {
			return nil, err
		}
		mode, err := interfaceMode(path, d.Mode)
		if err != nil {
			return nil, err
		}
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceObject{Class: class, Mode: mode, Ident: id, Subtype: d.Subtype}, nil
	case "file":
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceFile{Ident: id, Subtype: d.Subtype}, nil
	case "type":
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceType{Ident: id}, nil
	case "subprogram":
		spec, err := l.subprogram(path+".subprogram", d.Subprogram)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceSubprogram{Spec: spec}, nil
	}
	return nil, unknownKind(path, "interface kind", d.Kind)
}

func objectClass(path, class string) (ast.ObjectClass, error) {
	switch class {
	case "", "constant":
		return ast.ClassConstant, nil
	case "signal":
		return ast.ClassSignal, nil
	case "variable":
		return ast.ClassVariable, nil
	case "shared_variable", "shared variable":
		return ast.ClassSharedVariable, nil
	}
	return 0, unknownKind(path, "object class", class)
}

func interfaceMode(path, mode string) (ast.Mode, error) {
	switch mode {
	case "", "in":
		return ast.ModeIn, nil
	case "out":
		return ast.ModeOut, nil
	case "inout":
		return ast.ModeInout, nil
	case "buffer":
		return ast.ModeBuffer, nil
	case "linkage":
		return ast.ModeLinkage, nil
	}
	return 0, unknownKind(path, "mode", mode)
}

func (l *lowerer) subprogram(path string, s *Subprogram) (ast.SubprogramSpec, error) {
	if s == nil {
		return nil, &PathError{Path: path, Msg: "missing subprogram specification", Err: ErrMissingIdent}
	}
	name, err := l.ident(path+".ident", s.Ident)
	if err != nil {
		return nil, err
	}
	params, err := l.interfaceList(path+".params", s.Params)
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case "procedure":
		return &ast.ProcedureSpec{Name: name, Params: params}, nil
	case "function":
		return &ast.FunctionSpec{Name: name, Params: params, Return: s.Return, Impure: s.Impure}, nil
	}
	return nil, unknownKind(path, "subprogram kind", s.Kind)
}

func (l *lowerer) declarativePart(path string, decls []Decl) ([]ast.Declaration, error) {
	out := make([]ast.Declaration, 0, len(decls))
	for i := range decls {
		d, err := l.declaration(&decls[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (l *lowerer) declaration(d *Decl, path string) (ast.Declaration, error) {
	switch d.Kind {
	case "object":
		class, err := objectClass(path, d.Class)
		if err != nil {
			return nil, err
		}
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectDecl{Class: class, Ident: id, Subtype: d.Subtype}, nil
	case "file":
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.FileDecl{Ident: id, Subtype: d.Subtype}, nil
	case "alias":
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.AliasDecl{Designator: id, Name: d.Name}, nil
	case "attribute":
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.AttributeDecl{Ident: id, Spec: d.Spec}, nil
	case "component":
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		generics, err := l.interfaceList(path+".generics", d.Generics)
		if err != nil {
			return nil, err
		}
		ports, err := l.interfaceList(path+".ports", d.Ports)
		if err != nil {
			return nil, err
		}
		return &ast.ComponentDecl{Ident: id, Generics: generics, Ports: ports}, nil
	case "subprogram_decl":
		spec, err := l.subprogram(path+".subprogram", d.Subprogram)
		if err != nil {
			return nil, err
		}
		return &ast.SubprogramDecl{Spec: spec}, nil
	case "subprogram_body":
		spec, err := l.subprogram(path+".subprogram", d.Subprogram)
		if err != nil {
			return nil, err
		}
		decls, err := l.declarativePart(path+".decls", d.Decls)
		if err != nil {
			return nil, err
		}
		return &ast.SubprogramBody{Spec: spec, Decls: decls}, nil
	case "use":
		return &ast.UseClause{Names: d.Names}, nil
	case "package":
		if d.Package == nil {
			return nil, &PathError{Path: path + ".package", Msg: "missing package declaration", Err: ErrMissingIdent}
		}
		nested := *d.Package
		if nested.Kind == "" {
			nested.Kind = "package"
		}
		lib, err := l.libraryUnit(&nested, path+".package")
		if err != nil {
			return nil, err
		}
		pkg, ok := lib.(*ast.PackageDeclaration)
		if !ok {
			return nil, unknownKind(path+".package", "nested package kind", nested.Kind)
		}
		return &ast.NestedPackage{Package: pkg}, nil
	case "configuration":
		return &ast.ConfigurationSpec{Instances: d.Instances, Component: d.Component}, nil
	case "type":
		id, err := l.ident(path+".ident", d.Ident)
		if err != nil {
			return nil, err
		}
		def, err := l.typeDefinition(path+".def", d.Def)
		if err != nil {
			return nil, err
		}
		return &ast.TypeDecl{Ident: id, Def: def}, nil
	}
	return nil, unknownKind(path, "declaration kind", d.Kind)
}

func (l *lowerer) typeDefinition(path string, def *TypeDef) (ast.TypeDefinition, error) {
	if def == nil {
		// "type t;"
		return &ast.IncompleteType{}, nil
	}
	switch def.Kind {
	case "incomplete":
		return &ast.IncompleteType{}, nil
	case "protected":
		items := make([]ast.ProtectedItem, 0, len(def.Items))
		for i := range def.Items {
			spec, err := l.subprogram(fmt.Sprintf("%s.items[%d]", path, i), &def.Items[i])
			if err != nil {
				return nil, err
			}
			items = append(items, &ast.ProtectedSubprogram{Spec: spec})
		}
		return &ast.ProtectedType{Items: items}, nil
	case "protected_body":
		decls, err := l.declarativePart(path+".decls", def.Decls)
		if err != nil {
			return nil, err
		}
		return &ast.ProtectedBody{Decls: decls}, nil
	case "record":
		elements := make([]ast.ElementDecl, 0, len(def.Elements))
		for i, el := range def.Elements {
			id, err := l.ident(fmt.Sprintf("%s.elements[%d].ident", path, i), el.Ident)
			if err != nil {
				return nil, err
			}
			elements = append(elements, ast.ElementDecl{Ident: id, Subtype: el.Subtype})
		}
		return &ast.RecordType{Elements: elements}, nil
	case "enum":
		literals, err := l.idents(path+".literals", def.Literals)
		if err != nil {
			return nil, err
		}
		return &ast.EnumerationType{Literals: literals}, nil
	case "integer":
		return &ast.IntegerType{Range: def.Range}, nil
	case "physical":
		units, err := l.idents(path+".units", def.Units)
		if err != nil {
			return nil, err
		}
		return &ast.PhysicalType{Range: def.Range, Units: units}, nil
	case "array":
		return &ast.ArrayType{Indexes: def.Indexes, Element: def.Element}, nil
	case "access":
		return &ast.AccessType{Designated: def.Designated}, nil
	case "file":
		return &ast.FileTypeDef{Of: def.Of}, nil
	case "subtype":
		return &ast.SubtypeIndication{Subtype: def.Subtype}, nil
	}
	return nil, unknownKind(path, "type definition kind", def.Kind)
}
