package unitfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/source"
	"vhdlcheck/internal/testkit"
)

const entityDoc = `{
  "source": "alu.vhd",
  "units": [
    {
      "kind": "entity",
      "ident": {"name": "alu", "start": 7, "end": 10},
      "context": [{"kind": "library", "names": ["ieee"]}],
      "ports": [
        {"kind": "object", "class": "signal", "mode": "in", "ident": {"name": "clk", "start": 21, "end": 24}, "subtype": "bit"}
      ],
      "decls": [
        {"kind": "object", "class": "constant", "ident": {"name": "W", "start": 48, "end": 49}, "subtype": "natural"},
        {"kind": "type", "ident": {"name": "r_t", "start": 50, "end": 53}, "def": {"kind": "record", "elements": [{"ident": {"name": "f", "start": 54, "end": 55}, "subtype": "bit"}]}},
        {"kind": "type", "ident": {"name": "p_t", "start": 56, "end": 59}}
      ]
    }
  ]
}`

func lowerString(t *testing.T, doc string, fs *source.FileSet, file source.FileID) ([]*ast.DesignUnit, *ast.Builder, error) {
	t.Helper()
	parsed, err := Parse([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b := ast.NewBuilder(nil, file)
	units, err := Lower(parsed, b, fs)
	return units, b, err
}

func TestLowerEntity(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("alu.vhd", nil)
	units, b, err := lowerString(t, entityDoc, fs, file)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	ent, ok := units[0].Unit.(*ast.EntityDeclaration)
	if !ok {
		t.Fatalf("unit is %T, want *ast.EntityDeclaration", units[0].Unit)
	}
	if b.Name(ent.Ident) != "alu" || ent.Ident.Span != b.Span(7, 10) {
		t.Fatalf("entity ident = %q %v", b.Name(ent.Ident), ent.Ident.Span)
	}
	if ent.Generics != nil {
		t.Fatalf("absent generic clause should stay nil, got %v", ent.Generics)
	}
	if len(ent.Ports) != 1 {
		t.Fatalf("expected 1 port, got %d", len(ent.Ports))
	}
	port, ok := ent.Ports[0].(*ast.InterfaceObject)
	if !ok || port.Class != ast.ClassSignal || port.Mode != ast.ModeIn {
		t.Fatalf("unexpected port %#v", ent.Ports[0])
	}
	if got := ast.DeclKind(ent.Decls[1]); got != "type" {
		t.Fatalf("decls[1] kind = %q", got)
	}
	if _, ok := ent.Decls[2].(*ast.TypeDecl).Def.(*ast.IncompleteType); !ok {
		t.Fatalf("type without def should be incomplete, got %T", ent.Decls[2].(*ast.TypeDecl).Def)
	}
	want := []ast.ContextItem{{Kind: ast.ContextLibrary, Names: []string{"ieee"}}}
	if !reflect.DeepEqual(units[0].Context, want) {
		t.Fatalf("context = %#v", units[0].Context)
	}
}

func TestNamesAreInternedWithIdentifierRules(t *testing.T) {
	doc := `{"units": [{"kind": "package", "decls": [
	  {"kind": "object", "ident": {"name": "Foo", "start": 0, "end": 3}},
	  {"kind": "object", "ident": {"name": "FOO", "start": 4, "end": 7}}
	]}]}`
	fs := source.NewFileSet()
	units, _, err := lowerString(t, doc, fs, fs.AddVirtual("p.vhd", nil))
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	decls := units[0].Unit.(*ast.PackageDeclaration).Decls
	a := decls[0].(*ast.ObjectDecl).Ident.Name
	b := decls[1].(*ast.ObjectDecl).Ident.Name
	if a != b {
		t.Fatalf("Foo and FOO interned to %d and %d", a, b)
	}
}

func TestUnknownKindNamesPath(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "declaration",
			doc:  `{"units": [{"kind": "package", "decls": [{"kind": "use"}, {"kind": "foo"}]}]}`,
			want: `units[0].decls[1]: unknown declaration kind "foo"`,
		},
		{
			name: "unit",
			doc:  `{"units": [{"kind": "package"}, {"kind": "bar"}]}`,
			want: `units[1]: unknown unit kind "bar"`,
		},
		{
			name: "nested parameter",
			doc: `{"units": [{"kind": "package_body", "decls": [{"kind": "subprogram_body",
			  "subprogram": {"kind": "procedure", "ident": {"name": "p", "start": 0, "end": 1},
			  "params": [{"kind": "signal"}]}}]}]}`,
			want: `units[0].decls[0].subprogram.params[0]: unknown interface kind "signal"`,
		},
		{
			name: "type definition",
			doc:  `{"units": [{"kind": "package", "decls": [{"kind": "type", "ident": {"name": "t", "start": 0, "end": 1}, "def": {"kind": "union"}}]}]}`,
			want: `units[0].decls[0].def: unknown type definition kind "union"`,
		},
		{
			name: "mode",
			doc:  `{"units": [{"kind": "entity", "ports": [{"kind": "object", "mode": "sideways", "ident": {"name": "p", "start": 0, "end": 1}}]}]}`,
			want: `units[0].ports[0]: unknown mode "sideways"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			_, _, err := lowerString(t, tt.doc, fs, fs.AddVirtual("x.vhd", nil))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrUnknownKind) {
				t.Fatalf("error %v does not wrap ErrUnknownKind", err)
			}
			if err.Error() != tt.want {
				t.Fatalf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestMissingIdent(t *testing.T) {
	doc := `{"units": [{"kind": "package", "decls": [{"kind": "object"}]}]}`
	fs := source.NewFileSet()
	_, _, err := lowerString(t, doc, fs, fs.AddVirtual("x.vhd", nil))
	if !errors.Is(err, ErrMissingIdent) {
		t.Fatalf("expected ErrMissingIdent, got %v", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) || pe.Path != "units[0].decls[0].ident" {
		t.Fatalf("unexpected path in %v", err)
	}
}

func TestSpansCheckedAgainstRealSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pkg.vhd")
	if err := os.WriteFile(src, []byte("package p is\nend;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file, err := fs.Load(src)
	if err != nil {
		t.Fatal(err)
	}
	ok := `{"units": [{"kind": "package", "ident": {"name": "p", "start": 8, "end": 9}}]}`
	units, _, err := lowerString(t, ok, fs, file)
	if err != nil {
		t.Fatalf("in-range span rejected: %v", err)
	}
	if err := testkit.CheckSpanInvariants(units, fs.Get(file)); err != nil {
		t.Fatal(err)
	}
	bad := `{"units": [{"kind": "package", "ident": {"name": "p", "start": 8, "end": 90}}]}`
	_, _, err = lowerString(t, bad, fs, file)
	if !errors.Is(err, ErrBadSpan) {
		t.Fatalf("expected ErrBadSpan, got %v", err)
	}
	huge := `{"units": [{"kind": "package", "ident": {"name": "p", "start": 8, "end": 99999999999}}]}`
	if _, _, err := lowerString(t, huge, fs, file); !errors.Is(err, ErrBadSpan) {
		t.Fatalf("expected ErrBadSpan for overflowing offset, got %v", err)
	}
}

func TestReversedSpanRejected(t *testing.T) {
	doc := `{"units": [{"kind": "package", "ident": {"name": "p", "start": 5, "end": 2}}]}`
	fs := source.NewFileSet()
	if _, _, err := lowerString(t, doc, fs, fs.AddVirtual("x.vhd", nil)); !errors.Is(err, ErrBadSpan) {
		t.Fatalf("expected ErrBadSpan, got %v", err)
	}
}

func TestMsgpackDocument(t *testing.T) {
	parsed, err := Parse([]byte(entityDoc), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	data, err := Encode(parsed, FormatMsgpack)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	fromMsgpack, err := Parse(data, FormatMsgpack)
	if err != nil {
		t.Fatalf("parse msgpack: %v", err)
	}
	if fromMsgpack.Source != "alu.vhd" || len(fromMsgpack.Units) != 1 {
		t.Fatalf("unexpected document %#v", fromMsgpack)
	}
	unit := fromMsgpack.Units[0]
	if unit.Kind != "entity" || unit.Ident.Name != "alu" || len(unit.Decls) != 3 {
		t.Fatalf("unexpected unit %#v", unit)
	}
	if unit.Decls[1].Def == nil || unit.Decls[1].Def.Elements[0].Ident.Start != 54 {
		t.Fatalf("record element lost: %#v", unit.Decls[1].Def)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.json", FormatJSON, true},
		{"a.JSON", FormatJSON, true},
		{"dir/a.msgpack", FormatMsgpack, true},
		{"a.mp", FormatMsgpack, true},
		{"a.vhd", FormatJSON, false},
	}
	for _, tt := range tests {
		got, ok := FormatForPath(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FormatForPath(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDecodeMissingSource(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "alu.json")
	if err := os.WriteFile(docPath, []byte(entityDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file, units, err := Decode(docPath, fs, source.NewInterner())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	f := fs.Get(file)
	if f == nil || f.Flags&source.FileVirtual == 0 {
		t.Fatalf("missing source should become a virtual file, got %#v", f)
	}
	if f.Path != filepath.ToSlash(filepath.Join(dir, "alu.vhd")) {
		t.Fatalf("virtual file path = %q", f.Path)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if err := testkit.CheckSpanInvariants(units, f); err != nil {
		t.Fatal(err)
	}
}

func TestReadDocumentRejectsUnknownExtension(t *testing.T) {
	if _, _, err := ReadDocument("unit.yaml"); err == nil {
		t.Fatal("expected error")
	}
}
