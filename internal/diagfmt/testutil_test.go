package diagfmt

import (
	"strings"
	"testing"

	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/source"
)

const pkgSource = `package pkg is
  constant width : natural := 8;
  constant width : natural := 16;
end package;
`

// duplicateBag returns a bag with one SEM3001 diagnostic for the second
// "width" in pkgSource.
func duplicateBag(t *testing.T, path string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual(path, []byte(pkgSource))
	first := uint32(strings.Index(pkgSource, "width"))
	second := uint32(strings.LastIndex(pkgSource, "width"))
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemaDuplicateDeclaration,
		source.Span{File: file, Start: second, End: second + 5},
		"Duplicate declaration of 'width'").
		WithNote(source.Span{File: file, Start: first, End: first + 5}, "Previously defined here")
	if !bag.Add(d) {
		t.Fatal("bag rejected diagnostic")
	}
	return bag, fs
}
