package unitfile

import (
	"errors"
	"fmt"
	"os"

	"vhdlcheck/internal/ast"
	"vhdlcheck/internal/source"
)

// ReadDocument reads and parses the document at path. The raw bytes are
// returned for cache keys.
func ReadDocument(path string) (*Document, []byte, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, nil, fmt.Errorf("%s: unsupported document extension", path)
	}
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, data, fmt.Errorf("%s: %w", path, err)
	}
	return doc, data, nil
}

// OpenSource adds the source file named by doc to fs. A missing source is
// replaced by an empty virtual file with the same path, so diagnostics still
// carry a file name; spans are then not bounds-checked.
func OpenSource(doc *Document, docPath string, fs *source.FileSet) (source.FileID, error) {
	path := doc.SourcePath(docPath)
	if path == "" {
		return fs.AddVirtual(docPath, nil), nil
	}
	id, err := fs.Load(path)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return fs.AddVirtual(path, nil), nil
	}
	return 0, fmt.Errorf("load source %s: %w", path, err)
}

// Decode is the whole path from document file to design units.
func Decode(path string, fs *source.FileSet, strs *source.Interner) (source.FileID, []*ast.DesignUnit, error) {
	doc, _, err := ReadDocument(path)
	if err != nil {
		return 0, nil, err
	}
	file, err := OpenSource(doc, path, fs)
	if err != nil {
		return 0, nil, err
	}
	units, err := Lower(doc, ast.NewBuilder(strs, file), fs)
	if err != nil {
		return file, nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, units, nil
}
