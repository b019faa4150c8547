package diagfmt

import (
	"io"

	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/source"
)

// Short writes the one-line-per-diagnostic form, notes included.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, sorted bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, true, sorted)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
