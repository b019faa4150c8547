package diagfmt

import (
	"fmt"
	"io"

	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/source"
)

// Format names an output format accepted by --format.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatShort  Format = "short"
	FormatJSON   Format = "json"
	FormatSarif  Format = "sarif"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPretty, FormatShort, FormatJSON, FormatSarif:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want pretty, short, json or sarif)", s)
}

// Options bundles the per-format settings for Write.
type Options struct {
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
	Sorted bool
}

// Write renders bag in format f.
func Write(w io.Writer, f Format, bag *diag.Bag, fs *source.FileSet, opts Options) error {
	switch f {
	case FormatPretty, "":
		Pretty(w, bag, fs, opts.Pretty)
		return nil
	case FormatShort:
		return Short(w, bag, fs, opts.Sorted)
	case FormatJSON:
		return JSON(w, bag, fs, opts.JSON)
	case FormatSarif:
		return Sarif(w, bag, fs, opts.Sarif)
	}
	return fmt.Errorf("unknown format %q", f)
}
