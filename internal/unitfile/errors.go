package unitfile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is wrapped when a kind, class or mode string is not recognised.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrBadSpan is wrapped when an offset lies outside the source file.
	ErrBadSpan = errors.New("span out of range")
	// ErrMissingIdent is wrapped when a node that needs a name has none.
	ErrMissingIdent = errors.New("missing identifier")
)

// PathError locates a decode problem inside a document, e.g.
// `units[0].decls[3]: unknown declaration kind "foo"`.
type PathError struct {
	Path string
	Msg  string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

func (e *PathError) Unwrap() error { return e.Err }

func unknownKind(path, what, kind string) error {
	return &PathError{Path: path, Msg: fmt.Sprintf("unknown %s %q", what, kind), Err: ErrUnknownKind}
}
