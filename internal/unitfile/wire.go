package unitfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is the serialisation of a unit document.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	}
	return "unknown"
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".msgpack", ".mp":
		return FormatMsgpack, true
	}
	return FormatJSON, false
}

// Document is the wire form of a unit document. Both formats share the json
// struct tags.
type Document struct {
	Source string `json:"source"`
	Units  []Unit `json:"units"`
}

type Ident struct {
	Name  string `json:"name"`
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

type ContextItem struct {
	Kind  string   `json:"kind"` // library|use|context
	Names []string `json:"names,omitempty"`
}

type Unit struct {
	Kind     string        `json:"kind"`
	Ident    *Ident        `json:"ident,omitempty"`
	Entity   *Ident        `json:"entity,omitempty"`
	Package  string        `json:"package,omitempty"`
	Context  []ContextItem `json:"context,omitempty"`
	Items    []ContextItem `json:"items,omitempty"`
	Generics []Interface   `json:"generics"`
	Ports    []Interface   `json:"ports"`
	Decls    []Decl        `json:"decls,omitempty"`
	Start    uint64        `json:"start,omitempty"`
	End      uint64        `json:"end,omitempty"`
}

type Interface struct {
	Kind       string      `json:"kind"` // object|file|type|subprogram
	Class      string      `json:"class,omitempty"`
	Mode       string      `json:"mode,omitempty"`
	Ident      *Ident      `json:"ident,omitempty"`
	Subtype    string      `json:"subtype,omitempty"`
	Subprogram *Subprogram `json:"subprogram,omitempty"`
}

type Subprogram struct {
	Kind   string      `json:"kind"` // function|procedure
	Ident  *Ident      `json:"ident,omitempty"`
	Params []Interface `json:"params,omitempty"`
	Return string      `json:"return,omitempty"`
	Impure bool        `json:"impure,omitempty"`
}

type Element struct {
	Ident   *Ident `json:"ident,omitempty"`
	Subtype string `json:"subtype,omitempty"`
}

type Decl struct {
	Kind       string      `json:"kind"`
	Class      string      `json:"class,omitempty"`
	Ident      *Ident      `json:"ident,omitempty"`
	Subtype    string      `json:"subtype,omitempty"`
	Name       string      `json:"name,omitempty"`
	Spec       bool        `json:"spec,omitempty"`
	Generics   []Interface `json:"generics,omitempty"`
	Ports      []Interface `json:"ports,omitempty"`
	Subprogram *Subprogram `json:"subprogram,omitempty"`
	Decls      []Decl      `json:"decls,omitempty"`
	Names      []string    `json:"names,omitempty"`
	Package    *Unit       `json:"package,omitempty"`
	Instances  []string    `json:"instances,omitempty"`
	Component  string      `json:"component,omitempty"`
	Def        *TypeDef    `json:"def,omitempty"`
}

type TypeDef struct {
	Kind       string       `json:"kind"`
	Items      []Subprogram `json:"items,omitempty"`
	Decls      []Decl       `json:"decls,omitempty"`
	Elements   []Element    `json:"elements,omitempty"`
	Literals   []Ident      `json:"literals,omitempty"`
	Units      []Ident      `json:"units,omitempty"`
	Range      string       `json:"range,omitempty"`
	Indexes    []string     `json:"indexes,omitempty"`
	Element    string       `json:"element,omitempty"`
	Designated string       `json:"designated,omitempty"`
	Of         string       `json:"of,omitempty"`
	Subtype    string       `json:"subtype,omitempty"`
}

// Parse decodes data into its wire form without validating kinds or spans.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	return &doc, nil
}

// Encode serialises doc. Upstream tools and tests use it to produce
// documents.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %s", format)
}

// SourcePath resolves doc.Source against the directory of docPath.
func (doc *Document) SourcePath(docPath string) string {
	if doc.Source == "" || filepath.IsAbs(doc.Source) {
		return doc.Source
	}
	return filepath.Join(filepath.Dir(docPath), doc.Source)
}
