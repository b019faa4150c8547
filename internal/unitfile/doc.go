// Package unitfile reads unit documents: the design units of one VHDL source
// file as produced by an upstream parser, serialised as JSON or MessagePack.
//
// Span offsets are byte offsets into the source after BOM removal and CRLF
// normalisation, which is how source.FileSet stores loaded files.
package unitfile
