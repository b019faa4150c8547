package diag

import (
	"fmt"
	"slices"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Semantic checks
	SemaInfo                 Code = 3000
	SemaDuplicateDeclaration Code = 3001

	// I/O and unit-document input
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002
	IOCacheError    Code = 4003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	SemaInfo:                 "Semantic information",
	SemaDuplicateDeclaration: "Duplicate declaration in the same declarative region",
	IOInfo:                   "I/O information",
	IOLoadFileError:          "I/O load file error",
	IODecodeError:            "Malformed unit document",
	IOCacheError:             "Cache read/write failure",
	ObsInfo:                  "Observability information",
	ObsTimings:               "Pipeline timings",
}

// ID returns the stable short form, e.g. SEM3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Codes lists every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
