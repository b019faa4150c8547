package source

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type StringID uint32

const NoStringID StringID = 0

// Interner maps names to compact comparable IDs. It is safe for concurrent use.
//
// InternIdent applies VHDL identifier rules: basic identifiers are
// case-insensitive, extended identifiers (\like this\) are taken verbatim.
// Lookup always returns the spelling seen first for an ID.
type Interner struct {
	mu    sync.RWMutex
	byID  []string            // first spelling per ID; byID[0] is NoStringID
	index map[string]StringID // folded key -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// InternIdent interns a VHDL identifier, folding case for basic identifiers.
func (i *Interner) InternIdent(name string) StringID {
	return i.intern(FoldIdent(name), name)
}

func (i *Interner) intern(key, spelling string) StringID {
	i.mu.RLock()
	id, ok := i.index[key]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[key]; ok {
		return id
	}
	// own copies; callers may reuse their buffers
	key = strings.Clone(key)
	id = StringID(len(i.byID)) // #nosec G115 -- bounded by memory long before 2^32
	i.byID = append(i.byID, strings.Clone(spelling))
	i.index[key] = id
	return id
}

// Lookup returns the first spelling recorded for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// IsExtendedIdent reports whether name is a VHDL extended identifier.
func IsExtendedIdent(name string) bool {
	return len(name) >= 2 && name[0] == '\\' && name[len(name)-1] == '\\'
}

// FoldIdent returns the comparison key for a VHDL identifier: the lower-case
// form for basic identifiers, the name itself for extended ones.
func FoldIdent(name string) string {
	if IsExtendedIdent(name) {
		return name
	}
	return cases.Lower(language.Und).String(name)
}
