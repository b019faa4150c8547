package source

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID must map to empty string, got %q, ok=%v", s, ok)
	}

	id1 := interner.InternIdent("hello")
	if id1 == NoStringID {
		t.Fatal("InternIdent returned NoStringID for non-empty name")
	}
	if id2 := interner.InternIdent("hello"); id1 != id2 {
		t.Errorf("same name interned twice gave %d and %d", id1, id2)
	}
	if _, ok := interner.Lookup(StringID(9999)); ok {
		t.Error("Lookup must reject unknown IDs")
	}
}

func TestInternIdentFoldsBasicIdentifiers(t *testing.T) {
	interner := NewInterner()

	first := interner.InternIdent("Data_Out")
	tests := []string{"data_out", "DATA_OUT", "dAtA_oUt"}
	for _, name := range tests {
		if got := interner.InternIdent(name); got != first {
			t.Errorf("InternIdent(%q) = %d, want %d", name, got, first)
		}
	}
	if got, _ := interner.Lookup(first); got != "Data_Out" {
		t.Errorf("Lookup must keep first spelling, got %q", got)
	}
}

func TestInternIdentKeepsExtendedIdentifiers(t *testing.T) {
	interner := NewInterner()

	upper := interner.InternIdent(`\BUS\`)
	lower := interner.InternIdent(`\bus\`)
	basic := interner.InternIdent("bus")
	if upper == lower {
		t.Error("extended identifiers are case-sensitive")
	}
	if lower == basic {
		t.Error("extended identifier must differ from basic identifier with the same letters")
	}
}

func TestFoldIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"ABC", "abc"},
		{`\ABC\`, `\ABC\`},
		{"ÄNDERUNG", "änderung"},
		{"straße", "straße"},
		{`\`, `\`},
	}
	for _, tt := range tests {
		if got := FoldIdent(tt.in); got != tt.want {
			t.Errorf("FoldIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInternIdentOnlyIgnoresCase(t *testing.T) {
	interner := NewInterner()

	if interner.InternIdent("straße") == interner.InternIdent("strasse") {
		t.Error("names that differ by more than letter case must stay distinct")
	}
	if interner.InternIdent("Grün") != interner.InternIdent("GRÜN") {
		t.Error("names that differ only by case must collide")
	}
}

func TestInternerConcurrent(t *testing.T) {
	interner := NewInterner()
	const workers = 8
	const names = 200

	ids := make([][]StringID, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids[w] = make([]StringID, names)
			for i := range names {
				ids[w][i] = interner.InternIdent(fmt.Sprintf("Sig_%d", i))
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		for i := range names {
			if ids[w][i] != ids[0][i] {
				t.Fatalf("worker %d got id %d for name %d, worker 0 got %d", w, ids[w][i], i, ids[0][i])
			}
		}
	}
	if _, ok := interner.Lookup(StringID(names + 1)); ok {
		t.Errorf("expected exactly %d IDs", names)
	}
}
