package diag

import (
	"testing"

	"vhdlcheck/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		ok := bag.Add(NewError(SemaDuplicateDeclaration, span(0, uint32(i), uint32(i+1)), "dup"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d returned %v, want %v", i, ok, want)
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
	if bag.Add(nil) {
		t.Fatal("nil diagnostic must be rejected")
	}
}

func TestBagKeepsInsertionOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SemaDuplicateDeclaration, span(0, 30, 31), "third"))
	bag.Add(NewError(SemaDuplicateDeclaration, span(0, 10, 11), "first"))

	if bag.Items()[0].Message != "third" {
		t.Fatal("Bag must not reorder on Add")
	}
	bag.Sort()
	if bag.Items()[0].Message != "first" {
		t.Fatal("Sort must order by start offset")
	}
}

func TestBagSortSeverityDescending(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, SemaInfo, span(0, 5, 6), "warn"))
	bag.Add(New(SevError, SemaDuplicateDeclaration, span(0, 5, 6), "err"))
	bag.Sort()
	if bag.Items()[0].Severity != SevError {
		t.Fatal("errors must sort before warnings at the same span")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SemaDuplicateDeclaration, span(0, 0, 1), "a"))
	b := NewBag(2)
	b.Add(NewError(SemaDuplicateDeclaration, span(1, 0, 1), "b1"))
	b.Add(NewError(SemaDuplicateDeclaration, span(1, 2, 3), "b2"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merge lost items: len=%d", a.Len())
	}
	if a.Items()[2].Message != "b2" {
		t.Fatalf("merge must append in order, got %q", a.Items()[2].Message)
	}
}

func TestBagFilterAndSeverityQueries(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevInfo, ObsTimings, span(0, 0, 0), "timings"))
	bag.Add(New(SevWarning, SemaInfo, span(0, 0, 0), "warn"))
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("unexpected severity flags")
	}
	bag.Add(NewError(SemaDuplicateDeclaration, span(0, 0, 0), "dup"))
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors")
	}

	bag.Filter(func(d *Diagnostic) bool { return d.Severity != SevInfo })
	if bag.Len() != 2 {
		t.Fatalf("expected 2 after filter, got %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		SemaDuplicateDeclaration: "SEM3001",
		IOLoadFileError:          "IO4001",
		ObsTimings:               "OBS6001",
		UnknownCode:              "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	codes := Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("Codes not sorted at %d", i)
		}
	}
}
