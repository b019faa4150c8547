package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("spans from different files must not merge, got %v", got)
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 0, End: 10}
	if !outer.Contains(Span{File: 0, Start: 3, End: 10}) {
		t.Error("expected containment")
	}
	if outer.Contains(Span{File: 0, Start: 3, End: 11}) {
		t.Error("span past end is not contained")
	}
	if outer.Contains(Span{File: 1, Start: 3, End: 4}) {
		t.Error("different file is not contained")
	}
	if !(Span{Start: 4, End: 4}).Empty() || (Span{Start: 4, End: 6}).Len() != 2 {
		t.Error("Empty/Len mismatch")
	}
}
