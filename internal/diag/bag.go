package diag

import (
	"sort"
)

// Bag is an ordered, append-only diagnostic collection with an upper bound.
type Bag struct {
	items []*Diagnostic
	max   uint16
}

// NewBag returns a Bag that holds at most max diagnostics.
// Non-positive or oversized limits are clamped to the uint16 range.
func NewBag(max int) *Bag {
	if max <= 0 || max > int(^uint16(0)) {
		max = int(^uint16(0))
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 64)),
		max:   uint16(max), // #nosec G115 -- clamped above
	}
}

// Add appends d unless the bag is full. It reports whether d was kept.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any entry is at least SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any entry is at least SevWarning.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the backing slice. Callers must not modify it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge appends every diagnostic of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if newTotal > int(b.max) {
		b.max = uint16(min(newTotal, int(^uint16(0)))) // #nosec G115
	}
	for _, d := range other.items {
		if !b.Add(d) {
			return
		}
	}
}

// Filter keeps only the diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	clear(b.items[len(out):])
	b.items = out
}

// Sort orders by file, start, end, severity (desc) and code for stable output.
// Checking itself never sorts; emission order is declaration order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
