package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/observ"
	"vhdlcheck/internal/pipeline"
	"vhdlcheck/internal/project"
	"vhdlcheck/internal/source"
	"vhdlcheck/internal/unitfile"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.DigestBytes([]byte("doc"))

	var out DiskPayload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaDuplicateDeclaration, source.Span{Start: 10, End: 11}, "Duplicate declaration of 'a'").
		WithNote(source.Span{Start: 2, End: 3}, "Previously defined here"))
	if err := cache.Put(key, newPayload("p.json", 1, bag)); err != nil {
		t.Fatal(err)
	}

	restored := diag.NewBag(0)
	units, ok := restoreCached(cache, key, 7, restored)
	if !ok || units != 1 || restored.Len() != 1 {
		t.Fatalf("restore: ok=%v units=%d len=%d", ok, units, restored.Len())
	}
	d := restored.Items()[0]
	if d.Primary != (source.Span{File: 7, Start: 10, End: 11}) || d.Notes[0].Span != (source.Span{File: 7, Start: 2, End: 3}) {
		t.Fatalf("spans not rebound: %+v", d)
	}
	if d.Severity != diag.SevError || d.Code != diag.SemaDuplicateDeclaration {
		t.Fatalf("unexpected diagnostic %+v", d)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok := restoreCached(cache, key, 7, diag.NewBag(0)); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestDiskCacheCorruptEntryIsMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.DigestBytes([]byte("broken"))
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := restoreCached(cache, key, 0, diag.NewBag(0)); ok {
		t.Fatal("corrupt entry should be a miss")
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(project.Digest{}, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	if ok, err := cache.Get(project.Digest{}, &DiskPayload{}); ok || err != nil {
		t.Fatalf("nil cache Get: ok=%v err=%v", ok, err)
	}
	if cache.Dir() != "" {
		t.Fatal("nil cache has no dir")
	}
}

func TestCheckDocumentUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeProject(t, dir, "p.json", unitfile.FormatJSON)
	cache, err := OpenDiskCacheAt(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatal(err)
	}

	first, err := CheckDocument(context.Background(), path, source.NewFileSet(), source.NewInterner(), Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run cannot be cached")
	}

	rec := &pipeline.Recorder{}
	fs := source.NewFileSet()
	second, err := CheckDocument(context.Background(), path, fs, source.NewInterner(), Options{Cache: cache, Progress: rec})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Units != first.Units {
		t.Fatalf("second run: cached=%v units=%d", second.Cached, second.Units)
	}
	if ev, ok := rec.Last(path); !ok || ev.Status != pipeline.StatusCached {
		t.Fatalf("expected a cached event, got %+v", ev)
	}
	got := diag.FormatShortDiagnostics(second.Bag.Items(), fs, true, false)
	if !strings.Contains(got, "SEM3001 ") || !strings.Contains(got, "p.vhd:3:12 Duplicate declaration of 'a'") {
		t.Fatalf("cached diagnostics differ:\n%s", got)
	}

	// Editing the source invalidates the entry.
	if err := os.WriteFile(filepath.Join(dir, "p.vhd"), []byte(pkgSource+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := CheckDocument(context.Background(), path, source.NewFileSet(), source.NewInterner(), Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatal("changed source must miss the cache")
	}
}

func TestAppendTimingDiagnostic(t *testing.T) {
	timer := observ.NewTimer()
	timer.Add("check", 0)
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaDuplicateDeclaration, source.Span{}, "x"))

	AppendTimingDiagnostic(bag, timer, 3)
	if bag.Len() != 2 {
		t.Fatalf("timing entry must bypass the limit, len=%d", bag.Len())
	}
	d := bag.Items()[1]
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo {
		t.Fatalf("unexpected entry %+v", d)
	}
	if !strings.Contains(d.Notes[0].Msg, `"documents":3`) || !strings.Contains(d.Notes[0].Msg, `"name":"check"`) {
		t.Fatalf("note = %s", d.Notes[0].Msg)
	}
}

func TestCachedDocumentIgnoresEarlierLimit(t *testing.T) {
	const src = `package p is
  constant a : bit := '0';
  constant a : bit := '1';
  constant a : bit := '0';
end package;
`
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "p.vhd"), []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	doc := &unitfile.Document{
		Source: "p.vhd",
		Units: []unitfile.Unit{{
			Kind:  "package",
			Ident: ident(t, src, "package", "p", 1),
			Decls: []unitfile.Decl{
				{Kind: "object", Class: "constant", Ident: ident(t, src, "constant", "a", 1), Subtype: "bit"},
				{Kind: "object", Class: "constant", Ident: ident(t, src, "constant", "a", 2), Subtype: "bit"},
				{Kind: "object", Class: "constant", Ident: ident(t, src, "constant", "a", 3), Subtype: "bit"},
			},
		}},
	}
	data, err := unitfile.Encode(doc, unitfile.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "p.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	cache, err := OpenDiskCacheAt(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatal(err)
	}

	limited, err := CheckDocument(context.Background(), path, source.NewFileSet(), source.NewInterner(), Options{Cache: cache, MaxDiagnostics: 1})
	if err != nil {
		t.Fatal(err)
	}
	if limited.Bag.Len() != 1 {
		t.Fatalf("limited run reported %d diagnostics, want 1", limited.Bag.Len())
	}

	full, err := CheckDocument(context.Background(), path, source.NewFileSet(), source.NewInterner(), Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !full.Cached {
		t.Fatal("second run should hit the cache")
	}
	if full.Bag.Len() != 2 {
		t.Fatalf("cached run reported %d diagnostics, want 2", full.Bag.Len())
	}
}
