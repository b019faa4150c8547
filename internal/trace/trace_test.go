package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		l, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if l.String() != strings.ToLower(name) {
			t.Fatalf("round trip %q -> %q", name, l)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLevelGatesScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeRegion, false},
		{LevelDebug, ScopeRegion, true},
		{LevelError, ScopeDriver, false},
		{LevelOff, ScopeDriver, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := BeginCtx(ctx, ScopePass, "document")
	_, inner := BeginCtx(ctx, ScopeUnit, "unit:alu")
	inner.WithExtra("diagnostics", "2").End("")
	// filtered out at detail
	Point(tr, ScopeRegion, "region", "", inner.ID())
	outer.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Name != "unit:alu" || ev.Kind != "begin" || ev.ParentID != outer.ID() {
		t.Fatalf("unexpected inner begin %+v", ev)
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Extra["diagnostics"] != "2" {
		t.Fatalf("extra lost: %+v", ev)
	}
}

func TestDisabledSpansAreSafe(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "check", 0)
	if s.ID() != 0 {
		t.Fatal("disabled span has an ID")
	}
	s.WithExtra("k", "v").End("")
	var nilSpan *Span
	nilSpan.End("")
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should yield Nop")
	}
}

func TestRingKeepsLatest(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		Point(r, ScopeUnit, "p", string(rune('a'+i)), 0)
	}
	got := r.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, want := range []string{"c", "d", "e"} {
		if got[i].Detail != want {
			t.Fatalf("event %d detail = %q, want %q", i, got[i].Detail, want)
		}
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestErrorLevelRingRecordsCoarseSpans(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "check", 0).End("")
	Begin(tr, ScopeUnit, "unit:x", 0).End("")
	ring := RingOf(tr)
	if ring == nil {
		t.Fatal("no ring")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("expected driver begin/end only, got %d events", n)
	}
}

func TestNewBoth(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "check", 0).End("")
	if RingOf(tr) == nil || len(RingOf(tr).Snapshot()) != 2 {
		t.Fatal("ring did not receive events")
	}
	if !strings.Contains(buf.String(), "→ check") || !strings.Contains(buf.String(), "← check") {
		t.Fatalf("text stream missing events:\n%s", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFormatTextSortsExtra(t *testing.T) {
	ev := &Event{Seq: 1, Kind: KindSpanEnd, Scope: ScopeUnit, Name: "u", Extra: map[string]string{"b": "2", "a": "1"}}
	got := string(FormatEvent(ev, FormatText))
	if !strings.HasSuffix(got, "← u {a=1, b=2}\n") {
		t.Fatalf("unexpected text %q", got)
	}
}
