package ui

import (
	"strings"
	"testing"

	"vhdlcheck/internal/pipeline"
)

func TestProgressModelTracksDocuments(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("checking", []string{"a.json", "b.json"}, events).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.json", Stage: pipeline.StageCheck, Status: pipeline.StatusWorking})
	if m.items[0].status != "checking" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.35 {
		t.Fatalf("percent = %v, want 0.35", got)
	}

	m.applyEvent(pipeline.Event{File: "a.json", Stage: pipeline.StageCheck, Status: pipeline.StatusDone, Diagnostics: 3})
	m.applyEvent(pipeline.Event{File: "b.json", Stage: pipeline.StageDecode, Status: pipeline.StatusError})
	m.applyEvent(pipeline.Event{File: "unknown.json", Status: pipeline.StatusDone})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: checking (1 with errors)", "a.json (3)", "error b.json"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("rtl/very/long/path.json", 10); got != "rtl/ver..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("漢字漢字", 7); got != "漢字..." {
		t.Fatalf("got %q", got)
	}
}
