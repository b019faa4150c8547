package pipeline

import "testing"

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	Emit(ChannelSink{Ch: ch}, Event{File: "a.json", Stage: StageDecode, Status: StatusWorking})
	if ev := <-ch; ev.File != "a.json" || ev.Status != StatusWorking {
		t.Fatalf("unexpected event %+v", ev)
	}
	// nil channel and nil sink drop events
	ChannelSink{}.OnEvent(Event{})
	Emit(nil, Event{})
}

func TestRecorderLast(t *testing.T) {
	var r Recorder
	r.OnEvent(Event{File: "a", Status: StatusQueued})
	r.OnEvent(Event{File: "b", Status: StatusQueued})
	r.OnEvent(Event{File: "a", Status: StatusDone, Diagnostics: 2})

	ev, ok := r.Last("a")
	if !ok || ev.Status != StatusDone || ev.Diagnostics != 2 {
		t.Fatalf("unexpected last event %+v", ev)
	}
	if _, ok := r.Last("c"); ok {
		t.Fatal("unknown file reported")
	}
	if len(r.Events()) != 3 {
		t.Fatalf("expected 3 events, got %d", len(r.Events()))
	}
}
