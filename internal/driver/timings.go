package driver

import (
	"encoding/json"
	"fmt"

	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/observ"
	"vhdlcheck/internal/source"
)

type timingPayload struct {
	Kind      string               `json:"kind"`
	Documents int                  `json:"documents"`
	TotalMS   float64              `json:"total_ms"`
	Phases    []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic adds an OBS6001 info entry carrying the timer
// report as JSON in its note. It ignores the bag limit.
func AppendTimingDiagnostic(bag *diag.Bag, timer *observ.Timer, documents int) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{
		Kind:      "check",
		Documents: documents,
		TotalMS:   report.TotalMS,
		Phases:    report.Phases,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	msg := fmt.Sprintf("timings (%s): total %.2f ms, %d documents", payload.Kind, payload.TotalMS, documents)
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
