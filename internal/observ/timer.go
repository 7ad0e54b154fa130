// Package observ measures the phases of a driver run.
package observ

import (
	"fmt"
	"io"
	"time"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer tracks the duration of the phases of a run.
// It is not safe for concurrent use.
type Timer struct {
	phases []phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 3)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index. Unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.dur = time.Since(p.start)
	p.note = note
}

// PhaseReport is one finished phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the outcome of a Timer. TotalMS is the sum of the phases.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns the phases recorded so far.
func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: Millis(p.dur), Note: p.note})
	}
	r.TotalMS = Millis(total)
	return r
}

// Fprint writes one aligned line per phase followed by the total.
func (r Report) Fprint(w io.Writer) error {
	for _, p := range r.Phases {
		line := fmt.Sprintf("%-10s %8.1f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  (" + p.Note + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-10s %8.1f ms\n", "total", r.TotalMS)
	return err
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
