package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultRingSize is the number of events a RingTracer keeps by default.
const DefaultRingSize = 4096

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level     // tracing level
	Format     Format    // output format (FormatAuto picks from OutputPath)
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // file path, "-" or "" for stderr
	RingSize   int       // ring capacity for LevelError
}

// New creates a Tracer based on Config.
//
// LevelOff yields Nop. LevelError keeps events in a ring only, to be dumped
// with DumpOnError. Every other level streams to the output and also keeps
// a ring.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = DefaultRingSize
	}

	ring := NewRingTracer(cfg.RingSize, cfg.Level)
	if cfg.Level == LevelError {
		return ring, nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".json") {
			format = FormatNDJSON
		}
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewMultiTracer(cfg.Level, NewStreamTracer(w, cfg.Level, format), ring), nil
}

// DumpOnError writes the in-memory events of t to w. It is a no-op for
// tracers without a ring.
func DumpOnError(t Tracer, w io.Writer) error {
	var ring *RingTracer
	switch t := t.(type) {
	case *RingTracer:
		ring = t
	case *MultiTracer:
		ring = t.Ring()
	}
	if ring == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, "--- trace (last events) ---"); err != nil {
		return err
	}
	return ring.Dump(w, FormatText)
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

func isStdStream(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}
