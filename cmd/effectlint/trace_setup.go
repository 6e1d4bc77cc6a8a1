package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"effectlint/internal/trace"
)

// tracing owns the tracer built from the trace flags.
type tracing struct {
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	errOut    io.Writer
}

// setupTracing inspects trace-related flags, attaches the tracer to the
// command context and returns a handle that must be closed.
func setupTracing(cmd *cobra.Command) (*tracing, error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	t := &tracing{tracer: trace.Nop, errOut: cmd.ErrOrStderr()}

	// An output path without a level means phase tracing to that path.
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
		modeStr = "stream"
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return t, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	t.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	if heartbeatInterval > 0 {
		t.heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}
	return t, nil
}

// dumpRing writes the buffered events of a ring tracer. Commands call it
// when they fail so error-level tracing still leaves a record.
func (t *tracing) dumpRing() {
	var ring *trace.RingTracer
	switch tr := t.tracer.(type) {
	case *trace.RingTracer:
		ring = tr
	case *trace.MultiTracer:
		ring, _ = tr.Ring()
	}
	if ring == nil {
		return
	}
	events := ring.Snapshot()
	if len(events) == 0 {
		return
	}
	fmt.Fprintf(t.errOut, "trace: last %d events\n", len(events))
	for i := range events {
		_, _ = t.errOut.Write(trace.FormatEvent(&events[i], trace.FormatText))
	}
}

func (t *tracing) Close() {
	if t == nil {
		return
	}
	if t.heartbeat != nil {
		t.heartbeat.Stop()
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(t.errOut, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(t.errOut, "trace: close error: %v\n", err)
	}
}
