package harness

import "github.com/roach88/tapevm/internal/engine"

// MaxTraceEvents caps the number of steps kept in Result.Trace.
// Counters in Result still cover the whole run.
const MaxTraceEvents = 1000

// TraceEvent is one executed step as recorded by the harness.
type TraceEvent struct {
	Seq    int64  `json:"seq"`
	Offset int    `json:"offset"`
	Op     string `json:"op"`
	Cell   int    `json:"cell"`
	Depth  int    `json:"depth"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if the expectation and all assertions match.
	Pass bool `json:"pass"`

	// Output is the produced output. On a runtime error it is the partial
	// output at the point of failure.
	Output []byte `json:"output"`

	// ErrorCode is the runtime error code, empty on success.
	ErrorCode string `json:"error_code,omitempty"`

	// Steps is the number of completed steps.
	Steps int64 `json:"steps"`

	// InputConsumed is the number of input bytes read.
	InputConsumed int `json:"input_consumed"`

	// MaxDepth is the deepest loop nesting reached.
	MaxDepth int `json:"max_depth"`

	// OpCounts counts executed steps per instruction.
	OpCounts map[engine.Instruction]int64 `json:"-"`

	// Cells and Pointer describe the final tape. Empty on a runtime error.
	Cells   []engine.Cell `json:"cells,omitempty"`
	Pointer int           `json:"pointer"`

	// Trace contains the first MaxTraceEvents steps in order.
	Trace []TraceEvent `json:"trace"`

	// TraceTruncated is set when the run had more steps than Trace holds.
	TraceTruncated bool `json:"trace_truncated,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
		OpCounts: make(map[engine.Instruction]int64),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// record is the engine tracer for a scenario run.
func (r *Result) record(ev engine.StepEvent) {
	r.OpCounts[ev.Op]++
	if ev.Depth > r.MaxDepth {
		r.MaxDepth = ev.Depth
	}
	if len(r.Trace) >= MaxTraceEvents {
		r.TraceTruncated = true
		return
	}
	r.Trace = append(r.Trace, TraceEvent{
		Seq:    ev.Seq,
		Offset: ev.Offset,
		Op:     ev.Op.String(),
		Cell:   int(ev.Cell),
		Depth:  ev.Depth,
	})
}
