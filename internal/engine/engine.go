package engine

import "errors"

// RunIDGenerator generates unique IDs for recorded runs.
// Implemented by UUIDv7Generator.
type RunIDGenerator interface {
	Generate() string
}

// DefaultMaxSteps is the default step quota: unlimited.
const DefaultMaxSteps = 0

// Engine drives the stepper over one program until its instructions are
// exhausted.
//
// An Engine holds only the immutable program and its options, so Run may be
// called any number of times, each with a fresh State.
type Engine struct {
	program  Program
	maxSteps int64
	tracer   Tracer
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithMaxSteps sets the step quota per run. 0 means unlimited.
func WithMaxSteps(maxSteps int64) Option {
	return func(e *Engine) {
		e.maxSteps = maxSteps
	}
}

// WithTracer registers a tracer called after every completed step.
func WithTracer(t Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New creates an Engine for the given program.
//
// The program is copied so later mutation by the caller cannot affect runs.
func New(program Program, opts ...Option) *Engine {
	e := &Engine{
		program:  append(Program(nil), program...),
		maxSteps: DefaultMaxSteps,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Result is the outcome of a completed run.
type Result struct {
	// Output is the program's result.
	Output []byte

	// Steps is the number of executed instructions, no-ops included.
	Steps int64

	// InputConsumed is the number of input bytes read.
	InputConsumed int

	// Cells are the materialized tape cells, left to right.
	Cells []Cell

	// Pointer is the index of the focused cell within Cells.
	Pointer int
}

// Run executes the program against input until the cursor is exhausted.
//
// On success the accumulated output is the result. On failure the returned
// error is a *RuntimeError whose Step and Output describe how far the run
// got; that output is diagnostic only.
func (e *Engine) Run(input []byte) (*Result, error) {
	st := NewState(input)
	clock := NewClock()
	quota := NewStepQuota(e.maxSteps)

	for !st.Cursor().Done(e.program) {
		at := st.Cursor()
		if err := quota.Check(int(at)); err != nil {
			return nil, e.fail(err, st, clock)
		}

		if err := st.Step(e.program); err != nil {
			return nil, e.fail(err, st, clock)
		}

		seq := clock.Tick()
		if e.tracer != nil {
			e.tracer.Trace(StepEvent{
				Seq:    seq,
				Offset: int(at),
				Op:     e.program[at],
				Cell:   st.Tape().Value(),
				Depth:  st.Depth(),
			})
		}
	}

	if depth := st.Depth(); depth != 0 {
		resume, _ := st.stack.top()
		return nil, e.fail(NewUnbalancedStackError(int(resume)-1, depth), st, clock)
	}

	cells, pointer := st.Tape().Snapshot()
	return &Result{
		Output:        st.Output(),
		Steps:         clock.Now(),
		InputConsumed: st.Consumed(),
		Cells:         cells,
		Pointer:       pointer,
	}, nil
}

// fail stamps a RuntimeError with the progress made before it occurred.
func (e *Engine) fail(err error, st *State, clock *Clock) error {
	var re *RuntimeError
	if errors.As(err, &re) {
		re.Step = clock.Now()
		re.Consumed = st.Consumed()
		re.Output = st.Output()
	}
	return err
}

// Execute parses src permissively and runs it once against input.
func Execute(src, input []byte, opts ...Option) (*Result, error) {
	program, err := Parse(src, false)
	if err != nil {
		return nil, err
	}
	return New(program, opts...).Run(input)
}
