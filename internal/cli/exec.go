package cli

import (
	"errors"
	"log/slog"

	"github.com/roach88/tapevm/internal/engine"
	"github.com/roach88/tapevm/internal/ir"
)

// helloWorld runs when no program is given.
const helloWorld = "++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.+++++++..+++.>++.<<+++++++++++++++.>.+++.------.--------.>+.>."

// execution is the outcome of running one program against one input.
type execution struct {
	ProgramHash   string
	Input         []byte
	Output        []byte
	Steps         int64
	InputConsumed int
	Err           *engine.RuntimeError // nil on success
}

// ErrorCode returns the runtime error code, empty on success.
func (x *execution) ErrorCode() string {
	if x.Err == nil {
		return ""
	}
	return string(x.Err.Code)
}

// ErrorOffset returns the failing offset, -1 on success.
func (x *execution) ErrorOffset() int {
	if x.Err == nil {
		return -1
	}
	return x.Err.Offset
}

// ResultHash returns the content hash of the execution's deterministic part.
func (x *execution) ResultHash() (string, error) {
	return ir.ResultHash(ir.RunRecord{
		ProgramHash: x.ProgramHash,
		Input:       x.Input,
		Output:      x.Output,
		Steps:       x.Steps,
		ErrorCode:   x.ErrorCode(),
	})
}

// executeProgram parses and runs src. Runtime failures, including strict
// parse rejections, are part of the returned execution; the error return is
// reserved for failures that are not program outcomes.
func executeProgram(src, input []byte, strict bool, maxSteps int64, traceSteps bool) (*execution, error) {
	x := &execution{ProgramHash: ir.ProgramHash(src), Input: input}

	program, err := engine.Parse(src, strict)
	if err != nil {
		var re *engine.RuntimeError
		if !errors.As(err, &re) {
			return nil, err
		}
		x.Err = re
		x.Output = []byte{}
		return x, nil
	}

	opts := []engine.Option{engine.WithMaxSteps(maxSteps)}
	if traceSteps {
		opts = append(opts, engine.WithTracer(engine.TracerFunc(logStep)))
	}

	res, err := engine.New(program, opts...).Run(input)
	if err != nil {
		var re *engine.RuntimeError
		if !errors.As(err, &re) {
			return nil, err
		}
		x.Err = re
		x.Output = re.Output
		x.Steps = re.Step
		x.InputConsumed = re.Consumed
		return x, nil
	}

	x.Output = res.Output
	x.Steps = res.Steps
	x.InputConsumed = res.InputConsumed
	return x, nil
}

// logStep is the --trace tracer.
func logStep(ev engine.StepEvent) {
	slog.Debug("step",
		"seq", ev.Seq,
		"offset", ev.Offset,
		"op", ev.Op.String(),
		"cell", int(ev.Cell),
		"depth", ev.Depth,
	)
}
