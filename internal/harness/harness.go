package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/tapevm/internal/engine"
)

// Run executes a test scenario and returns the result.
//
// Runtime errors raised by the program (unmatched brackets, exhausted
// input, step quota) are outcomes, not failures of Run: they are recorded
// in Result.ErrorCode and checked against the scenario's expectation.
// Run returns an error only when the scenario cannot be executed at all,
// e.g. an unreadable program file.
func Run(scenario *Scenario) (*Result, error) {
	src, err := scenario.Source()
	if err != nil {
		return nil, err
	}

	result := NewResult()

	program, err := engine.Parse(src, scenario.Strict)
	if err != nil {
		if engine.CodeOf(err) == "" {
			return nil, fmt.Errorf("parse program: %w", err)
		}
		result.ErrorCode = string(engine.CodeOf(err))
		result.Output = []byte{}
		finish(scenario, result)
		return result, nil
	}

	eng := engine.New(program,
		engine.WithMaxSteps(scenario.MaxSteps),
		engine.WithTracer(engine.TracerFunc(result.record)),
	)

	res, err := eng.Run(scenario.InputData())
	if err != nil {
		var re *engine.RuntimeError
		if !errors.As(err, &re) {
			return nil, fmt.Errorf("run program: %w", err)
		}
		result.ErrorCode = string(re.Code)
		result.Output = re.Output
		result.Steps = re.Step
		result.InputConsumed = re.Consumed
	} else {
		result.Output = res.Output
		result.Steps = res.Steps
		result.InputConsumed = res.InputConsumed
		result.Cells = res.Cells
		result.Pointer = res.Pointer
	}

	finish(scenario, result)
	return result, nil
}

// finish checks the expectation and assertions and logs the outcome.
func finish(scenario *Scenario, result *Result) {
	for _, msg := range checkExpect(scenario, result) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	slog.Debug("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"steps", result.Steps,
		"error_code", result.ErrorCode,
	)
}

// checkExpect compares the run against the scenario's Expect clause.
func checkExpect(scenario *Scenario, result *Result) []string {
	var errs []string

	if result.ErrorCode != scenario.Expect.Error {
		errs = append(errs, (&AssertionError{
			Type:     "expect.error",
			Expected: describeCode(scenario.Expect.Error),
			Actual:   describeCode(result.ErrorCode),
		}).Error())
	}

	if want := scenario.ExpectedOutput(); want != nil && string(want) != string(result.Output) {
		errs = append(errs, (&AssertionError{
			Type:     "expect.output",
			Expected: fmt.Sprintf("%q", want),
			Actual:   fmt.Sprintf("%q", result.Output),
		}).Error())
	}

	return errs
}

func describeCode(code string) string {
	if code == "" {
		return "success"
	}
	return code
}
