package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/tapevm/internal/engine"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

func assertCount(kind, what string, expected, actual int64) error {
	if expected == actual {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("%d %s", expected, what),
		Actual:   fmt.Sprintf("%d %s", actual, what),
	}
}

// assertFinalCell checks the cell At positions from the final pointer.
// Cells beyond the materialized tape read as zero.
func assertFinalCell(result *Result, a Assertion) error {
	if result.ErrorCode != "" {
		return &AssertionError{
			Type:     AssertFinalCell,
			Expected: "a completed run",
			Actual:   fmt.Sprintf("run failed with %s", result.ErrorCode),
		}
	}

	var actual engine.Cell
	if i := result.Pointer + a.At; i >= 0 && i < len(result.Cells) {
		actual = result.Cells[i]
	}
	if int(actual) != a.Value {
		return &AssertionError{
			Type:     AssertFinalCell,
			Expected: fmt.Sprintf("cell[%+d] = %d", a.At, a.Value),
			Actual:   fmt.Sprintf("cell[%+d] = %d", a.At, actual),
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSteps:
			err = assertCount(AssertSteps, "steps", assertion.Count, result.Steps)
		case AssertTraceCount:
			if len(assertion.Op) != 1 {
				err = fmt.Errorf("assertion[%d]: trace_count needs a single-character op", i)
				break
			}
			op := engine.Instruction(assertion.Op[0])
			err = assertCount(AssertTraceCount, "executions of "+assertion.Op, assertion.Count, result.OpCounts[op])
		case AssertInputConsumed:
			err = assertCount(AssertInputConsumed, "bytes read", assertion.Count, int64(result.InputConsumed))
		case AssertMaxDepth:
			err = assertCount(AssertMaxDepth, "nested loops", assertion.Count, int64(result.MaxDepth))
		case AssertFinalCell:
			err = assertFinalCell(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
