package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents a fatal condition detected during execution.
//
// Runtime errors include:
//   - Unmatched loop begin: a forward skip ran off the end of the program
//   - Unmatched loop end: a ] was reached with no entered loop
//   - Input exhausted: a , was reached with no input left
//   - Steps exceeded: the run hit its configured step quota
//   - Unknown instruction: strict parsing met a non-opcode byte
//   - Unbalanced stack: the program ended inside a loop body
//
// None of these are recoverable. The engine fills Step, Consumed and Output
// so the partial output can be shown for diagnostics; it is never a
// successful result.
//
// UNBALANCED_STACK is raised when a program runs off its end inside a loop
// body (e.g. "+[" or "+[-"). It describes the program, not a fault in the
// engine, and is reported like any other runtime error.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Offset is the program offset of the instruction that failed.
	Offset int

	// Step is the number of completed steps before the failure.
	Step int64

	// Consumed is the number of input bytes read before the failure.
	Consumed int

	// Output is the output accumulated before the failure.
	Output []byte

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeUnmatchedLoopBegin indicates a skipped [ has no matching ].
	ErrCodeUnmatchedLoopBegin RuntimeErrorCode = "UNMATCHED_LOOP_BEGIN"

	// ErrCodeUnmatchedLoopEnd indicates a ] was reached with an empty control stack.
	ErrCodeUnmatchedLoopEnd RuntimeErrorCode = "UNMATCHED_LOOP_END"

	// ErrCodeInputExhausted indicates a , was reached with no input left.
	ErrCodeInputExhausted RuntimeErrorCode = "INPUT_EXHAUSTED"

	// ErrCodeStepsExceeded indicates the run exceeded its step quota.
	ErrCodeStepsExceeded RuntimeErrorCode = "STEPS_EXCEEDED"

	// ErrCodeUnknownInstruction indicates strict parsing rejected a byte.
	ErrCodeUnknownInstruction RuntimeErrorCode = "UNKNOWN_INSTRUCTION"

	// ErrCodeUnbalancedStack indicates the program ended with entered loops,
	// e.g. "+[" enters a body that has no ]. The program ran off its end
	// inside a loop; the engine itself is consistent.
	ErrCodeUnbalancedStack RuntimeErrorCode = "UNBALANCED_STACK"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (offset=%d)", e.Code, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the RuntimeErrorCode carried by err, or "" if err is not
// a RuntimeError. Uses errors.As to handle wrapped errors.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsUnmatchedLoopBegin returns true if the error is an unmatched [ error.
func IsUnmatchedLoopBegin(err error) bool {
	return CodeOf(err) == ErrCodeUnmatchedLoopBegin
}

// IsUnmatchedLoopEnd returns true if the error is an unmatched ] error.
func IsUnmatchedLoopEnd(err error) bool {
	return CodeOf(err) == ErrCodeUnmatchedLoopEnd
}

// IsInputExhausted returns true if the error is an input exhausted error.
func IsInputExhausted(err error) bool {
	return CodeOf(err) == ErrCodeInputExhausted
}

// IsStepsExceeded returns true if the error is a step quota error.
func IsStepsExceeded(err error) bool {
	return CodeOf(err) == ErrCodeStepsExceeded
}

// NewUnmatchedLoopBeginError creates a RuntimeError for a [ at offset
// whose forward skip found no matching ].
func NewUnmatchedLoopBeginError(offset int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnmatchedLoopBegin,
		Message: "unmatched [",
		Offset:  offset,
	}
}

// NewUnmatchedLoopEndError creates a RuntimeError for a ] at offset reached
// with an empty control stack.
func NewUnmatchedLoopEndError(offset int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnmatchedLoopEnd,
		Message: "unmatched ]",
		Offset:  offset,
	}
}

// NewInputExhaustedError creates a RuntimeError for a , at offset reached
// after all consumed input bytes were read.
func NewInputExhaustedError(offset, consumed int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInputExhausted,
		Message: "input exhausted",
		Offset:  offset,
		Details: map[string]string{
			"consumed": fmt.Sprintf("%d", consumed),
		},
	}
}

// NewStepsExceededError creates a RuntimeError for a run that hit its quota.
func NewStepsExceededError(offset int, steps, maxSteps int64) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeStepsExceeded,
		Message: fmt.Sprintf("run exceeded max steps (%d > %d)", steps, maxSteps),
		Offset:  offset,
		Details: map[string]string{
			"steps":     fmt.Sprintf("%d", steps),
			"max_steps": fmt.Sprintf("%d", maxSteps),
		},
	}
}

// NewUnknownInstructionError creates a RuntimeError for a non-opcode byte
// rejected by strict parsing.
func NewUnknownInstructionError(offset int, b byte) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnknownInstruction,
		Message: fmt.Sprintf("unknown instruction %q", b),
		Offset:  offset,
	}
}

// NewUnbalancedStackError creates a RuntimeError for a program that ended
// with depth loops still entered. offset is the innermost entered [.
func NewUnbalancedStackError(offset, depth int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnbalancedStack,
		Message: fmt.Sprintf("%d entered loop(s) at end of program", depth),
		Offset:  offset,
		Details: map[string]string{
			"depth": fmt.Sprintf("%d", depth),
		},
	}
}
