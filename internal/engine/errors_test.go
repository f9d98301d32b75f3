package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeError_Message(t *testing.T) {
	err := NewUnmatchedLoopEndError(12)
	assert.Equal(t, "UNMATCHED_LOOP_END: unmatched ] (offset=12)", err.Error())

	err = &RuntimeError{Code: ErrCodeUnbalancedStack, Message: "x", Offset: -1}
	assert.Equal(t, "UNBALANCED_STACK: x", err.Error())
}

func TestCodeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("run failed: %w", NewInputExhaustedError(3, 0))
	assert.Equal(t, ErrCodeInputExhausted, CodeOf(err))
	assert.True(t, IsInputExhausted(err))
	assert.False(t, IsUnmatchedLoopBegin(err))
}

func TestCodeOf_Foreign(t *testing.T) {
	assert.Equal(t, RuntimeErrorCode(""), CodeOf(errors.New("boom")))
	assert.Equal(t, RuntimeErrorCode(""), CodeOf(nil))
}
