package engine

// StepQuota counts executed steps and enforces an optional maximum.
//
// The core has no cancellation or timeouts; a quota is how callers bound
// programs that never terminate. A limit of 0 means unlimited.
type StepQuota struct {
	maxSteps int64 // Maximum allowed steps, 0 for unlimited
	current  int64 // Steps admitted so far
}

// NewStepQuota creates a quota with the given limit.
func NewStepQuota(maxSteps int64) *StepQuota {
	return &StepQuota{maxSteps: maxSteps}
}

// Check admits one more step at the given program offset.
//
// Returns a STEPS_EXCEEDED RuntimeError once the count passes the limit.
// Call it before executing each step.
func (q *StepQuota) Check(offset int) error {
	q.current++
	if q.maxSteps > 0 && q.current > q.maxSteps {
		return NewStepsExceededError(offset, q.current, q.maxSteps)
	}
	return nil
}
