package engine

// StepEvent describes one completed step.
type StepEvent struct {
	Seq    int64       // logical clock value, 1 for the first step
	Offset int         // program offset of the executed instruction
	Op     Instruction // the executed instruction
	Cell   Cell        // focused cell after the step
	Depth  int         // entered loops after the step
}

// Tracer observes completed steps. It is called synchronously from Run.
type Tracer interface {
	Trace(ev StepEvent)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(ev StepEvent)

// Trace calls f(ev).
func (f TracerFunc) Trace(ev StepEvent) {
	f(ev)
}
