package engine

// State is the complete execution state of one run:
// the cursor, the unread input, the output so far, the control stack and
// the tape.
//
// Step advances the state in place. A step either completes fully or leaves
// the state untouched and returns an error, so observers never see a
// half-applied transition.
type State struct {
	cursor   Cursor
	input    []byte
	consumed int
	output   []byte
	stack    controlStack
	tape     *Tape
}

// NewState creates the initial state for a run: cursor at the first
// instruction, the full input, empty output, empty control stack and a
// single zero cell.
func NewState(input []byte) *State {
	return &State{
		input: input,
		tape:  NewTape(),
	}
}

// Cursor returns the offset of the next instruction to execute.
func (s *State) Cursor() Cursor {
	return s.cursor
}

// Consumed returns the number of input bytes read so far.
func (s *State) Consumed() int {
	return s.consumed
}

// Output returns a copy of the output accumulated so far.
func (s *State) Output() []byte {
	return append([]byte{}, s.output...)
}

// Depth returns the number of loop bodies currently entered.
func (s *State) Depth() int {
	return s.stack.depth()
}

// Tape returns the state's tape.
func (s *State) Tape() *Tape {
	return s.tape
}
