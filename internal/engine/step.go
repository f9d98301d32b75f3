package engine

// Step executes the instruction under the cursor and advances the state.
//
// Stepping a state whose cursor is exhausted is a no-op.
//
// Errors are detected at the point of occurrence:
//   - [ with a zero cell and no matching ]: UNMATCHED_LOOP_BEGIN
//   - ] with an empty control stack: UNMATCHED_LOOP_END
//   - , with no input left: INPUT_EXHAUSTED
func (s *State) Step(p Program) error {
	if s.cursor.Done(p) {
		return nil
	}

	at := s.cursor
	next := at.Next()

	switch p[at] {
	case OpIncrement:
		s.tape.SetValue(s.tape.Value().Inc())

	case OpDecrement:
		s.tape.SetValue(s.tape.Value().Dec())

	case OpMoveLeft:
		s.tape.MoveLeft()

	case OpMoveRight:
		s.tape.MoveRight()

	case OpLoopBegin:
		if s.tape.Value().IsZero() {
			skipped, err := p.skipLoop(next)
			if err != nil {
				return err
			}
			next = skipped
		} else {
			s.stack.push(next)
		}

	case OpLoopEnd:
		resume, ok := s.stack.top()
		if !ok {
			return NewUnmatchedLoopEndError(int(at))
		}
		// The condition is tested only here; re-entry at resume does not
		// re-evaluate the matching [.
		if s.tape.Value().IsZero() {
			s.stack.pop()
		} else {
			next = resume
		}

	case OpWrite:
		s.output = append(s.output, byte(s.tape.Value()))

	case OpRead:
		if len(s.input) == 0 {
			return NewInputExhaustedError(int(at), s.consumed)
		}
		s.tape.SetValue(Cell(s.input[0]))
		s.input = s.input[1:]
		s.consumed++
	}

	s.cursor = next
	return nil
}
