package engine

import "fmt"

// Instruction is a single program byte.
// Only the eight opcodes below have an effect; every other byte is a no-op
// so that programs may carry comments and whitespace.
type Instruction byte

const (
	OpIncrement Instruction = '+' // increment the focused cell
	OpDecrement Instruction = '-' // decrement the focused cell
	OpMoveLeft  Instruction = '<' // move the pointer left
	OpMoveRight Instruction = '>' // move the pointer right
	OpLoopBegin Instruction = '[' // skip past matching ] if the cell is zero
	OpLoopEnd   Instruction = ']' // jump back after matching [ if the cell is nonzero
	OpRead      Instruction = ',' // read one input byte into the cell
	OpWrite     Instruction = '.' // append the cell to output
)

// IsOpcode reports whether the instruction is one of the eight opcodes.
func (op Instruction) IsOpcode() bool {
	switch op {
	case OpIncrement, OpDecrement, OpMoveLeft, OpMoveRight,
		OpLoopBegin, OpLoopEnd, OpRead, OpWrite:
		return true
	}
	return false
}

// String returns the opcode character, or a quoted byte for no-ops.
func (op Instruction) String() string {
	if op.IsOpcode() {
		return string(rune(op))
	}
	return fmt.Sprintf("%q", byte(op))
}

// Program is an immutable instruction sequence, fixed for one execution.
type Program []Instruction

// Parse converts raw source bytes into a Program.
//
// In permissive mode every byte is kept and non-opcodes execute as no-ops.
// In strict mode the first non-opcode byte is rejected with an
// UNKNOWN_INSTRUCTION error carrying its offset.
//
// Parse does not inspect bracket structure: unmatched brackets are detected
// lazily, only on the control-flow path actually taken.
func Parse(src []byte, strict bool) (Program, error) {
	p := make(Program, len(src))
	for i, b := range src {
		op := Instruction(b)
		if strict && !op.IsOpcode() {
			return nil, NewUnknownInstructionError(i, b)
		}
		p[i] = op
	}
	return p, nil
}

// MustParse is like Parse in permissive mode. Permissive parsing never fails.
func MustParse(src string) Program {
	p, err := Parse([]byte(src), false)
	if err != nil {
		panic(err)
	}
	return p
}

// Cursor marks the start of the remaining, unconsumed instruction suffix.
// Because the program never changes during a run, an offset is enough to
// stand for the suffix itself.
type Cursor int

// Done reports whether no instructions remain.
func (c Cursor) Done(p Program) bool {
	return int(c) >= len(p)
}

// Next returns the cursor advanced past one instruction.
func (c Cursor) Next() Cursor {
	return c + 1
}

// skipLoop performs the forward skip for a loop whose body must not run.
//
// from is the cursor just after the [ at offset from-1. The scan keeps a
// depth counter starting at 1: every [ increments it and every ] decrements
// it. The returned cursor points just after the ] that brings depth to 0.
// Running off the end of the program with depth still positive is an
// UNMATCHED_LOOP_BEGIN error reported at the opening bracket.
func (p Program) skipLoop(from Cursor) (Cursor, error) {
	depth := 1
	for c := from; !c.Done(p); c = c.Next() {
		switch p[c] {
		case OpLoopBegin:
			depth++
		case OpLoopEnd:
			depth--
			if depth == 0 {
				return c.Next(), nil
			}
		}
	}
	return 0, NewUnmatchedLoopBeginError(int(from) - 1)
}
