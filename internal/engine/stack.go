package engine

// controlStack holds one saved resume point per entered loop: the cursor
// just after its [.
type controlStack []Cursor

func (s *controlStack) push(c Cursor) {
	*s = append(*s, c)
}

// top returns the innermost resume point without removing it.
func (s controlStack) top() (Cursor, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// pop discards the innermost resume point.
// It reports false when the stack is already empty.
func (s *controlStack) pop() bool {
	if len(*s) == 0 {
		return false
	}
	*s = (*s)[:len(*s)-1]
	return true
}

func (s controlStack) depth() int {
	return len(s)
}
