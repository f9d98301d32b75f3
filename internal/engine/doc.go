// Package engine implements the tapevm execution engine.
//
// A program is a sequence of eight single-byte instructions operating on a
// doubly-infinite tape of wrapping byte cells. Every other byte is a no-op,
// which lets source text carry comments.
//
// ARCHITECTURE:
//
// State and Step:
// State holds the cursor, the unread input, the output so far, the control
// stack and the tape. State.Step executes exactly one instruction. A step is
// all or nothing: on error the state is left as it was.
//
// Loop Resolution:
//   - Forward skip: [ on a zero cell scans ahead with a depth counter to
//     just past the matching ]. No jump table is precomputed, so the cost
//     is linear in the skipped body.
//   - Backward jump: [ on a nonzero cell pushes the cursor after it onto
//     the control stack. ] on a nonzero cell jumps to the top of the stack
//     in O(1); on a zero cell it pops.
//
// Engine:
// Engine.Run drives Step until the cursor is exhausted, stamps each step on
// a logical Clock, enforces the optional StepQuota and reports steps to an
// optional Tracer.
//
// Errors are detected lazily, only on the path actually executed; nothing
// is validated before the run starts.
//
// Execution is single-threaded and synchronous. There is no hidden global
// state; the same program and input always produce the same output.
package engine
