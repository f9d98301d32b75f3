// Package ir provides the canonical record representation used for
// content-addressed identity and golden trace snapshots.
//
// ir imports nothing internal, so every other package may depend on it.
//
// Key design constraints:
//   - NO float and NO null values
//   - Raw bytes are carried as hex strings
//   - Logical step counts (seq) only, never wall-clock timestamps
package ir
