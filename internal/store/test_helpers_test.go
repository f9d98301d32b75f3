package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/tapevm/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// writeTestProgram stores src and returns its hash.
func writeTestProgram(t *testing.T, s *Store, src string) string {
	t.Helper()
	hash := ir.ProgramHash([]byte(src))
	if err := s.WriteProgram(context.Background(), Program{Hash: hash, Source: []byte(src)}); err != nil {
		t.Fatalf("WriteProgram() failed: %v", err)
	}
	return hash
}

// createTestRun creates a successful run record with minimal required fields.
func createTestRun(id, programHash string, output []byte) Run {
	return Run{
		ID:          id,
		ProgramHash: programHash,
		Input:       []byte{},
		Output:      output,
		Status:      StatusOK,
		ErrorOffset: -1,
		Steps:       int64(len(output)),
		ResultHash:  "test-hash-" + id,
	}
}
