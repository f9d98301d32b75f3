package store

import (
	"context"
	"fmt"
)

// WriteProgram stores program source under its content hash.
// Uses ON CONFLICT(hash) DO NOTHING: writing the same program twice is a
// no-op.
func (s *Store) WriteProgram(ctx context.Context, p Program) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO programs (hash, source, size)
		VALUES (?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, p.Hash, nonNil(p.Source), len(p.Source))
	if err != nil {
		return fmt.Errorf("write program: %w", err)
	}
	return nil
}

// WriteRun appends a run record and returns its assigned seq.
//
// The seq is MAX(seq)+1 computed in the same transaction as the insert, so
// seq values are gap-free and strictly increasing in write order.
//
// Note: The program referenced by ProgramHash must exist (foreign key
// constraint). Writing a run ID twice is an error.
func (s *Store) WriteRun(ctx context.Context, r Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, program_hash, input, output, status, error_code, error_offset, steps, max_steps, strict, result_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		seq,
		r.ProgramHash,
		nonNil(r.Input),
		nonNil(r.Output),
		r.Status,
		r.ErrorCode,
		r.ErrorOffset,
		r.Steps,
		r.MaxSteps,
		r.Strict,
		r.ResultHash,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

// nonNil keeps NOT NULL BLOB columns satisfied for empty byte slices.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
