package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ReadProgram returns the program stored under hash.
// Returns an error wrapping ErrNotFound if no such program exists.
func (s *Store) ReadProgram(ctx context.Context, hash string) (Program, error) {
	var p Program
	err := s.db.QueryRowContext(ctx, `
		SELECT hash, source, size FROM programs WHERE hash = ?
	`, hash).Scan(&p.Hash, &p.Source, &p.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return Program{}, fmt.Errorf("read program %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return Program{}, fmt.Errorf("read program: %w", err)
	}
	return p, nil
}

// ReadRun returns the run with the given ID.
// Returns an error wrapping ErrNotFound if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs WHERE id = ?
	`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return r, nil
}

// ListRuns returns runs matching the filter.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no runs match.
func (s *Store) ListRuns(ctx context.Context, f RunFilter) ([]Run, error) {
	var (
		where []string
		args  []any
	)
	if f.ProgramHash != "" {
		where = append(where, "program_hash = ?")
		args = append(args, f.ProgramHash)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

const runColumns = `id, seq, program_hash, input, output, status, error_code, error_offset, steps, max_steps, strict, result_hash`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	err := sc.Scan(
		&r.ID,
		&r.Seq,
		&r.ProgramHash,
		&r.Input,
		&r.Output,
		&r.Status,
		&r.ErrorCode,
		&r.ErrorOffset,
		&r.Steps,
		&r.MaxSteps,
		&r.Strict,
		&r.ResultHash,
	)
	return r, err
}
