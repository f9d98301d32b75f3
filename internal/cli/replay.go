package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tapevm/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunID         string `json:"run_id"`
	Seq           int64  `json:"seq"`
	Status        string `json:"status"`
	Steps         int64  `json:"steps"`
	StoredHash    string `json:"stored_hash"`
	ReplayHash    string `json:"replay_hash"`
	Deterministic bool   `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [run-id]",
		Short: "Re-execute recorded runs and verify determinism",
		Long: `Re-execute recorded runs and verify they reproduce the same result.

Each run's program, input, strict flag and step limit are read from the
history and executed again. The replay's result hash (program, input,
output, steps and error code) must equal the recorded one.
Without a run ID every recorded run is replayed.

Exit codes:
  0 - All runs are deterministic
  1 - A replay differed from its recording
  2 - Command error (database not found, unknown run, etc.)

Examples:
  tapevm replay --db runs.db
  tapevm replay --db runs.db 0192f0c4-8c1e-7a3b-9d2e-5f6a7b8c9d0e
  tapevm replay --db runs.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, args []string, cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openExistingStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var runs []store.Run
	if len(args) == 1 {
		r, err := st.ReadRun(ctx, args[0])
		if err != nil {
			return commandError(formatter, ErrCodeNotFound, err)
		}
		runs = []store.Run{r}
	} else {
		runs, err = st.ListRuns(ctx, store.RunFilter{})
		if err != nil {
			return commandError(formatter, ErrCodeDatabase, err)
		}
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runs)),
		TotalRuns:        len(runs),
		AllDeterministic: true,
	}

	for _, r := range runs {
		runResult, err := replayRun(ctx, st, r)
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, fmt.Errorf("failed to replay run %s: %w", r.ID, err))
		}
		formatter.VerboseLog("replayed %s: %d steps", r.ID, runResult.Steps)

		result.Runs = append(result.Runs, runResult)
		if !runResult.Deterministic {
			result.AllDeterministic = false
		}
	}

	if formatter.IsJSON() {
		return outputReplayJSON(formatter, result)
	}
	return outputReplayText(formatter, result)
}

// replayRun re-executes one recorded run against its stored program.
func replayRun(ctx context.Context, st *store.Store, r store.Run) (ReplayRunResult, error) {
	program, err := st.ReadProgram(ctx, r.ProgramHash)
	if err != nil {
		return ReplayRunResult{}, err
	}

	x, err := executeProgram(program.Source, r.Input, r.Strict, r.MaxSteps, false)
	if err != nil {
		return ReplayRunResult{}, err
	}

	hash, err := x.ResultHash()
	if err != nil {
		return ReplayRunResult{}, err
	}

	return ReplayRunResult{
		RunID:      r.ID,
		Seq:        r.Seq,
		Status:     r.Status,
		Steps:      x.Steps,
		StoredHash: r.ResultHash,
		ReplayHash: hash,
		Deterministic: hash == r.ResultHash &&
			x.ProgramHash == r.ProgramHash &&
			bytes.Equal(x.Output, r.Output),
	}, nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(formatter *OutputFormatter, result ReplayResult) error {
	if result.AllDeterministic {
		return formatter.Success(result)
	}

	if err := formatter.Failure(ErrCodeDeterminism, "determinism verification failed", result); err != nil {
		return err
	}
	return NewExitError(ExitFailure, "determinism verification failed")
}

// outputReplayText outputs the replay result as text.
func outputReplayText(formatter *OutputFormatter, result ReplayResult) error {
	w := formatter.Writer

	if result.TotalRuns == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		mark := "✓"
		if !run.Deterministic {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s Run %d: %s (%s, %d steps)\n", mark, run.Seq, run.RunID, run.Status, run.Steps)
		if !run.Deterministic {
			fmt.Fprintf(w, "  recorded %s\n  replayed %s\n", shortHash(run.StoredHash), shortHash(run.ReplayHash))
		}
	}
	fmt.Fprintln(w)

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All runs verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
