package cli

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tapevm/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database    string
	ProgramHash string
	Status      string
	Limit       int
}

// HistoryEntry is one run in the history listing.
type HistoryEntry struct {
	Seq         int64  `json:"seq"`
	ID          string `json:"id"`
	ProgramHash string `json:"program_hash"`
	Status      string `json:"status"`
	ErrorCode   string `json:"error_code,omitempty"`
	Steps       int64  `json:"steps"`
	OutputHex   string `json:"output_hex"`
	ResultHash  string `json:"result_hash"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with 'tapevm run --db', oldest first.

Examples:
  tapevm history --db runs.db
  tapevm history --db runs.db --status error --limit 10
  tapevm history --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ProgramHash, "program", "", "only runs of this program hash")
	cmd.Flags().StringVar(&opts.Status, "status", "", "only runs with this status (ok|error)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Status != "" && opts.Status != store.StatusOK && opts.Status != store.StatusError {
		return commandError(formatter, ErrCodeInvalidFlag,
			fmt.Errorf("invalid status %q: must be %s or %s", opts.Status, store.StatusOK, store.StatusError))
	}
	if opts.Limit < 0 {
		return commandError(formatter, ErrCodeInvalidFlag, fmt.Errorf("--limit must be non-negative"))
	}

	st, err := openExistingStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmdContext(cmd), store.RunFilter{
		ProgramHash: opts.ProgramHash,
		Status:      opts.Status,
		Limit:       opts.Limit,
	})
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err)
	}

	entries := make([]HistoryEntry, len(runs))
	for i, r := range runs {
		entries[i] = HistoryEntry{
			Seq:         r.Seq,
			ID:          r.ID,
			ProgramHash: r.ProgramHash,
			Status:      r.Status,
			ErrorCode:   r.ErrorCode,
			Steps:       r.Steps,
			OutputHex:   hex.EncodeToString(r.Output),
			ResultHash:  r.ResultHash,
		}
	}

	if formatter.IsJSON() {
		return formatter.Success(entries)
	}

	w := formatter.Writer
	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, e := range entries {
		status := e.Status
		if e.ErrorCode != "" {
			status = e.ErrorCode
		}
		fmt.Fprintf(w, "%4d  %s  %s  %d steps  program %s\n",
			e.Seq, e.ID, status, e.Steps, shortHash(e.ProgramHash))
	}
	return nil
}

// openExistingStore opens a run history for reading and reports failures
// as command errors.
func openExistingStore(formatter *OutputFormatter, path string) (*store.Store, error) {
	st, err := store.OpenExisting(path)
	if err != nil {
		code := ErrCodeDatabase
		if errors.Is(err, store.ErrNotFound) {
			code = ErrCodeNotFound
		}
		return nil, commandError(formatter, code, err)
	}
	return st, nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
