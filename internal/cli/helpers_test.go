package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapevm/internal/testutil"
)

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// recordRuns records one run per program in a fresh database and returns
// its path. Run IDs are rec-0001, rec-0002, ...
func recordRuns(t *testing.T, programs ...string) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "runs.db")
	ids := testutil.NewSequentialRunIDGenerator("rec")
	for _, src := range programs {
		cmd := newRunCommand(&RootOptions{Format: "text"}, ids)
		_, _, err := execute(cmd, "--db", dbPath, "--eval", src, "--input", "xy")
		if err != nil {
			require.Equal(t, ExitFailure, GetExitCode(err), "unexpected command error: %v", err)
		}
	}
	return dbPath
}
