package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tapevm", cmd.Use)
	assert.Contains(t, cmd.Long, "unbounded tape")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "validate", "test", "history", "replay"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	logFlag := cmd.PersistentFlags().Lookup("log-file")
	require.NotNil(t, logFlag)
	assert.Equal(t, "", logFlag.DefValue)
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	for _, name := range []string{"eval", "input", "input-file", "db", "max-steps", "strict", "encoding", "config", "trace", "no-newline"} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "missing flag --%s", name)
	}
	assert.Equal(t, "e", runCmd.Flags().Lookup("eval").Shorthand)
	assert.Equal(t, "raw", runCmd.Flags().Lookup("encoding").DefValue)
}

func TestRootInvalidFormat(t *testing.T) {
	_, _, err := execute(NewRootCommand(), "--format", "xml", "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootRunsDefaultProgram(t *testing.T) {
	stdout, _, err := execute(NewRootCommand(), "run")
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n\n", stdout)
}

func TestRootLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "tapevm.log")
	dbPath := filepath.Join(dir, "runs.db")

	_, stderr, err := execute(NewRootCommand(),
		"--log-file", logPath,
		"run", "--db", dbPath, "--eval", "+.", "--no-newline",
	)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"run recorded"`)
	assert.Contains(t, stderr, "run recorded", "text handler still writes to stderr")
}

func TestExecuteRootClosesLogFileOnFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tapevm.log")

	cmd, opts := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-file", logPath, "--verbose", "run", "--eval", "+]"})

	err := executeRoot(cmd, opts)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Nil(t, opts.logFile, "log file must be closed after a failed run")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestExecuteRootClosesLogFileOnCommandError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tapevm.log")

	cmd, opts := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-file", logPath, "run", "--max-steps=-1"})

	err := executeRoot(cmd, opts)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Nil(t, opts.logFile)
}

func TestRootLogFileUnwritable(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "missing", "tapevm.log")

	_, _, err := execute(NewRootCommand(), "--log-file", logPath, "run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootTraceLogsSteps(t *testing.T) {
	_, stderr, err := execute(NewRootCommand(), "run", "--trace", "--eval", "+.", "--no-newline")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=step")
	assert.Contains(t, stderr, "op=+")
}
