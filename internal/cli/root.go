package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	LogFile string // optional JSON log destination

	level   *slog.LevelVar
	logFile *os.File
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Execute runs the tapevm CLI with the process arguments.
func Execute() error {
	cmd, opts := newRootCommand()
	return executeRoot(cmd, opts)
}

// executeRoot runs cmd and closes the log file on every exit path.
// Cobra skips PersistentPostRunE when RunE fails.
func executeRoot(cmd *cobra.Command, opts *RootOptions) (err error) {
	defer func() {
		if cerr := opts.closeLog(); err == nil {
			err = cerr
		}
	}()
	return cmd.Execute()
}

// NewRootCommand creates the root command for the tapevm CLI.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tapevm",
		Short: "tapevm - a tape machine for the eight-instruction language",
		Long: `A minimal virtual machine for the eight-instruction tape language.

Programs walk a pointer over an unbounded tape of byte cells and exchange
bytes with an input and an output stream. Runs can be recorded to a SQLite
history, replayed to check determinism and validated against scenarios.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setupLogging(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.closeLog()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "also write JSON logs to this file")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd, opts
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
