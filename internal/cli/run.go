package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/roach88/tapevm/internal/config"
	"github.com/roach88/tapevm/internal/engine"
	"github.com/roach88/tapevm/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Eval      string
	Input     string
	InputFile string
	Database  string
	MaxSteps  int64
	Strict    bool
	Encoding  string
	Config    string
	Trace     bool
	NoNewline bool

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// RunReport is the JSON payload of a successful run.
type RunReport struct {
	RunID         string `json:"run_id,omitempty"`
	ProgramHash   string `json:"program_hash"`
	Output        string `json:"output"`
	OutputHex     string `json:"output_hex"`
	Steps         int64  `json:"steps"`
	InputConsumed int    `json:"input_consumed"`
	ResultHash    string `json:"result_hash"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(rootOpts, nil)
}

// newRunCommand creates the run command with a custom run ID generator.
func newRunCommand(rootOpts *RootOptions, ids engine.RunIDGenerator) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts, RunIDs: ids}

	cmd := &cobra.Command{
		Use:   "run [program-file]",
		Short: "Execute a program",
		Long: `Execute a program against an input and print its output.

The program comes from a file, from --eval, or defaults to a program that
prints "Hello World!". Bytes other than the eight instructions are comments
unless --strict is set. A newline follows the output unless --no-newline.

With --db the run is recorded in the run history and can be replayed later.

Exit codes:
  0 - Program completed
  1 - Program failed (unmatched bracket, input exhausted, step limit)
  2 - Command error (unreadable file, invalid flags, database error)

Examples:
  tapevm run
  tapevm run hello.bf
  tapevm run --eval ',[.,]' --input 'echo me' --no-newline
  tapevm run --db runs.db --max-steps 1000000 program.bf
  tapevm run --config tapevm.toml program.bf`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Eval, "eval", "e", "", "program source given inline")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "program input as text")
	cmd.Flags().StringVar(&opts.InputFile, "input-file", "", "read program input from file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().Int64Var(&opts.MaxSteps, "max-steps", 0, "stop after this many steps (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject bytes that are not instructions")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", config.EncodingRaw, "text encoding of input and output (raw|latin1)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "load defaults from a .cue or .toml file")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "log every executed step")
	cmd.Flags().BoolVar(&opts.NoNewline, "no-newline", false, "do not print a newline after the output")

	return cmd
}

func runProgram(opts *RunOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := resolveRunConfig(opts, cmd)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err)
	}

	src, err := loadProgram(opts, args)
	if err != nil {
		return commandError(formatter, ErrCodeReadFailed, err)
	}

	input, err := loadInput(opts, cfg.Encoding)
	if err != nil {
		return commandError(formatter, ErrCodeReadFailed, err)
	}

	if opts.Trace {
		opts.enableDebug()
	}

	slog.Debug("executing program",
		"bytes", len(src),
		"input_bytes", len(input),
		"strict", cfg.Strict,
		"max_steps", cfg.MaxSteps,
	)

	x, err := executeProgram(src, input, cfg.Strict, cfg.MaxSteps, opts.Trace)
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, err)
	}

	resultHash, err := x.ResultHash()
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, err)
	}

	var runID string
	if cfg.DB != "" {
		runID, err = recordRun(cmdContext(cmd), opts, cfg, src, x, resultHash)
		if err != nil {
			return commandError(formatter, ErrCodeDatabase, err)
		}
	}

	if x.Err != nil {
		slog.Debug("program failed", "code", x.Err.Code, "steps", x.Steps, "run_id", runID)
		details := runtimeErrorDetails(x.Err)
		if runID != "" {
			details["run_id"] = runID
		}
		_ = formatter.Error(string(x.Err.Code), x.Err.Message, details)
		return WrapExitError(ExitFailure, "program failed", x.Err)
	}

	rendered, err := renderOutput(x.Output, cfg.Encoding)
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, err)
	}

	if formatter.IsJSON() {
		return formatter.Success(RunReport{
			RunID:         runID,
			ProgramHash:   x.ProgramHash,
			Output:        string(rendered),
			OutputHex:     hex.EncodeToString(x.Output),
			Steps:         x.Steps,
			InputConsumed: x.InputConsumed,
			ResultHash:    resultHash,
		})
	}

	w := cmd.OutOrStdout()
	if _, err := w.Write(rendered); err != nil {
		return err
	}
	if cfg.TrailingNewline {
		fmt.Fprintln(w)
	}
	formatter.VerboseLog("%d steps, %d input bytes consumed", x.Steps, x.InputConsumed)
	return nil
}

// resolveRunConfig merges the optional config file with explicitly set flags.
// Flags win over the file.
func resolveRunConfig(opts *RunOptions, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("max-steps") {
		cfg.MaxSteps = opts.MaxSteps
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.Strict
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.Encoding
	}
	if flags.Changed("db") {
		cfg.DB = opts.Database
	}
	if flags.Changed("no-newline") {
		cfg.TrailingNewline = !opts.NoNewline
	}

	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("--max-steps must be non-negative, got %d", cfg.MaxSteps)
	}
	if cfg.Encoding != config.EncodingRaw && cfg.Encoding != config.EncodingLatin1 {
		return nil, fmt.Errorf("invalid encoding %q: must be %s or %s", cfg.Encoding, config.EncodingRaw, config.EncodingLatin1)
	}
	return cfg, nil
}

// loadProgram returns the program source from a file, --eval or the default.
func loadProgram(opts *RunOptions, args []string) ([]byte, error) {
	switch {
	case len(args) == 1 && opts.Eval != "":
		return nil, fmt.Errorf("program file and --eval are mutually exclusive")
	case len(args) == 1:
		src, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read program: %w", err)
		}
		return src, nil
	case opts.Eval != "":
		return []byte(opts.Eval), nil
	default:
		return []byte(helloWorld), nil
	}
}

// loadInput returns the program input. Text given with --input is encoded
// with the configured encoding; --input-file bytes are used as-is.
func loadInput(opts *RunOptions, encoding string) ([]byte, error) {
	if opts.Input != "" && opts.InputFile != "" {
		return nil, fmt.Errorf("--input and --input-file are mutually exclusive")
	}
	if opts.InputFile != "" {
		data, err := os.ReadFile(opts.InputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return data, nil
	}
	if encoding == config.EncodingLatin1 {
		data, err := charmap.ISO8859_1.NewEncoder().String(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("input is not representable in latin1: %w", err)
		}
		return []byte(data), nil
	}
	return []byte(opts.Input), nil
}

// renderOutput converts program output bytes for display.
func renderOutput(out []byte, encoding string) ([]byte, error) {
	if encoding == config.EncodingLatin1 {
		return charmap.ISO8859_1.NewDecoder().Bytes(out)
	}
	return out, nil
}

// recordRun stores the program and the run, returning the new run ID.
func recordRun(ctx context.Context, opts *RunOptions, cfg *config.Config, src []byte, x *execution, resultHash string) (string, error) {
	st, err := store.Open(cfg.DB)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := st.WriteProgram(ctx, store.Program{
		Hash:   x.ProgramHash,
		Source: src,
		Size:   len(src),
	}); err != nil {
		return "", err
	}

	ids := opts.RunIDs
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}

	status := store.StatusOK
	if x.Err != nil {
		status = store.StatusError
	}

	run := store.Run{
		ID:          ids.Generate(),
		ProgramHash: x.ProgramHash,
		Input:       x.Input,
		Output:      x.Output,
		Status:      status,
		ErrorCode:   x.ErrorCode(),
		ErrorOffset: x.ErrorOffset(),
		Steps:       x.Steps,
		MaxSteps:    cfg.MaxSteps,
		Strict:      cfg.Strict,
		ResultHash:  resultHash,
	}
	seq, err := st.WriteRun(ctx, run)
	if err != nil {
		return "", err
	}

	slog.Info("run recorded", "run_id", run.ID, "seq", seq, "status", status)
	return run.ID, nil
}

// commandError reports a command-level failure and maps it to exit code 2.
func commandError(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	return NewExitError(ExitCommandError, err.Error())
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
