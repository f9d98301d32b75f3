package cli

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tapevm/internal/engine"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Strict bool
}

// LintIssue is one static problem found in a program.
type LintIssue struct {
	Code    string `json:"code"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
}

// LintReport summarizes a program without executing it.
type LintReport struct {
	Valid        bool        `json:"valid"`
	Size         int         `json:"size"`
	Instructions int         `json:"instructions"`
	NonOpcodes   int         `json:"non_opcodes"`
	MaxDepth     int         `json:"max_depth"`
	Issues       []LintIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <program-file>",
		Short: "Check a program without running it",
		Long: `Check bracket balance and count instructions without executing.

The engine itself reports bracket problems lazily, only when execution
reaches them. validate finds every unmatched bracket up front. With
--strict, bytes that are not instructions are reported too.

Exit codes:
  0 - Program is valid
  1 - Issues found
  2 - Command error (unreadable file)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "report bytes that are not instructions")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	src, err := os.ReadFile(path)
	if err != nil {
		code := ErrCodeReadFailed
		if os.IsNotExist(err) {
			code = ErrCodeNotFound
		}
		return commandError(formatter, code, fmt.Errorf("failed to read program: %w", err))
	}

	report := lintProgram(src, opts.Strict)
	formatter.VerboseLog("%s: %d bytes, %d instructions", path, report.Size, report.Instructions)

	if report.Valid {
		if formatter.IsJSON() {
			return formatter.Success(report)
		}
		fmt.Fprintf(formatter.Writer, "✓ %s is valid (%d instructions, %d comment bytes, max depth %d)\n",
			path, report.Instructions, report.NonOpcodes, report.MaxDepth)
		return nil
	}

	message := fmt.Sprintf("validation failed with %d issue(s)", len(report.Issues))
	if formatter.IsJSON() {
		if err := formatter.Failure(ErrCodeLint, message, report); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}

	fmt.Fprintf(formatter.Writer, "✗ %s\n", path)
	for _, issue := range report.Issues {
		fmt.Fprintf(formatter.Writer, "  offset %d: %s: %s\n", issue.Offset, issue.Code, issue.Message)
	}
	return NewExitError(ExitFailure, message)
}

// lintProgram scans src once, pairing brackets with a stack of open offsets.
func lintProgram(src []byte, strict bool) LintReport {
	report := LintReport{Size: len(src)}
	var open []int

	for i, b := range src {
		op := engine.Instruction(b)
		if !op.IsOpcode() {
			report.NonOpcodes++
			if strict {
				report.Issues = append(report.Issues, LintIssue{
					Code:    string(engine.ErrCodeUnknownInstruction),
					Offset:  i,
					Message: fmt.Sprintf("byte %s is not an instruction", op),
				})
			}
			continue
		}

		report.Instructions++
		switch op {
		case engine.OpLoopBegin:
			open = append(open, i)
			if len(open) > report.MaxDepth {
				report.MaxDepth = len(open)
			}
		case engine.OpLoopEnd:
			if len(open) == 0 {
				report.Issues = append(report.Issues, LintIssue{
					Code:    string(engine.ErrCodeUnmatchedLoopEnd),
					Offset:  i,
					Message: "] has no matching [",
				})
				continue
			}
			open = open[:len(open)-1]
		}
	}

	for _, at := range open {
		report.Issues = append(report.Issues, LintIssue{
			Code:    string(engine.ErrCodeUnmatchedLoopBegin),
			Offset:  at,
			Message: "[ has no matching ]",
		})
	}

	slices.SortStableFunc(report.Issues, func(a, b LintIssue) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	report.Valid = len(report.Issues) == 0
	return report
}
