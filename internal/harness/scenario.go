package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: one program, one input,
// and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the inline program source.
	Program string `yaml:"program,omitempty"`

	// ProgramFile is a path to the program source, relative to the
	// scenario file. Exactly one of Program and ProgramFile is set.
	ProgramFile string `yaml:"program_file,omitempty"`

	// Input is the input as text.
	Input string `yaml:"input,omitempty"`

	// InputBytes is the input as byte values, for non-text input.
	// At most one of Input and InputBytes is set.
	InputBytes []int `yaml:"input_bytes,omitempty"`

	// Strict rejects non-opcode bytes in the program.
	Strict bool `yaml:"strict,omitempty"`

	// MaxSteps bounds the run; 0 means unlimited.
	MaxSteps int64 `yaml:"max_steps,omitempty"`

	// Expect is the expected outcome.
	Expect Expect `yaml:"expect"`

	// Assertions validate steps, trace and final tape.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// baseDir is the directory ProgramFile is resolved against.
	baseDir string
}

// Expect specifies the expected outcome of a run.
type Expect struct {
	// Output is the expected output as text.
	Output *string `yaml:"output,omitempty"`

	// OutputBytes is the expected output as byte values.
	OutputBytes []int `yaml:"output_bytes,omitempty"`

	// Error is the expected runtime error code, empty for success.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates a property of the run beyond its output.
type Assertion struct {
	// Type specifies the assertion type:
	// - "steps": total executed steps equals Count
	// - "trace_count": executed instances of Op equals Count
	// - "input_consumed": bytes read equals Count
	// - "max_depth": deepest loop nesting reached equals Count
	// - "final_cell": cell At positions from the pointer holds Value
	Type string `yaml:"type"`

	// Op is the instruction character (used by trace_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number (steps, trace_count, input_consumed, max_depth).
	Count int64 `yaml:"count,omitempty"`

	// At is the cell position relative to the final pointer (used by final_cell).
	At int `yaml:"at,omitempty"`

	// Value is the expected cell value (used by final_cell).
	Value int `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertSteps         = "steps"
	AssertTraceCount    = "trace_count"
	AssertInputConsumed = "input_consumed"
	AssertMaxDepth      = "max_depth"
	AssertFinalCell     = "final_cell"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// ProgramFile is resolved relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	scenario.baseDir = filepath.Dir(path)

	if scenario.ProgramFile != "" {
		if _, err := os.Stat(scenario.programPath()); err != nil {
			return nil, fmt.Errorf("invalid scenario: program file not found: %s", scenario.ProgramFile)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Source returns the program source bytes.
func (s *Scenario) Source() ([]byte, error) {
	if s.ProgramFile == "" {
		return []byte(s.Program), nil
	}
	data, err := os.ReadFile(s.programPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}
	return data, nil
}

// InputData returns the scenario input bytes.
func (s *Scenario) InputData() []byte {
	if s.InputBytes != nil {
		return intsToBytes(s.InputBytes)
	}
	return []byte(s.Input)
}

// ExpectedOutput returns the expected output bytes, or nil when the
// scenario does not pin the output.
func (s *Scenario) ExpectedOutput() []byte {
	switch {
	case s.Expect.Output != nil:
		return []byte(*s.Expect.Output)
	case s.Expect.OutputBytes != nil:
		return intsToBytes(s.Expect.OutputBytes)
	}
	return nil
}

func (s *Scenario) programPath() string {
	if filepath.IsAbs(s.ProgramFile) || s.baseDir == "" {
		return s.ProgramFile
	}
	return filepath.Join(s.baseDir, s.ProgramFile)
}

func intsToBytes(vals []int) []byte {
	b := make([]byte, len(vals))
	for i, v := range vals {
		b[i] = byte(v)
	}
	return b
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Program != "" && s.ProgramFile != "" {
		return fmt.Errorf("program and program_file are mutually exclusive")
	}

	if s.Input != "" && s.InputBytes != nil {
		return fmt.Errorf("input and input_bytes are mutually exclusive")
	}
	if err := validateByteValues("input_bytes", s.InputBytes); err != nil {
		return err
	}

	if s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative")
	}

	if s.Expect.Output != nil && s.Expect.OutputBytes != nil {
		return fmt.Errorf("expect: output and output_bytes are mutually exclusive")
	}
	if err := validateByteValues("expect.output_bytes", s.Expect.OutputBytes); err != nil {
		return err
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateByteValues(field string, vals []int) error {
	for i, v := range vals {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s[%d]: %d is not a byte value", field, i, v)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSteps, AssertInputConsumed, AssertMaxDepth:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertTraceCount:
		if len(a.Op) != 1 {
			return fmt.Errorf("assertions[%d]: op must be a single character for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalCell:
		if a.Value < 0 || a.Value > 255 {
			return fmt.Errorf("assertions[%d]: value must be 0-255 for final_cell", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
