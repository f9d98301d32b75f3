package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/BurntSushi/toml"
)

//go:embed schema.cue
var schemaSource string

// Output encodings.
const (
	EncodingRaw    = "raw"
	EncodingLatin1 = "latin1"
)

// Config holds the settings a run can take from a file.
type Config struct {
	MaxSteps        int64
	Strict          bool
	Encoding        string
	DB              string
	TrailingNewline bool
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Encoding:        EncodingRaw,
		TrailingNewline: true,
	}
}

var knownFields = map[string]bool{
	"max_steps":        true,
	"strict":           true,
	"encoding":         true,
	"db":               true,
	"trailing_newline": true,
}

// ConfigError describes an invalid configuration file.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads a configuration file, choosing the format by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return ParseCUE(data, path)
	case ".toml":
		return ParseTOML(data, path)
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .cue or .toml)", ext)
	}
}

// ParseCUE parses CUE configuration source. filename is used in error
// positions only.
func ParseCUE(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
	}
	return fromValue(ctx, v, filename)
}

// ParseTOML parses TOML configuration source and validates it through the
// same schema as CUE files.
func ParseTOML(data []byte, filename string) (*Config, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()
	v := ctx.Encode(raw)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
	}
	return fromValue(ctx, v, filename)
}

// fromValue validates v against #Config and extracts the settings.
func fromValue(ctx *cue.Context, v cue.Value, filename string) (*Config, error) {
	if err := checkFields(v); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue")).
		LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
	}

	cfg := Default()
	if f := unified.LookupPath(cue.ParsePath("max_steps")); f.Exists() {
		n, err := f.Int64()
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
		}
		cfg.MaxSteps = n
	}
	if f := unified.LookupPath(cue.ParsePath("strict")); f.Exists() {
		b, err := f.Bool()
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
		}
		cfg.Strict = b
	}
	if f := unified.LookupPath(cue.ParsePath("encoding")); f.Exists() {
		s, err := f.String()
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
		}
		cfg.Encoding = s
	}
	if f := unified.LookupPath(cue.ParsePath("db")); f.Exists() {
		s, err := f.String()
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
		}
		cfg.DB = s
	}
	if f := unified.LookupPath(cue.ParsePath("trailing_newline")); f.Exists() {
		b, err := f.Bool()
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", filename, formatCUEError(err))
		}
		cfg.TrailingNewline = b
	}

	return cfg, nil
}

// checkFields rejects top-level fields #Config does not declare.
func checkFields(v cue.Value) error {
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Selector().String()
		if !knownFields[name] {
			return &ConfigError{
				Field:   name,
				Message: "unknown field",
				Pos:     iter.Value().Pos(),
			}
		}
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &ConfigError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
