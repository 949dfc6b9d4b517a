// Package config loads batch run configuration from CUE files.
//
// A configuration file is unified with an embedded #Config schema that
// supplies defaults and rejects unknown fields. Relative paths in the file
// are resolved against the file's folder.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// Config describes one batch comparison.
type Config struct {
	Input       string   `json:"input"`
	Constraints bool     `json:"constraints"`
	Workers     int      `json:"workers"`
	JSON        bool     `json:"json"`
	DB          string   `json:"db,omitempty"`
	Metrics     string   `json:"metrics,omitempty"`
	Outputs     *Outputs `json:"outputs,omitempty"`
}

// Outputs overrides the report file names.
type Outputs struct {
	Structures  string `json:"structures"`
	Comparisons string `json:"comparisons"`
}

// Default returns the configuration used when no file is given.
func Default(input string) Config {
	return Config{
		Input:       input,
		Constraints: true,
		Workers:     1,
	}
}

// Error codes carried by LoadError.
const (
	ErrCodeNotFound     = "E005" // Config file not found
	ErrCodeBuildFailed  = "E006" // CUE syntax or evaluation error
	ErrCodeInvalidValue = "E201" // Value violates the schema
)

// LoadError represents an error that occurred while loading a configuration.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading config: %v", err)}
	}

	cfg, err := Parse(path, src)
	if err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse validates CUE source against the schema and decodes it.
// filename is only used in error positions.
func Parse(filename string, src []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	data := ctx.CompileBytes(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, convertCUEError(ErrCodeBuildFailed, err)
	}

	value := def.Unify(data)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, convertCUEError(ErrCodeInvalidValue, err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, convertCUEError(ErrCodeInvalidValue, err)
	}
	return &cfg, nil
}

// resolve makes relative paths relative to dir.
func (c *Config) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Input = abs(c.Input)
	c.DB = abs(c.DB)
	c.Metrics = abs(c.Metrics)
	if c.Outputs != nil {
		c.Outputs.Structures = abs(c.Outputs.Structures)
		c.Outputs.Comparisons = abs(c.Outputs.Comparisons)
	}
}

// convertCUEError keeps the first CUE error with its path and position.
func convertCUEError(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	msg := fmt.Sprintf(format, args...)
	if path := first.Path(); len(path) > 0 {
		msg = strings.Join(path, ".") + ": " + msg
	}
	return &LoadError{
		Code:    code,
		Message: msg,
		Pos:     first.Position(),
	}
}
