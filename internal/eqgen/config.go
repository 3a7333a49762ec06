package eqgeninternal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sublee/eqgen/internal/member"
)

// ConfigFile is the name of the config file looked up in the working
// directory.
const ConfigFile = ".eqgen.yaml"

var validate = validator.New()

// Config is the content of a config file:
//
//	output: eqgen_gen.go
//	tags: integration
//	tests: false
//	default_mode: constructor # or all
//	workers: 4
//	keep_going: false
//	color: auto # or always, never
type Config struct {
	Output      string `yaml:"output" validate:"required,endswith=.go"`
	Tags        string `yaml:"tags,omitempty"`
	Tests       bool   `yaml:"tests,omitempty"`
	DefaultMode string `yaml:"default_mode,omitempty" validate:"omitempty,oneof=constructor all"`
	Workers     int    `yaml:"workers,omitempty" validate:"gte=0"`
	KeepGoing   bool   `yaml:"keep_going,omitempty"`
	Color       string `yaml:"color,omitempty" validate:"omitempty,oneof=auto always never"`
}

// DefaultConfig returns the config used without a config file.
func DefaultConfig() Config {
	return Config{
		Output:      DefaultOutput,
		DefaultMode: "constructor",
		Color:       "auto",
	}
}

// LoadConfig reads the config file at path. Unspecified fields keep their
// default values. If the file does not exist and required is false, it
// returns the default config.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values of the config.
func (cfg Config) Validate() error {
	err := validate.Struct(cfg)

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}

	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, fmt.Sprintf("%s: %s", yamlName(ve.StructField()), formatValidationError(ve)))
	}
	return errors.New(strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "endswith":
		return fmt.Sprintf("must end with %q", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(ve.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	}
	return fmt.Sprintf("failed on %s", ve.Tag())
}

// yamlName returns the key of the field in the config file.
func yamlName(field string) string {
	switch field {
	case "DefaultMode":
		return "default_mode"
	case "KeepGoing":
		return "keep_going"
	}
	return strings.ToLower(field)
}

// Mode returns the default mode.
func (cfg Config) Mode() member.Mode {
	if cfg.DefaultMode == "all" {
		return member.AllVals()
	}
	return member.ConstructorVals()
}

// Options converts the config to [Options].
func (cfg Config) Options() Options {
	return Options{
		Tags:        cfg.Tags,
		Tests:       cfg.Tests,
		Output:      cfg.Output,
		DefaultMode: cfg.Mode(),
		Workers:     cfg.Workers,
		KeepGoing:   cfg.KeepGoing,
	}
}
