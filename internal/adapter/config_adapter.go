package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/jscov/internal/model"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = ".jscov.yaml"

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ConfigAdapter loads and validates .jscov.yaml files.
type ConfigAdapter interface {
	// Load reads the config at path. A missing file yields the zero Config
	// unless required is set.
	Load(path m.Path, required bool) (m.Config, error)
}

// LocalConfigAdapter reads configuration from disk.
type LocalConfigAdapter struct {
	validate *validator.Validate
}

// NewLocalConfigAdapter constructs a LocalConfigAdapter with the jscov
// validation rules registered.
func NewLocalConfigAdapter() *LocalConfigAdapter {
	v := validator.New()
	_ = v.RegisterValidation("jsident", validateJSIdentifier)

	return &LocalConfigAdapter{validate: v}
}

func validateJSIdentifier(fl validator.FieldLevel) bool {
	return jsIdentifier.MatchString(fl.Field().String())
}

// Load reads, decodes and validates the config file at path.
func (a *LocalConfigAdapter) Load(path m.Path, required bool) (m.Config, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return m.Config{}, nil
		}

		return m.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return a.Parse(data)
}

// Parse decodes a YAML document into a Config. Unknown keys are rejected.
func (a *LocalConfigAdapter) Parse(data []byte) (m.Config, error) {
	var cfg m.Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return m.Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := a.validate.Struct(cfg); err != nil {
		return m.Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
