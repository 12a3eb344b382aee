package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pablor21/boollike/logger"
	"gopkg.in/yaml.v3"
)

//go:embed config.yml
var defaultConfigFile embed.FS

// DefaultFileName is the project configuration file looked up in the working directory
const DefaultFileName = ".boollike.yml"

type Config struct {
	LogLevel    *logger.LogLevel  `json:"log_level" yaml:"log_level"`
	Scanning    ScanningConfig    `json:"scanning" yaml:"scanning"`
	Annotations AnnotationsConfig `json:"annotations" yaml:"annotations"`
	Generation  GenerationConfig  `json:"generation" yaml:"generation"`
	Validation  ValidationConfig  `json:"validation" yaml:"validation"`

	// Directory relative scanning patterns are resolved against (not serialized)
	Dir string `json:"-" yaml:"-"`
}

type ScanningConfig struct {
	Packages []string `json:"packages" yaml:"packages"`
}

// AnnotationsConfig names the comment annotations the scanner reacts to
type AnnotationsConfig struct {
	Prefix      string   `json:"prefix" yaml:"prefix"`             // e.g. "gen" also matches @genboollike
	Type        []string `json:"type" yaml:"type"`                 // marks a type for expansion
	FalseMarker []string `json:"false_marker" yaml:"false_marker"` // marks the variant equivalent to false
}

type GenerationConfig struct {
	FileSuffix  string        `json:"file_suffix" yaml:"file_suffix"`
	Header      string        `json:"header" yaml:"header"`
	Concurrency int           `json:"concurrency" yaml:"concurrency"` // 0 means GOMAXPROCS
	Methods     MethodsConfig `json:"methods" yaml:"methods"`
}

// MethodsConfig holds the names of the generated declarations
type MethodsConfig struct {
	Not      string `json:"not" yaml:"not"`
	Bool     string `json:"bool" yaml:"bool"`
	FromBool string `json:"from_bool" yaml:"from_bool"` // appended to the type name
}

// ValidationMode defines how strictly annotations are checked
type ValidationMode string

const (
	ValidationModeDisabled ValidationMode = "disabled"
	ValidationModeLax      ValidationMode = "lax"
	ValidationModeStrict   ValidationMode = "strict"
)

type ValidationConfig struct {
	Annotations ValidationMode `json:"annotations" yaml:"annotations"`
}

func NewDefaultConfig() *Config {
	// parse default config from embedded file
	config, err := LoadConfigFromFS(defaultConfigFile, "config.yml")
	if err != nil {
		panic("failed to load default config: " + err.Error())
	}
	return config
}

func LoadConfigFromFS(fs embed.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfigFromYAML(data)
}

func LoadConfigFromYAML(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid yaml config: %w", err)
	}
	return &config, nil
}

func LoadConfigFromJSON(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid json config: %w", err)
	}
	return &config, nil
}

// LoadConfigFile reads a yaml or json config file and merges it over the defaults.
// Relative scanning patterns in the file are resolved against the file's directory.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override *Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		override, err = LoadConfigFromJSON(data)
	} else {
		override, err = LoadConfigFromYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := NewDefaultConfig()
	cfg.Merge(override)
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.Dir = abs
	return cfg, nil
}

// Merge copies every explicitly set value of override into c
func (c *Config) Merge(override *Config) {
	if override == nil {
		return
	}
	if override.LogLevel != nil {
		c.LogLevel = override.LogLevel
	}
	if len(override.Scanning.Packages) > 0 {
		c.Scanning.Packages = override.Scanning.Packages
	}
	if override.Annotations.Prefix != "" {
		c.Annotations.Prefix = override.Annotations.Prefix
	}
	if len(override.Annotations.Type) > 0 {
		c.Annotations.Type = override.Annotations.Type
	}
	if len(override.Annotations.FalseMarker) > 0 {
		c.Annotations.FalseMarker = override.Annotations.FalseMarker
	}
	g := override.Generation
	if g.FileSuffix != "" {
		c.Generation.FileSuffix = g.FileSuffix
	}
	if g.Header != "" {
		c.Generation.Header = g.Header
	}
	if g.Concurrency != 0 {
		c.Generation.Concurrency = g.Concurrency
	}
	if g.Methods.Not != "" {
		c.Generation.Methods.Not = g.Methods.Not
	}
	if g.Methods.Bool != "" {
		c.Generation.Methods.Bool = g.Methods.Bool
	}
	if g.Methods.FromBool != "" {
		c.Generation.Methods.FromBool = g.Methods.FromBool
	}
	if override.Validation.Annotations != "" {
		c.Validation.Annotations = override.Validation.Annotations
	}
	if override.Dir != "" {
		c.Dir = override.Dir
	}
}

// Normalize fills every unset value with its default
func (c *Config) Normalize() {
	def := NewDefaultConfig()
	if c.LogLevel == nil {
		c.LogLevel = def.LogLevel
	}
	if len(c.Scanning.Packages) == 0 {
		c.Scanning.Packages = def.Scanning.Packages
	}
	if len(c.Annotations.Type) == 0 {
		c.Annotations.Type = def.Annotations.Type
	}
	if len(c.Annotations.FalseMarker) == 0 {
		c.Annotations.FalseMarker = def.Annotations.FalseMarker
	}
	if c.Generation.FileSuffix == "" {
		c.Generation.FileSuffix = def.Generation.FileSuffix
	}
	if c.Generation.Header == "" {
		c.Generation.Header = def.Generation.Header
	}
	if c.Generation.Concurrency <= 0 {
		c.Generation.Concurrency = runtime.GOMAXPROCS(0)
	}
	if c.Generation.Methods.Not == "" {
		c.Generation.Methods.Not = def.Generation.Methods.Not
	}
	if c.Generation.Methods.Bool == "" {
		c.Generation.Methods.Bool = def.Generation.Methods.Bool
	}
	if c.Generation.Methods.FromBool == "" {
		c.Generation.Methods.FromBool = def.Generation.Methods.FromBool
	}
	if c.Validation.Annotations == "" {
		c.Validation.Annotations = def.Validation.Annotations
	}
}

// Validate reports configuration values the generator cannot work with
func (c *Config) Validate() error {
	var errs []error
	methods := map[string]string{
		"generation.methods.not":       c.Generation.Methods.Not,
		"generation.methods.bool":      c.Generation.Methods.Bool,
		"generation.methods.from_bool": c.Generation.Methods.FromBool,
	}
	for _, key := range []string{"generation.methods.not", "generation.methods.bool", "generation.methods.from_bool"} {
		if name := methods[key]; !token.IsIdentifier(name) {
			errs = append(errs, fmt.Errorf("%s: %q is not a valid Go identifier", key, name))
		}
	}
	if c.Generation.Methods.Not == c.Generation.Methods.Bool {
		errs = append(errs, fmt.Errorf("generation.methods: not and bool share the name %q", c.Generation.Methods.Not))
	}
	if suffix := c.Generation.FileSuffix; !strings.HasPrefix(suffix, "_") || !strings.HasSuffix(suffix, ".go") ||
		len(suffix) <= len("_.go") || strings.HasSuffix(suffix, "_test.go") {
		errs = append(errs, fmt.Errorf("generation.file_suffix: %q must look like _name.go and not end in _test.go", suffix))
	}
	if len(c.Annotations.Type) == 0 || len(c.Annotations.FalseMarker) == 0 {
		errs = append(errs, errors.New("annotations: type and false_marker need at least one name"))
	}
	switch c.Validation.Annotations {
	case ValidationModeDisabled, ValidationModeLax, ValidationModeStrict:
	default:
		errs = append(errs, fmt.Errorf("validation.annotations: unknown mode %q", c.Validation.Annotations))
	}
	if c.LogLevel != nil {
		if _, err := logger.ParseLogLevel(string(*c.LogLevel)); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	return errors.Join(errs...)
}
