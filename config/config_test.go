package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pablor21/boollike/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	c := NewDefaultConfig()
	require.NotNil(t, c.LogLevel)
	assert.Equal(t, logger.LogLevelInfo, *c.LogLevel)
	assert.Equal(t, []string{"."}, c.Scanning.Packages)
	assert.Equal(t, []string{"boollike", "bool_like"}, c.Annotations.Type)
	assert.Equal(t, []string{"intofalse", "into_false", "false"}, c.Annotations.FalseMarker)
	assert.Equal(t, "_boollike.go", c.Generation.FileSuffix)
	assert.Equal(t, MethodsConfig{Not: "Not", Bool: "Bool", FromBool: "FromBool"}, c.Generation.Methods)
	assert.Equal(t, ValidationModeLax, c.Validation.Annotations)

	c.Normalize()
	assert.Equal(t, runtime.GOMAXPROCS(0), c.Generation.Concurrency)
	assert.NoError(t, c.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
scanning:
  packages: ["./models/..."]
generation:
  methods:
    not: Negate
`), 0644))

	c, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, logger.LogLevelDebug, *c.LogLevel)
	assert.Equal(t, []string{"./models/..."}, c.Scanning.Packages)
	assert.Equal(t, "Negate", c.Generation.Methods.Not)
	// untouched values keep their defaults
	assert.Equal(t, "Bool", c.Generation.Methods.Bool)
	assert.Equal(t, "_boollike.go", c.Generation.FileSuffix)
	assert.Equal(t, dir, c.Dir)
}

func TestLoadConfigFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boollike.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"generation": {"file_suffix": "_gen.go"}}`), 0644))

	c, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "_gen.go", c.Generation.FileSuffix)
}

func TestLoadConfigFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("scanning: ["), 0644))

	_, err := LoadConfigFile(path)
	assert.ErrorContains(t, err, path)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "method is not an identifier",
			mutate:  func(c *Config) { c.Generation.Methods.Bool = "to-bool" },
			wantErr: "generation.methods.bool",
		},
		{
			name:    "not and bool collide",
			mutate:  func(c *Config) { c.Generation.Methods.Bool = "Not" },
			wantErr: "share the name",
		},
		{
			name:    "test file suffix",
			mutate:  func(c *Config) { c.Generation.FileSuffix = "_boollike_test.go" },
			wantErr: "file_suffix",
		},
		{
			name:    "suffix would overwrite the source",
			mutate:  func(c *Config) { c.Generation.FileSuffix = ".go" },
			wantErr: "file_suffix",
		},
		{
			name:    "suffix without a stem",
			mutate:  func(c *Config) { c.Generation.FileSuffix = "_.go" },
			wantErr: "file_suffix",
		},
		{
			name:    "suffix without an underscore",
			mutate:  func(c *Config) { c.Generation.FileSuffix = "gen.go" },
			wantErr: "file_suffix",
		},
		{
			name:    "unknown validation mode",
			mutate:  func(c *Config) { c.Validation.Annotations = "pedantic" },
			wantErr: "unknown mode",
		},
		{
			name:    "unknown log level",
			mutate: func(c *Config) {
				lvl := logger.LogLevel("loud")
				c.LogLevel = &lvl
			},
			wantErr: "log_level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefaultConfig()
			c.Normalize()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.wantErr)
		})
	}
}
