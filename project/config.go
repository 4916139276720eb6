// Package project loads per-project settings such as the build command and
// formatter options.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultFileName is looked up next to the edited file when no config path is given.
const DefaultFileName = "project_config.json"

var ErrNotFound = errors.New("project config not found")

// Config holds the project settings
type Config struct {
	BuildCommand string          `mapstructure:"build_command"`
	FormatOnSave bool            `mapstructure:"format_on_save"`
	Formatter    FormatterConfig `mapstructure:"formatter"`

	// Dir is the directory holding the config file; builds run there.
	Dir string `mapstructure:"-"`
}

// FormatterConfig selects the external formatter
type FormatterConfig struct {
	Bin   string `mapstructure:"bin"`
	Style string `mapstructure:"style"`
}

// Defaults returns the settings used when no config file exists
func Defaults() Config {
	return Config{
		Formatter: FormatterConfig{
			Bin:   "clang-format",
			Style: "Mozilla",
		},
	}
}

// HasBuildCommand reports whether a build command is configured
func (c Config) HasBuildCommand() bool {
	return strings.TrimSpace(c.BuildCommand) != ""
}

// Load reads the config at path from fsys. The format follows the file
// extension (JSON, YAML or TOML). Missing keys keep their defaults.
// A missing file returns the defaults together with ErrNotFound.
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := Defaults()
	cfg.Dir = filepath.Dir(path)

	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return cfg, fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		return cfg, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	defaults := Defaults()
	v.SetDefault("build_command", defaults.BuildCommand)
	v.SetDefault("format_on_save", defaults.FormatOnSave)
	v.SetDefault("formatter.bin", defaults.Formatter.Bin)
	v.SetDefault("formatter.style", defaults.Formatter.Style)

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("parsing project config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding project config %s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the config path for a file being edited: explicit wins,
// otherwise DefaultFileName in the file's directory.
func Find(explicit, editedFile string) string {
	if explicit != "" {
		return explicit
	}
	dir := "."
	if editedFile != "" {
		dir = filepath.Dir(editedFile)
	}
	return filepath.Join(dir, DefaultFileName)
}
