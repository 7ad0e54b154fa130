// Package config reads astpretty.toml.
//
// The file is looked up from the working directory upwards. Every key is
// optional; absent keys keep their built-in defaults, and command line flags
// override both.
//
//	[format]
//	indent = 2              # or "tab", or any literal string
//	show_positions = true
//	expand_singletons = false
//	color = "auto"          # auto|on|off
//
//	[driver]
//	jobs = 0                # 0 = GOMAXPROCS
//	cache = false
//	cache_dir = ""          # default $XDG_CACHE_HOME/astpretty
//	paths = ""              # directory headers: absolute|relative|basename|auto
//
//	[frontend]
//	default = ""            # force a front-end for every file
//	extensions = { ".tmpl" = "yaml" }
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"astpretty/internal/pretty"
	"astpretty/internal/source"
)

// FileName is the name of the configuration file.
const FileName = "astpretty.toml"

// ErrInvalid marks configuration that cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config is the decoded configuration file.
type Config struct {
	Format   FormatConfig   `toml:"format"`
	Driver   DriverConfig   `toml:"driver"`
	Frontend FrontendConfig `toml:"frontend"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-"`
}

type FormatConfig struct {
	Indent           Indent `toml:"indent"`
	ShowPositions    bool   `toml:"show_positions"`
	ExpandSingletons bool   `toml:"expand_singletons"`
	Color            string `toml:"color"`
}

type DriverConfig struct {
	Jobs     int    `toml:"jobs"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
	Paths    string `toml:"paths"`
}

type FrontendConfig struct {
	Default    string            `toml:"default"`
	Extensions map[string]string `toml:"extensions"`
}

// Indent accepts either a TOML string or integer.
type Indent string

func (i *Indent) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*i = Indent(v)
	case int64:
		*i = Indent(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("indent must be a string or an integer, got %T", v)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format: FormatConfig{
			Indent:        "4",
			ShowPositions: true,
			Color:         "auto",
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest FileName above startDir, or the defaults when
// there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalid, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: %w: unknown keys: %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that decode fine but cannot be used.
func (c *Config) Validate() error {
	switch c.Format.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%w: [format].color must be auto, on or off, got %q", ErrInvalid, c.Format.Color)
	}
	if _, err := pretty.ParseIndent(string(c.Format.Indent)); err != nil {
		return fmt.Errorf("%w: [format].indent: %w", ErrInvalid, err)
	}
	if c.Driver.Jobs < 0 {
		return fmt.Errorf("%w: [driver].jobs must not be negative", ErrInvalid)
	}
	if !source.ValidPathMode(c.Driver.Paths) {
		return fmt.Errorf("%w: [driver].paths must be absolute, relative, basename or auto, got %q", ErrInvalid, c.Driver.Paths)
	}
	for ext, name := range c.Frontend.Extensions {
		if strings.TrimSpace(ext) == "" || strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: [frontend].extensions has an empty entry", ErrInvalid)
		}
	}
	return nil
}

// FormatOptions converts the [format] section. Color is left false; whether
// to colour depends on the output terminal and is decided by the caller.
func (c *Config) FormatOptions() (pretty.Options, error) {
	indent, err := pretty.ParseIndent(string(c.Format.Indent))
	if err != nil {
		return pretty.Options{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return pretty.Options{
		Indent:           indent,
		ShowPositions:    c.Format.ShowPositions,
		ExpandSingletons: c.Format.ExpandSingletons,
	}, nil
}
