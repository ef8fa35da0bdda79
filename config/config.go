// Package config handles sol25.toml / sol25.yaml front end configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/chazu/sol25/compiler"
)

// EnvVar names an explicit configuration file, bypassing discovery.
const EnvVar = "SOL25_CONFIG"

// FileNames are the configuration files searched for, in order, in each
// directory while walking up.
var FileNames = []string{"sol25.toml", "sol25.yaml", "sol25.yml"}

// Format is the encoding of a configuration file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config is the front end configuration.
type Config struct {
	Entry  Entry  `toml:"entry" yaml:"entry" json:"entry"`
	Output Output `toml:"output" yaml:"output" json:"output"`
	Log    Log    `toml:"log" yaml:"log" json:"log"`

	// Path is the file the configuration was loaded from, empty for
	// defaults (set at load time).
	Path string `toml:"-" yaml:"-" json:"-"`
}

// Entry names the bootstrap class and its entry method.
type Entry struct {
	Class  string `toml:"class" yaml:"class" json:"class"`
	Method string `toml:"method" yaml:"method" json:"method"`
}

// Output configures the rendered document.
type Output struct {
	Language string `toml:"language" yaml:"language" json:"language"`
	Indent   int    `toml:"indent" yaml:"indent" json:"indent"`
}

// Log configures diagnostics logging.
type Log struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity" json:"verbosity"`
	File      string `toml:"file" yaml:"file" json:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Entry: Entry{
			Class:  compiler.DefaultEntryClass,
			Method: compiler.DefaultEntryMethod,
		},
		Output: Output{
			Language: "SOL25",
			Indent:   2,
		},
		Log: Log{
			Verbosity: -1,
		},
	}
}

// EntryPoint returns the configured bootstrap class and method.
func (c *Config) EntryPoint() compiler.EntryPoint {
	return compiler.EntryPoint{Class: c.Entry.Class, Method: c.Entry.Method}
}

// LogPath returns the log file, or nil to log to stderr.
func (c *Config) LogPath() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	return &path
}

// DetectFormat picks the format from the file extension. Unknown
// extensions are treated as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads a configuration file. Keys not present keep their defaults;
// unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates configuration content.
func Parse(data []byte, format Format) (*Config, error) {
	c := Default()

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse error: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return nil, fmt.Errorf("parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a configuration file, then
// loads it. Returns the defaults if none is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return Default(), nil
		}
		dir = parent
	}
}

// Resolve loads the file named by $SOL25_CONFIG if set, otherwise the
// nearest configuration file above the working directory.
func Resolve() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working directory: %w", err)
	}
	return FindAndLoad(wd)
}
