package rubypir

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/rubypir/logger"
)

// Config controls compilation and output.
type Config struct {
	// OutputDir is where CompileFile writes .pir files.
	OutputDir string `yaml:"output_dir"`
	// Stdlib is the runtime library included after the main program.
	Stdlib string `yaml:"stdlib"`
	// Encoding is the character encoding of sources. See Decode.
	Encoding string `yaml:"encoding"`
	// Stamp is an strftime format for the time in the generated-file
	// header. If it is empty, no header is written.
	Stamp string `yaml:"stamp"`
	// Host adds the host platform to the header.
	Host bool `yaml:"host"`
	// Log configures logging for the command-line tools.
	Log LogConfig `yaml:"log"`

	// Clock returns the time used in the header. If nil, time.Now is used.
	Clock func() time.Time `yaml:"-"`
}

// LogConfig is the logging section of a Config.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "out",
		Stdlib:    "stdlib/stdlib.pir",
		Encoding:  "utf-8",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ParseConfig reads YAML configuration over the defaults. Unknown keys are
// errors.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads the configuration file at path. A missing file gives the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks that the configuration's values are usable.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("config: output_dir must not be empty")
	}
	if _, err := encodingFor(c.Encoding); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.LoggerConfig(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LoggerConfig converts the log section to a logger configuration.
func (c *Config) LoggerConfig() (logger.Config, error) {
	lc := logger.DefaultConfig()
	lvl, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return lc, err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return lc, fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	lc.Level = lvl
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	lc.LogFile = c.Log.File
	return lc, nil
}

func (c *Config) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}
