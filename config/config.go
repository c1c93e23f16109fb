// Package config loads the richpad configuration and sets up logging.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/burntcarrot/richpad/style"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	ServerConfig struct {
		Addr string `yaml:"addr"`
	}

	EditorConfig struct {
		StylesheetPath string `yaml:"stylesheet_path"`
		InitialHTML    string `yaml:"initial_html"`
	}

	LoggingConfig struct {
		Level     string `yaml:"level"`
		File      string `yaml:"file"`
		DebugFile string `yaml:"debug_file"`
	}

	Config struct {
		Server  ServerConfig  `yaml:"server"`
		Editor  EditorConfig  `yaml:"editor"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// unknown keys are mistakes, so yaml.Unmarshal is not enough
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration file at path on top of the defaults and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if _, err := unmarshalConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var err error
	if c.Server.Addr == "" {
		err = multierr.Append(err, errors.New("server.addr is required"))
	}
	if _, er := logrus.ParseLevel(c.Logging.Level); er != nil {
		err = multierr.Append(err, fmt.Errorf("logging.level: %w", er))
	}
	if c.Logging.File == "" {
		err = multierr.Append(err, errors.New("logging.file is required"))
	}
	if c.Logging.DebugFile == "" {
		err = multierr.Append(err, errors.New("logging.debug_file is required"))
	}
	if c.Editor.StylesheetPath != "" {
		if _, er := os.Stat(c.Editor.StylesheetPath); er != nil {
			err = multierr.Append(err, fmt.Errorf("editor.stylesheet_path: %w", er))
		}
	}
	return err
}

// Stylesheet returns the configured stylesheet, or nil for the built-in one.
func (c *Config) Stylesheet() (*style.Stylesheet, error) {
	if c.Editor.StylesheetPath == "" {
		return nil, nil
	}
	return style.LoadStylesheet(c.Editor.StylesheetPath)
}

// Dump returns the configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
