package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

const (
	INPUT_FILENAME  = "firebase-credentials.json"
	OUTPUT_FILENAME = ".env"
	CONFIG_FILENAME = "firebase2env.yaml"
	PROJECT         = "cogito-8443e"
)

const CONSOLE_URL = "https://console.firebase.google.com/"

// Config controls where a conversion reads from and writes to.
type Config struct {
	// Dir is the base directory that relative Input and Output names are
	// resolved against.
	Dir     string `yaml:"dir"`
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Project string `yaml:"project"`
}

func Default() *Config {
	return &Config{
		Dir:     ".",
		Input:   INPUT_FILENAME,
		Output:  OUTPUT_FILENAME,
		Project: PROJECT,
	}
}

// Load reads a YAML config file and applies it over the defaults. Keys not
// present in the file keep their default values.
//
// If required is false a missing file is not an error.
func Load(filename string, required bool) (*Config, error) {
	cfg := Default()
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("Failed to read config %q: %w", filename, err)
	}
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, fmt.Errorf("Not a valid config file %q: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

func (c *Config) InputPath() string {
	return c.resolve(c.Input)
}

func (c *Config) OutputPath() string {
	return c.resolve(c.Output)
}
