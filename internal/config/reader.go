package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const configPathEnv = "CONFIG_PATH"

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

// FileReader reads a YAML file. Environment variables override its values.
type FileReader struct {
	path string
}

func NewFileReader(path string) FileReader {
	return FileReader{path: path}
}

func (r FileReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadConfig(r.path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", r.path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// NewReader returns a FileReader when CONFIG_PATH is set, an EnvReader otherwise.
func NewReader() Reader {
	if path := os.Getenv(configPathEnv); path != "" {
		return NewFileReader(path)
	}
	return NewEnvReader()
}
