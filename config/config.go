package config

import (
	"encoding/json"
	"errors"
	"os"

	_ "github.com/expki/go-numutil/env"
)

// ParseConfig parses the raw JSON configuration.
func ParseConfig(raw []byte) (config Config, err error) {
	config = Default()
	err = json.Unmarshal(raw, &config)
	if err != nil {
		return config, errors.Join(errors.New("unmarshal config"), err)
	}
	err = config.Validate()
	if err != nil {
		return config, err
	}
	return config, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (config Config, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Join(errors.New("read config file"), err)
	}
	return ParseConfig(raw)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: LogLevelInfo,
		Image: Image{
			Cast: "wrap",
		},
		Batch: Batch{
			Workers:  DEFAULT_WORKERS,
			Progress: false,
		},
	}
}

type Config struct {
	LogLevel LogLevel `json:"log_level"`
	Image    Image    `json:"image"`
	Batch    Batch    `json:"batch"`
}

// Validate rejects settings that cannot be applied.
func (c Config) Validate() error {
	if _, err := c.Image.Policy(); err != nil {
		return errors.Join(errors.New("invalid image config"), err)
	}
	if c.Batch.Workers < 0 {
		return errors.New("invalid batch config: workers must not be negative")
	}
	return nil
}
