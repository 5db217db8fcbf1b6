package config

import (
	"encoding/json"
	"errors"
	"os"

	_ "github.com/expki/go-numutil/env"
)

// CreateSample creates a sample configuration file.
func CreateSample(path string) error {
	sample := Config{
		LogLevel: LogLevelInfo,
		Image: Image{
			Cast: "wrap",
		},
		Batch: Batch{
			Workers:  4,
			Progress: true,
			Inputs:   SingleOrSlice[string]{"./requests.json"},
		},
	}
	raw, err := json.MarshalIndent(sample, "", "    ")
	if err != nil {
		return errors.Join(errors.New("could not marshal sample config"), err)
	}
	err = os.WriteFile(path, raw, FILE_PERMISSION)
	if err != nil {
		return errors.Join(errors.New("could not write sample config file"), err)
	}
	return nil
}
