package main

import (
	"os"
	"path/filepath"

	"github.com/adcsa/ged/internal/file"
	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// gedHomeEnv overrides the directory the CLI keeps its files in.
const gedHomeEnv = "GED_HOME"

type config struct {
	APIAddress string `json:"apiAddress"`
}

func getConfig() (*config, error) {
	configFile, err := getConfigFile()
	if err != nil {
		return nil, err
	}
	if !file.Exists(configFile) {
		return nil, errors.Errorf(
			"no GED configuration was found at %s; please use "+
				"`ged login` to continue",
			configFile,
		)
	}
	configBytes, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading GED config file at %s",
			configFile,
		)
	}
	config := &config{}
	if err := yaml.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing GED config file at %s",
			configFile,
		)
	}
	if config.APIAddress == "" {
		return nil, errors.Errorf("no API address is set in %s", configFile)
	}
	return config, nil
}

func saveConfig(config *config) error {
	gedHome, err := getGEDHome()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(gedHome, 0700); err != nil {
		return errors.Wrapf(err, "error creating GED home at %s", gedHome)
	}
	configBytes, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	configFile := filepath.Join(gedHome, "config")
	if err := os.WriteFile(configFile, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", configFile)
	}
	return nil
}

func getConfigFile() (string, error) {
	gedHome, err := getGEDHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(gedHome, "config"), nil
}

// getSessionFile returns the file the session credential is kept in.
func getSessionFile() (string, error) {
	gedHome, err := getGEDHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(gedHome, "session"), nil
}

func getGEDHome() (string, error) {
	if gedHome := os.Getenv(gedHomeEnv); gedHome != "" {
		return gedHome, nil
	}
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return filepath.Join(homeDir, ".ged"), nil
}
