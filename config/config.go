// Package config reads the settings of the modeline tools from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Names of the environment variables.
const (
	EnvDB          = "MODELINE_DB"
	EnvPort        = "MODELINE_PORT"
	EnvRefresh     = "MODELINE_REFRESH"
	EnvOpenBrowser = "MODELINE_OPEN_BROWSER"
)

// DefaultRefresh is the refresh rate used when none is configured.
const DefaultRefresh = 60

// Config holds the settings shared by the commands.
type Config struct {
	// DBPath is the SQLite file of the catalog. Empty keeps the catalog in
	// memory.
	DBPath string

	// Port is the port of the HTTP server. 0 picks a random port.
	Port int

	// Refresh is the refresh rate used when a command is given none.
	Refresh int

	// OpenBrowser opens the server URL in a browser once it listens.
	OpenBrowser bool
}

// Load reads the .env file in the working directory, if there is one, and
// then the environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile reads the given env file, if it exists, and then the environment.
// Variables already set in the environment win over the file.
func LoadFile(path string) (Config, error) {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the environment alone.
func FromEnv() (Config, error) {
	c := Config{
		DBPath:  os.Getenv(EnvDB),
		Refresh: DefaultRefresh,
	}

	var err error

	if c.Port, err = intEnv(EnvPort, 0); err != nil {
		return Config{}, err
	}

	if c.Refresh, err = intEnv(EnvRefresh, DefaultRefresh); err != nil {
		return Config{}, err
	}

	if c.Refresh <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d",
			EnvRefresh, c.Refresh)
	}

	if v := os.Getenv(EnvOpenBrowser); v != "" {
		c.OpenBrowser, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvOpenBrowser, err)
		}
	}

	return c, nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	return n, nil
}
