package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvDataDir  = "SOFTSIM_DATA"
	EnvLogLevel = "SOFTSIM_LOG_LEVEL"

	DefaultDataDir = ".softsim/runs"
)

type Env struct {
	DataDir  string
	LogLevel string
}

// LoadEnv loads the given dotenv files (".env" when none) without
// overriding variables already set, then reads the softsim variables.
// Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	env := Env{
		DataDir:  os.Getenv(EnvDataDir),
		LogLevel: os.Getenv(EnvLogLevel),
	}
	if env.DataDir == "" {
		env.DataDir = DefaultDataDir
	}
	if env.LogLevel == "" {
		env.LogLevel = "info"
	}
	return env, nil
}
