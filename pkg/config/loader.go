package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// defaultEnvFile is read when Load is called without paths and the file exists.
const defaultEnvFile = ".env"

// Load parses environment variables into a new value of T based on its
// field tags.
//
// Variables are resolved in this order, later sources winning:
//
//  1. the given .env files, in order (or ./.env when no paths are given
//     and the file exists);
//  2. the process environment.
//
// The process environment is never modified and nothing is cached: call Load
// once at startup and pass the result to the components that need it.
//
// Example:
//
//	type IndexerConfig struct {
//		Host string `env:"INDEXER_HOST" envDefault:"wazuh-indexer"`
//		Port int    `env:"INDEXER_PORT" envDefault:"9200"`
//	}
//
//	cfg, err := config.Load[IndexerConfig]()
//	if err != nil {
//		// Handle error
//	}
func Load[T any](paths ...string) (T, error) {
	var v T

	vars, err := readEnvFiles(paths)
	if err != nil {
		return v, err
	}
	maps.Copy(vars, environ())

	if err := env.ParseWithOptions(&v, env.Options{Environment: vars}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](paths ...string) T {
	v, err := Load[T](paths...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return v
}

func readEnvFiles(paths []string) (map[string]string, error) {
	vars := make(map[string]string)

	if len(paths) == 0 {
		// The default file is optional.
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return vars, nil
		}
		paths = []string{defaultEnvFile}
	}

	for _, p := range paths {
		fileVars, err := godotenv.Read(p)
		if err != nil {
			return nil, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", p, err))
		}
		maps.Copy(vars, fileVars)
	}
	return vars, nil
}

func environ() map[string]string {
	kv := os.Environ()
	m := make(map[string]string, len(kv))
	for _, e := range kv {
		if k, v, ok := strings.Cut(e, "="); ok {
			m[k] = v
		}
	}
	return m
}
