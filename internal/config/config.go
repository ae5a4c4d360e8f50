package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration. Simulation
// inputs never come from the environment; only operational paths and
// defaults do.
type AppConfig struct {
	DataPath   string
	LogDir     string
	ResultsDir string

	// DefaultHorizonDays bounds quick scenario comparisons when the caller
	// does not pass a horizon.
	DefaultHorizonDays int
	// DefaultSweepRuns is the trial count for variance sweeps when the
	// caller does not pass one.
	DefaultSweepRuns int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Binary directory first (highest priority for MCP servers started
	// by a client with an arbitrary working directory).
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to the current working directory (go run, development).
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	resultsDir := filepath.Join(dataPath, "results")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", resultsDir).Msg("Failed to create results directory")
	}

	return &AppConfig{
		DataPath:           dataPath,
		LogDir:             logDir,
		ResultsDir:         resultsDir,
		DefaultHorizonDays: getEnvInt("DEFAULT_HORIZON_DAYS", 30),
		DefaultSweepRuns:   getEnvInt("DEFAULT_SWEEP_RUNS", 200),
	}, nil
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
