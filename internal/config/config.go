// Package config loads engine defaults from the environment. Flags
// beat environment values, which beat built-in defaults; an optional
// .env file is loaded first so local setups need no exported shell
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Bindhushree2529/image-restore-lab/internal/engine"
)

// Config is the environment-derived configuration.
type Config struct {
	MaxDimension      int
	UpscaleFactor     int
	Format            string
	JPEGQuality       int
	AllowRemoteModels bool
	CacheResults      bool
	Workers           int
}

// Load reads configuration from RESTORELAB_* environment variables,
// after loading envFile if it exists. A missing env file is not an
// error; a present but unreadable one is.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	cfg := &Config{
		MaxDimension:      getEnvInt("RESTORELAB_MAX_DIMENSION", engine.DefaultMaxDimension),
		UpscaleFactor:     getEnvInt("RESTORELAB_UPSCALE_FACTOR", engine.DefaultUpscaleFactor),
		Format:            getEnv("RESTORELAB_FORMAT", engine.DefaultFormat),
		JPEGQuality:       getEnvInt("RESTORELAB_JPEG_QUALITY", engine.DefaultJPEGQuality),
		AllowRemoteModels: getEnvBool("RESTORELAB_ALLOW_REMOTE_MODELS", false),
		CacheResults:      getEnvBool("RESTORELAB_CACHE_RESULTS", false),
		Workers:           getEnvInt("RESTORELAB_WORKERS", 0),
	}

	if cfg.MaxDimension <= 0 {
		return nil, fmt.Errorf("RESTORELAB_MAX_DIMENSION must be positive, got %d", cfg.MaxDimension)
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("RESTORELAB_JPEG_QUALITY must be 1-100, got %d", cfg.JPEGQuality)
	}
	return cfg, nil
}

// Options converts the config to engine options.
func (c *Config) Options() engine.Options {
	return engine.Options{
		MaxDimension:      c.MaxDimension,
		UpscaleFactor:     c.UpscaleFactor,
		Format:            c.Format,
		JPEGQuality:       c.JPEGQuality,
		AllowRemoteModels: c.AllowRemoteModels,
		CacheResults:      c.CacheResults,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
