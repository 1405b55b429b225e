package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory before the environment is
// consulted. Variables already set in the process environment win.
const DotEnvFile = ".env"

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "MAGIC_EDITOR_"

type lookupFunc func(key string) (string, bool)

var lookupEnv lookupFunc = os.LookupEnv

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// parseEnv overlays cfg with MAGIC_EDITOR_* variables found via lookup.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		"API_URL":            &cfg.APIURL,
		"DATA_DIR":           &cfg.DataDir,
		"SESSION_SECRET":     &cfg.SessionSecret,
		"AUTH_USERNAME":      &cfg.AuthUsername,
		"AUTH_PASSWORD":      &cfg.AuthPassword,
		"AUTH_PASSWORD_HASH": &cfg.AuthPasswordHash,
		"LOG_LEVEL":          &cfg.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"POLL_INTERVAL":   &cfg.PollInterval,
		"VIDEO_MAX_WAIT":  &cfg.VideoMaxWait,
		"SPLASH_DURATION": &cfg.SplashDuration,
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"SESSION_TTL":     &cfg.SessionTTL,
		"LOGIN_DELAY":     &cfg.LoginDelay,
	}
	for name, dst := range durations {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
