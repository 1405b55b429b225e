package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/filex"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
	"github.com/spf13/pflag"
)

const (
	DefaultAPIURL         = "https://wedit-image.onrender.com"
	DefaultUsername       = "admin"
	DefaultPassword       = "password"
	DatabaseFileName      = "magiceditor.db"
	DefaultPollInterval   = 10 * time.Second
	DefaultSplashDuration = 2500 * time.Millisecond
	DefaultSessionTTL     = 24 * time.Hour
	DefaultRequestTimeout = 2 * time.Minute
)

// Config holds runtime settings for the Magic Editor CLI.
//
// Units: every interval is a time.Duration. VideoMaxWait, RequestTimeout and
// LoginDelay treat zero as "no bound" / "no delay".
type Config struct {
	APIURL  string
	DataDir string

	PollInterval   time.Duration
	VideoMaxWait   time.Duration
	SplashDuration time.Duration
	RequestTimeout time.Duration

	SessionTTL       time.Duration
	SessionSecret    string
	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string
	LoginDelay       time.Duration

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = DefaultAPIURL
	c.DataDir = filex.DefaultDataDir()
	c.PollInterval = DefaultPollInterval
	c.VideoMaxWait = 0
	c.SplashDuration = DefaultSplashDuration
	c.RequestTimeout = DefaultRequestTimeout
	c.SessionTTL = DefaultSessionTTL
	c.SessionSecret = ""
	c.AuthUsername = DefaultUsername
	c.AuthPassword = DefaultPassword
	c.AuthPasswordHash = ""
	c.LoginDelay = 0
	c.LogLevel = "warn"
}

// DatabasePath is the location of the local state database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFileName)
}

// Validate normalises c and reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error

	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url %q: must be an absolute http(s) URL", c.APIURL))
	}

	if c.DataDir == "" {
		c.DataDir = filex.DefaultDataDir()
	}
	if dir, err := filex.ExpandHome(c.DataDir); err != nil {
		errs = append(errs, fmt.Errorf("data_dir: %w", err))
	} else {
		c.DataDir = dir
	}

	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL))
	}
	for name, d := range map[string]time.Duration{
		"video_max_wait":  c.VideoMaxWait,
		"splash_duration": c.SplashDuration,
		"request_timeout": c.RequestTimeout,
		"login_delay":     c.LoginDelay,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	if c.AuthUsername == "" {
		errs = append(errs, errors.New("auth_username must not be empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoadConfig constructs a Config from, in increasing precedence: defaults,
// the config file named by the --config flag, the environment (including a
// .env file in the working directory), and explicitly set flags.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := configFilePath(fs); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
