package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const (
	FlagConfig         = "config"
	FlagAPIURL         = "api-url"
	FlagDataDir        = "data-dir"
	FlagLogLevel       = "log-level"
	FlagPollInterval   = "poll-interval"
	FlagVideoMaxWait   = "video-max-wait"
	FlagRequestTimeout = "request-timeout"
	FlagSplashDuration = "splash-duration"
)

// RegisterFlags adds the configuration flags to fs, usually the persistent
// flag set of the root command. Defaults are shown in help output only;
// LoadConfig applies a flag only when it was set explicitly.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(FlagAPIURL, d.APIURL, "base URL of the editing backend")
	fs.String(FlagDataDir, d.DataDir, "directory holding local state")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.Duration(FlagPollInterval, d.PollInterval, "interval between video status checks")
	fs.Duration(FlagVideoMaxWait, d.VideoMaxWait, "give up on a video after this long (0 waits forever)")
	fs.Duration(FlagRequestTimeout, d.RequestTimeout, "timeout of a single backend request (0 disables)")
	fs.Duration(FlagSplashDuration, d.SplashDuration, "how long the splash screen stays up")
}

func configFilePath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(FlagConfig) == nil {
		return ""
	}
	path, _ := fs.GetString(FlagConfig)
	return path
}

// parseFlags overlays cfg with the flags that were set on the command line.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	strs := map[string]*string{
		FlagAPIURL:   &cfg.APIURL,
		FlagDataDir:  &cfg.DataDir,
		FlagLogLevel: &cfg.LogLevel,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
		*dst = v
	}

	durations := map[string]*time.Duration{
		FlagPollInterval:   &cfg.PollInterval,
		FlagVideoMaxWait:   &cfg.VideoMaxWait,
		FlagRequestTimeout: &cfg.RequestTimeout,
		FlagSplashDuration: &cfg.SplashDuration,
	}
	for name, dst := range durations {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetDuration(name)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
		*dst = v
	}
	return nil
}
