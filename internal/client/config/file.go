package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file unmarshalling.
// Absent keys stay nil and leave the corresponding Config field alone.
type FileConfig struct {
	APIURL           *string         `json:"api_url" yaml:"api_url"`
	DataDir          *string         `json:"data_dir" yaml:"data_dir"`
	PollInterval     *timex.Duration `json:"poll_interval" yaml:"poll_interval"`
	VideoMaxWait     *timex.Duration `json:"video_max_wait" yaml:"video_max_wait"`
	SplashDuration   *timex.Duration `json:"splash_duration" yaml:"splash_duration"`
	RequestTimeout   *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	SessionTTL       *timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	SessionSecret    *string         `json:"session_secret" yaml:"session_secret"`
	AuthUsername     *string         `json:"auth_username" yaml:"auth_username"`
	AuthPassword     *string         `json:"auth_password" yaml:"auth_password"`
	AuthPasswordHash *string         `json:"auth_password_hash" yaml:"auth_password_hash"`
	LoginDelay       *timex.Duration `json:"login_delay" yaml:"login_delay"`
	LogLevel         *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the values found in the file at path. Files
// ending in .yaml or .yml are read as YAML, everything else as JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIURL, fc.APIURL)
	setString(&cfg.DataDir, fc.DataDir)
	setDuration(&cfg.PollInterval, fc.PollInterval)
	setDuration(&cfg.VideoMaxWait, fc.VideoMaxWait)
	setDuration(&cfg.SplashDuration, fc.SplashDuration)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.SessionTTL, fc.SessionTTL)
	setString(&cfg.SessionSecret, fc.SessionSecret)
	setString(&cfg.AuthUsername, fc.AuthUsername)
	setString(&cfg.AuthPassword, fc.AuthPassword)
	setString(&cfg.AuthPasswordHash, fc.AuthPasswordHash)
	setDuration(&cfg.LoginDelay, fc.LoginDelay)
	setString(&cfg.LogLevel, fc.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
