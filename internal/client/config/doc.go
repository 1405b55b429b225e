// Package config loads runtime configuration for the Magic Editor CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c / --config. Files ending in
//     .yaml or .yml are YAML, anything else is JSON.
//  3. Environment: a .env file in the working directory is loaded first,
//     then MAGIC_EDITOR_* variables are read.
//  4. Command-line flags, only when set explicitly.
//
// # File schema
//
// Intervals use timex.Duration, so they can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_url": "https://wedit-image.onrender.com",
//	  "data_dir": "~/.magiceditor",
//	  "poll_interval": "10s",
//	  "video_max_wait": "15m",
//	  "auth_username": "admin",
//	  "auth_password_hash": "argon2id$...$...",
//	  "log_level": "warn"
//	}
//
// Environment variables: MAGIC_EDITOR_API_URL, MAGIC_EDITOR_DATA_DIR,
// MAGIC_EDITOR_POLL_INTERVAL, MAGIC_EDITOR_VIDEO_MAX_WAIT,
// MAGIC_EDITOR_SPLASH_DURATION, MAGIC_EDITOR_REQUEST_TIMEOUT,
// MAGIC_EDITOR_SESSION_TTL, MAGIC_EDITOR_SESSION_SECRET,
// MAGIC_EDITOR_AUTH_USERNAME, MAGIC_EDITOR_AUTH_PASSWORD,
// MAGIC_EDITOR_AUTH_PASSWORD_HASH, MAGIC_EDITOR_LOGIN_DELAY,
// MAGIC_EDITOR_LOG_LEVEL.
package config
