package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".modalkit"
	configFile = ".modalkit/config.json"
	logFile    = "modalkit.log"
)

// MaxAutoFocusDelay bounds auto_focus_delay_ms.
const MaxAutoFocusDelay = 5 * time.Second

// Config is the on-disk configuration of the demo.
type Config struct {
	AutoFocusDelayMS int               `json:"auto_focus_delay_ms,omitempty"`
	FocusTrap        *bool             `json:"focus_trap,omitempty"`
	LogFile          string            `json:"log_file,omitempty"`
	LogLevel         string            `json:"log_level,omitempty"`
	Users            map[string]string `json:"users,omitempty"` // email -> bcrypt hash
}

// AutoFocusDelay returns the configured delay, or zero for the default.
func (c *Config) AutoFocusDelay() time.Duration {
	return time.Duration(c.AutoFocusDelayMS) * time.Millisecond
}

// FocusTrapEnabled defaults to true when focus_trap is unset.
func (c *Config) FocusTrapEnabled() bool {
	return c.FocusTrap == nil || *c.FocusTrap
}

// Level parses log_level, defaulting to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if c.LogLevel == "" || l.UnmarshalText([]byte(c.LogLevel)) != nil {
		return slog.LevelInfo
	}
	return l
}

// LogPath returns the log file path, relative paths resolved against baseDir.
func (c *Config) LogPath(baseDir string) string {
	switch {
	case c.LogFile == "":
		return filepath.Join(baseDir, configDir, logFile)
	case filepath.IsAbs(c.LogFile):
		return c.LogFile
	default:
		return filepath.Join(baseDir, c.LogFile)
	}
}

// Validate checks field values and returns a *ValidationError listing every
// problem found.
func (c *Config) Validate() error {
	verr := &ValidationError{}
	if c.AutoFocusDelayMS < 0 || c.AutoFocusDelay() > MaxAutoFocusDelay {
		verr.Add(&FieldError{Field: "auto_focus_delay_ms", Reason: "must be between 0 and 5000"})
	}
	if c.LogLevel != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
			verr.Add(&FieldError{Field: "log_level", Reason: "unknown level " + c.LogLevel})
		}
	}
	for email, hash := range c.Users {
		if !strings.Contains(email, "@") {
			verr.Add(&FieldError{Field: "users", Reason: "invalid email " + email})
		}
		if !strings.HasPrefix(hash, "$2") {
			verr.Add(&FieldError{Field: "users", Reason: "hash for " + email + " is not bcrypt"})
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetUser stores a password hash for email
func SetUser(baseDir, email, hash string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	if cfg.Users == nil {
		cfg.Users = make(map[string]string)
	}
	cfg.Users[strings.ToLower(email)] = hash
	return Save(baseDir, cfg)
}

// RemoveUser deletes the stored hash for email
func RemoveUser(baseDir, email string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	delete(cfg.Users, strings.ToLower(email))
	return Save(baseDir, cfg)
}
