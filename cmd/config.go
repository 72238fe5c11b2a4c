package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/marcus/modalkit/internal/config"
)

func addLogFlags(fs *pflag.FlagSet) {
	fs.String("log-file", "", "Log file (default .modalkit/modalkit.log)")
	fs.String("log-level", "", "Log level: debug, info, warn, error")
}

func addDemoFlags(fs *pflag.FlagSet) {
	fs.Duration("delay", 0, "Auto-focus delay after a dialog opens (default 100ms)")
	fs.Bool("no-trap", false, "Let Tab leave open dialogs")
	fs.Bool("closed", false, "Start with the sign-in dialog closed")
}

// loadConfig reads the config file, applies flags the user set and
// validates the result.
func loadConfig(dir string, fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, fs)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("log-file") {
		cfg.LogFile, _ = fs.GetString("log-file")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if fs.Changed("delay") {
		d, _ := fs.GetDuration("delay")
		cfg.AutoFocusDelayMS = int(d / time.Millisecond)
	}
	if noTrap, _ := fs.GetBool("no-trap"); noTrap {
		trap := false
		cfg.FocusTrap = &trap
	}
}

// setupLogging sends the default logger to the log file as JSON. The
// terminal belongs to the TUI, so nothing is logged there.
func setupLogging(cfg *config.Config, dir string) (io.Closer, error) {
	path := cfg.LogPath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))
	return f, nil
}
