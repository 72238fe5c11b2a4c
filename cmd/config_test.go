package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/marcus/modalkit/internal/config"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addLogFlags(fs)
	addDemoFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return fs
}

func TestApplyFlags(t *testing.T) {
	off := false
	tests := []struct {
		name  string
		cfg   config.Config
		args  []string
		check func(*testing.T, *config.Config)
	}{
		{
			name: "no flags keep file values",
			cfg:  config.Config{AutoFocusDelayMS: 250, LogLevel: "warn"},
			check: func(t *testing.T, c *config.Config) {
				if c.AutoFocusDelayMS != 250 || c.LogLevel != "warn" || !c.FocusTrapEnabled() {
					t.Errorf("config changed: %+v", c)
				}
			},
		},
		{
			name: "delay",
			args: []string{"--delay", "1.5s"},
			check: func(t *testing.T, c *config.Config) {
				if c.AutoFocusDelay() != 1500*time.Millisecond {
					t.Errorf("delay = %v", c.AutoFocusDelay())
				}
			},
		},
		{
			name: "explicit zero delay",
			cfg:  config.Config{AutoFocusDelayMS: 250},
			args: []string{"--delay", "0"},
			check: func(t *testing.T, c *config.Config) {
				if c.AutoFocusDelayMS != 0 {
					t.Errorf("delay ms = %d", c.AutoFocusDelayMS)
				}
			},
		},
		{
			name: "no-trap",
			args: []string{"--no-trap"},
			check: func(t *testing.T, c *config.Config) {
				if c.FocusTrapEnabled() {
					t.Error("focus trap still enabled")
				}
			},
		},
		{
			name: "trap off in file stays off",
			cfg:  config.Config{FocusTrap: &off},
			check: func(t *testing.T, c *config.Config) {
				if c.FocusTrapEnabled() {
					t.Error("focus trap enabled")
				}
			},
		},
		{
			name: "log flags",
			args: []string{"--log-file", "/tmp/x.log", "--log-level", "debug"},
			check: func(t *testing.T, c *config.Config) {
				if c.LogFile != "/tmp/x.log" || c.Level() != slog.LevelDebug {
					t.Errorf("log file %q level %v", c.LogFile, c.Level())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			applyFlags(&cfg, testFlags(t, tt.args...))
			tt.check(t, &cfg)
		})
	}
}

func TestLoadConfigValidates(t *testing.T) {
	dir := t.TempDir()

	if _, err := loadConfig(dir, testFlags(t, "--delay", "1m")); err == nil {
		t.Fatal("expected an error for a one minute delay")
	} else {
		var verr *config.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("err = %T %v, want *config.ValidationError", err, err)
		}
	}

	cfg, err := loadConfig(dir, testFlags(t))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.AutoFocusDelay() != 0 || !cfg.FocusTrapEnabled() {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestSetupLogging(t *testing.T) {
	dir := t.TempDir()
	old := slog.Default()
	defer slog.SetDefault(old)

	closer, err := setupLogging(&config.Config{LogLevel: "warn"}, dir)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	slog.Info("dropped")
	slog.Warn("kept", "n", 1)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".modalkit", "modalkit.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"msg":"kept"`) || strings.Contains(got, "dropped") {
		t.Errorf("log = %s", got)
	}
}
