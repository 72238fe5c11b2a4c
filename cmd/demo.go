package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/modalkit/internal/app"
	"github.com/marcus/modalkit/pkg/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sign-in dialog demo",
	Long: `Runs a page with a sign-in dialog and a message dialog.

Tab and Shift+Tab cycle through the open dialog, Escape or a click on the
backdrop dismisses it, and Enter submits. Users from the config file are
checked with bcrypt; without any, every sign in succeeds. Quit with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	addDemoFlags(demoCmd.Flags())
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("demo needs an interactive terminal")
	}

	baseDir := getBaseDir()
	cfg, err := loadConfig(baseDir, cmd.Flags())
	if err != nil {
		return err
	}

	logs, err := setupLogging(cfg, baseDir)
	if err != nil {
		return err
	}
	defer logs.Close()

	closed, _ := cmd.Flags().GetBool("closed")
	a := app.New(app.Options{
		AutoFocusDelay:   cfg.AutoFocusDelay(),
		DisableFocusTrap: !cfg.FocusTrapEnabled(),
		Users:            cfg.Users,
		SignInOpen:       !closed,
	})

	host, err := tui.NewHost(a, tui.NewRenderer())
	if err != nil {
		slog.Error("mount demo", "err", err)
		return err
	}

	slog.Info("demo started", "version", versionString(), "users", len(cfg.Users))
	if _, err := tea.NewProgram(host, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		slog.Error("run demo", "err", err)
		return fmt.Errorf("run demo: %w", err)
	}
	slog.Info("demo stopped")
	return nil
}
