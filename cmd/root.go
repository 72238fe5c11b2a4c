package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "modalkit",
	Short: "Accessible modal dialogs for terminal UIs",
	Long: `modalkit - A modal dialog primitive for terminal UIs.

Dialogs are opened by setting an attribute, keep focus inside while open, move
focus to their first control after a short delay, and close on Escape or a
click on the backdrop. Run "modalkit demo" to try the sign-in example.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	addLogFlags(rootCmd.PersistentFlags())
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}
