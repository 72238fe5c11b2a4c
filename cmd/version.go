package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "modalkit %s\n", versionString())
	},
}

func versionString() string {
	if version == "" {
		return "dev"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
