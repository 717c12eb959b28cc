package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of interview",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "interview %s (api %s)\n", Version, api.DefaultBaseURL)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
