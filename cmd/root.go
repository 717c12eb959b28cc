package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// errReported marks an error already shown to the user.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "interview",
	Short: "AI interview assistant: résumé analysis, mock interviews and knowledge bases",
	Long: `Interview is the client of the AI interview assistant. It uploads a résumé
for analysis, runs a mock interview chat grounded on it, manages knowledge
bases and serves the static front end.

All analysis, chat and knowledge-base work is done by the backend API; the
session token is kept in a local SQLite database.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadDotEnv,
}

// Execute runs the command tree.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log API requests")
}

// loadDotEnv loads .env from the working directory when present.
func loadDotEnv(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
	return nil
}
