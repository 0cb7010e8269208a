package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mailvet",
	Short: "Mailvet verifies email addresses with a two-tier cache",
	Long: `A command-line tool for verifying email addresses against the
debounce.io API, caching results per address and per catch-all domain.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(showCmd)
}
