package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for Wayback Tweets.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waybacktweets",
		Short: "Render reports from archived-tweet records",
		Long: `Wayback Tweets renders browsable reports from parsed archived-tweet records.

Records are produced upstream by the archive parser as a JSON array; this
tool turns them into a paginated, self-contained HTML page, or exports
them as Markdown, JSON, or CSV.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewVisualizeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
