package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claromes/waybacktweets/internal/config"
	"github.com/claromes/waybacktweets/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [username]",
		Short: "List reports generated from the local store",
		Long: `History lists report runs saved with "visualize --save-db".

With a username it lists that account's runs and stored record count;
without one it lists every username in the store.

Examples:
  # List all usernames with stored data
  waybacktweets history

  # List report runs for one username
  waybacktweets history jack`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Store directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// The store must already exist; history never creates an empty one
	db, err := database.Open(dbDir, database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no report store found (run visualize with --save-db first): %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if len(args) == 0 {
		usernames, err := db.ListUsernames(ctx)
		if err != nil {
			return err
		}
		if len(usernames) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "The store is empty.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Usernames with stored data:")
		for _, username := range usernames {
			fmt.Fprintf(cmd.OutOrStdout(), "  @%s\n", username)
		}
		return nil
	}

	username := strings.TrimPrefix(args[0], "@")

	count, err := db.CountRecords(ctx, username)
	if err != nil {
		return err
	}

	runs, err := db.ListReportRuns(ctx, username)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "@%s: %d stored records, %d report runs\n", username, count, len(runs))
	if len(runs) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	for _, run := range runs {
		dest := run.OutputPath
		if dest == "" {
			dest = "(stdout)"
		}
		fmt.Fprintf(out, "  %s  %-8s  %4d tweets  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Format,
			run.RecordCount,
			dest,
		)
	}

	return nil
}
