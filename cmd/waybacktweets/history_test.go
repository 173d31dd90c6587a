package main

import (
	"context"
	"strings"
	"testing"

	"github.com/claromes/waybacktweets/internal/database"
	"github.com/claromes/waybacktweets/internal/model"
)

// seedStore creates a store with records and a report run for "jack".
func seedStore(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx := context.Background()
	records := []model.TweetRecord{
		{ArchivedTweetURL: "https://web.archive.org/web/20230112000000/https://twitter.com/jack/status/1"},
		{ArchivedTweetURL: "https://web.archive.org/web/20230112000000/https://twitter.com/jack/status/2"},
	}
	if _, err := db.SaveRecords(ctx, "jack", records); err != nil {
		t.Fatalf("failed to seed records: %v", err)
	}

	run := &database.ReportRun{
		Username:    "jack",
		Format:      "html",
		OutputPath:  "jack_tweets.html",
		RecordCount: 2,
	}
	if err := db.SaveReportRun(ctx, run); err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}

	return dir
}

// TestHistoryCommand tests the store browsing command.
func TestHistoryCommand(t *testing.T) {
	t.Run("missing store yields a helpful error", func(t *testing.T) {
		_, err := executeCommand(t, "history", "--db-dir", t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "no report store found") {
			t.Errorf("err = %v, want missing-store error", err)
		}
	})

	t.Run("lists usernames without arguments", func(t *testing.T) {
		dir := seedStore(t)

		out, err := executeCommand(t, "history", "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "@jack") {
			t.Errorf("output missing username: %q", out)
		}
	})

	t.Run("lists runs for one username", func(t *testing.T) {
		dir := seedStore(t)

		out, err := executeCommand(t, "history", "--db-dir", dir, "jack")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"@jack: 2 stored records, 1 report runs", "html", "jack_tweets.html"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q: %q", want, out)
			}
		}
	})

	t.Run("accepts a leading @", func(t *testing.T) {
		dir := seedStore(t)

		out, err := executeCommand(t, "history", "--db-dir", dir, "@jack")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "2 stored records") {
			t.Errorf("output missing record count: %q", out)
		}
	})

	t.Run("unknown username shows zero runs", func(t *testing.T) {
		dir := seedStore(t)

		out, err := executeCommand(t, "history", "--db-dir", dir, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "@nobody: 0 stored records, 0 report runs") {
			t.Errorf("output = %q", out)
		}
	})
}
