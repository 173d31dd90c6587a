package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claromes/waybacktweets/internal/config"
)

// sampleRecordsJSON holds two records, one with live text.
const sampleRecordsJSON = `[
	{
		"archived_tweet_url": "https://web.archive.org/web/20230112000000/https://twitter.com/jack/status/1",
		"parsed_archived_tweet_url": "https://web.archive.org/web/20230112000000/https://x.com/jack/status/1",
		"original_tweet_url": "https://twitter.com/jack/status/1",
		"parsed_tweet_url": "https://x.com/jack/status/1",
		"available_tweet_text": "",
		"available_tweet_is_RT": false,
		"available_tweet_info": "",
		"archived_urlkey": "com,twitter)/jack/status/1",
		"archived_timestamp": "20230112153045",
		"archived_mimetype": "text/html",
		"archived_statuscode": "200",
		"archived_digest": "AAAABBBB",
		"archived_length": "1234"
	},
	{
		"archived_tweet_url": "https://web.archive.org/web/20230215000000/https://twitter.com/jack/status/2",
		"parsed_archived_tweet_url": "https://web.archive.org/web/20230215000000/https://x.com/jack/status/2",
		"original_tweet_url": "https://twitter.com/jack/status/2",
		"parsed_tweet_url": "https://x.com/jack/status/2",
		"available_tweet_text": "just setting up my twttr",
		"available_tweet_is_RT": "False",
		"available_tweet_info": "jack",
		"archived_urlkey": "com,twitter)/jack/status/2",
		"archived_timestamp": "20230215000000",
		"archived_mimetype": "text/html",
		"archived_statuscode": "200",
		"archived_digest": "CCCCDDDD",
		"archived_length": "5678"
	}
]`

// writeRecordsFile writes the sample records into dir and returns the path.
func writeRecordsFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sampleRecordsJSON), 0600); err != nil {
		t.Fatalf("failed to write records file: %v", err)
	}
	return path
}

// readFile reads a generated report back as a string.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec // Test-controlled path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// TestVisualizeHTML tests the default end-to-end HTML render.
func TestVisualizeHTML(t *testing.T) {
	t.Run("renders a file input to an output file", func(t *testing.T) {
		dir := t.TempDir()
		records := writeRecordsFile(t, dir, "tweets.json")
		out := filepath.Join(dir, "jack.html")

		if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := readFile(t, out)
		if !strings.Contains(doc, "<h1>@jack's archived tweets</h1>") {
			t.Error("report heading missing")
		}
		if !strings.Contains(doc, `id="page_1"`) {
			t.Error("page container missing")
		}
		if !strings.Contains(doc, "just setting up my twttr") {
			t.Error("record content missing")
		}
	})

	t.Run("renders a literal JSON input", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "jack.html")

		if _, err := executeCommand(t, "visualize", "-u", "jack", sampleRecordsJSON, "-o", out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(readFile(t, out), "com,twitter)/jack/status/1") {
			t.Error("record key missing from report")
		}
	})

	t.Run("strips the leading @ from the username", func(t *testing.T) {
		dir := t.TempDir()
		records := writeRecordsFile(t, dir, "tweets.json")
		out := filepath.Join(dir, "jack.html")

		if _, err := executeCommand(t, "visualize", "-u", "@jack", records, "-o", out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(readFile(t, out), "<h1>@jack's archived tweets</h1>") {
			t.Error("heading should carry the username without a double @")
		}
	})

	t.Run("directory output derives the file name", func(t *testing.T) {
		dir := t.TempDir()
		records := writeRecordsFile(t, dir, "tweets.json")
		outDir := filepath.Join(dir, "reports")
		if err := os.MkdirAll(outDir, 0750); err != nil {
			t.Fatalf("failed to create output dir: %v", err)
		}

		if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", outDir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(outDir, "jack_tweets.html")); err != nil {
			t.Errorf("derived report file missing: %v", err)
		}
	})

	t.Run("page size flag changes pagination", func(t *testing.T) {
		dir := t.TempDir()
		records := writeRecordsFile(t, dir, "tweets.json")
		out := filepath.Join(dir, "jack.html")

		if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", out, "-p", "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(readFile(t, out), `id="page_2"`) {
			t.Error("two records with page size 1 should yield a second page")
		}
	})
}

// TestVisualizeFormats tests the alternative export formats.
func TestVisualizeFormats(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		dir := t.TempDir()
		records := writeRecordsFile(t, dir, "tweets.json")
		out := filepath.Join(dir, "jack.md")

		if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", out, "--markdown"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := readFile(t, out)
		if !strings.Contains(doc, "# @jack's archived tweets") {
			t.Error("markdown heading missing")
		}
		if !strings.Contains(doc, "## Tweet 2") {
			t.Error("markdown tweet section missing")
		}
	})

	t.Run("json carries the metadata wrapper", func(t *testing.T) {
		dir := t.TempDir()
		records := writeRecordsFile(t, dir, "tweets.json")
		out := filepath.Join(dir, "jack.json")

		if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", out, "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := readFile(t, out)
		if !strings.Contains(doc, `"version"`) || !strings.Contains(doc, `"report"`) {
			t.Error("JSON wrapper fields missing")
		}
	})

	t.Run("csv", func(t *testing.T) {
		dir := t.TempDir()
		records := writeRecordsFile(t, dir, "tweets.json")
		out := filepath.Join(dir, "jack.csv")

		if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", out, "--csv"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := readFile(t, out)
		if !strings.HasPrefix(doc, "archived_urlkey,") {
			t.Error("CSV header missing")
		}
		if len(strings.Split(strings.TrimSpace(doc), "\n")) != 3 {
			t.Error("CSV should have a header and two rows")
		}
	})
}

// TestVisualizeValidation tests flag validation failures.
func TestVisualizeValidation(t *testing.T) {
	dir := t.TempDir()
	records := writeRecordsFile(t, dir, "tweets.json")

	t.Run("missing username", func(t *testing.T) {
		_, err := executeCommand(t, "visualize", records)
		if !errors.Is(err, config.ErrNoUsername) {
			t.Errorf("err = %v, want ErrNoUsername", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := executeCommand(t, "visualize", "-u", "jack")
		if !errors.Is(err, config.ErrNoInput) {
			t.Errorf("err = %v, want ErrNoInput", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		_, err := executeCommand(t, "visualize", "-u", "jack", records, "--markdown", "--json")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("err = %v, want ErrConflictingReportFormats", err)
		}
	})

	t.Run("invalid page size", func(t *testing.T) {
		_, err := executeCommand(t, "visualize", "-u", "jack", records, "-p", "0")
		if !errors.Is(err, config.ErrInvalidPageSize) {
			t.Errorf("err = %v, want ErrInvalidPageSize", err)
		}
	})

	t.Run("explicit missing config file", func(t *testing.T) {
		_, err := executeCommand(t, "visualize", "-u", "jack", records,
			"-c", filepath.Join(dir, "no-such-config"))
		if err == nil || !strings.Contains(err.Error(), "configuration file not found") {
			t.Errorf("err = %v, want config-not-found error", err)
		}
	})
}

// TestVisualizeMultipleSources tests batch rendering into a directory.
func TestVisualizeMultipleSources(t *testing.T) {
	t.Run("renders each input into the output directory", func(t *testing.T) {
		dir := t.TempDir()
		first := writeRecordsFile(t, dir, "part1.json")
		second := writeRecordsFile(t, dir, "part2.json")
		outDir := filepath.Join(dir, "reports")

		if _, err := executeCommand(t, "visualize", "-u", "jack", first, second, "-o", outDir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{"part1.html", "part2.html"} {
			if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
				t.Errorf("report %s missing: %v", name, err)
			}
		}
	})

	t.Run("sequential rendering with batch size one", func(t *testing.T) {
		dir := t.TempDir()
		first := writeRecordsFile(t, dir, "part1.json")
		second := writeRecordsFile(t, dir, "part2.json")
		outDir := filepath.Join(dir, "reports")

		if _, err := executeCommand(t, "visualize", "-u", "jack", first, second, "-o", outDir, "-b", "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(outDir, "part2.html")); err != nil {
			t.Errorf("report missing: %v", err)
		}
	})

	t.Run("multiple inputs require an output directory", func(t *testing.T) {
		dir := t.TempDir()
		first := writeRecordsFile(t, dir, "part1.json")
		second := writeRecordsFile(t, dir, "part2.json")

		if _, err := executeCommand(t, "visualize", "-u", "jack", first, second); err == nil {
			t.Error("expected error without --output")
		}
	})
}

// TestVisualizeConfigFile tests per-username overrides from the config file.
func TestVisualizeConfigFile(t *testing.T) {
	dir := t.TempDir()
	records := writeRecordsFile(t, dir, "tweets.json")
	outDir := filepath.Join(dir, "configured-reports")
	if err := os.MkdirAll(outDir, 0750); err != nil {
		t.Fatalf("failed to create output dir: %v", err)
	}

	configYAML := "users:\n  jack:\n    outputDir: " + outDir + "\n    pageSize: 1\n"
	configPath := filepath.Join(dir, ".waybacktweets")
	if err := os.WriteFile(configPath, []byte(configYAML), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Run("config supplies output dir and page size", func(t *testing.T) {
		if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-c", configPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := filepath.Join(outDir, "jack_tweets.html")
		if !strings.Contains(readFile(t, out), `id="page_2"`) {
			t.Error("configured page size should yield a second page")
		}
	})

	t.Run("explicit flag beats the config file", func(t *testing.T) {
		out := filepath.Join(dir, "explicit.html")
		if _, err := executeCommand(t, "visualize", "-u", "jack", records,
			"-c", configPath, "-o", out, "-p", "24"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(readFile(t, out), `id="page_2"`) {
			t.Error("explicit page size should override the config file")
		}
	})
}

// TestVisualizeUnescaped tests the raw interpolation escape hatch.
func TestVisualizeUnescaped(t *testing.T) {
	dir := t.TempDir()
	hostile := strings.Replace(sampleRecordsJSON,
		"just setting up my twttr", "<b>bold</b>", 1)
	records := filepath.Join(dir, "tweets.json")
	if err := os.WriteFile(records, []byte(hostile), 0600); err != nil {
		t.Fatalf("failed to write records file: %v", err)
	}

	out := filepath.Join(dir, "escaped.html")
	if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(readFile(t, out), "<b>bold</b>") {
		t.Error("markup should be escaped by default")
	}

	raw := filepath.Join(dir, "raw.html")
	if _, err := executeCommand(t, "visualize", "-u", "jack", records, "-o", raw, "--unescaped"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(readFile(t, raw), "<b>bold</b>") {
		t.Error("markup should pass through with --unescaped")
	}
}

// TestOutputPathFor tests per-source output naming.
func TestOutputPathFor(t *testing.T) {
	t.Parallel()

	t.Run("single source without output means stdout", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Username = "jack"
		cfg.Sources = []string{"tweets.json"}

		got, err := outputPathFor(cfg, "tweets.json", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("path = %q, want empty for stdout", got)
		}
	})

	t.Run("literal sources get indexed names", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Username = "jack"
		cfg.JSONReport = true
		cfg.Sources = []string{"[]", "[]"}
		cfg.OutputPath = "reports"

		got, err := outputPathFor(cfg, "[]", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != filepath.Join("reports", "jack_tweets_2.json") {
			t.Errorf("path = %q", got)
		}
	})
}
