package config

import (
	"errors"
	"testing"
)

// validConfig returns a config that passes Validate.
func validConfig() *Config {
	c := NewConfig()
	c.Username = "jack"
	c.Sources = []string{"tweets.json"}
	return c
}

// TestNewConfig tests the default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", c.PageSize, DefaultPageSize)
	}
	if c.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", c.BatchSize, DefaultBatchSize)
	}
	if c.MarkdownReport || c.JSONReport || c.CSVReport {
		t.Error("no report format should be selected by default")
	}
}

// TestConfigValidate tests each validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing username", func(c *Config) { c.Username = "" }, ErrNoUsername},
		{"missing input", func(c *Config) { c.Sources = nil }, ErrNoInput},
		{
			"markdown and json",
			func(c *Config) { c.MarkdownReport, c.JSONReport = true, true },
			ErrConflictingReportFormats,
		},
		{
			"json and csv",
			func(c *Config) { c.JSONReport, c.CSVReport = true, true },
			ErrConflictingReportFormats,
		},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, ErrInvalidPageSize},
		{"negative page size", func(c *Config) { c.PageSize = -1 }, ErrInvalidPageSize},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfigFormat tests format selection.
func TestConfigFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   Format
	}{
		{"default is html", func(c *Config) {}, FormatHTML},
		{"markdown", func(c *Config) { c.MarkdownReport = true }, FormatMarkdown},
		{"json", func(c *Config) { c.JSONReport = true }, FormatJSON},
		{"csv", func(c *Config) { c.CSVReport = true }, FormatCSV},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewConfig()
			tt.mutate(c)
			if got := c.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFormatExtension tests format to extension mapping.
func TestFormatExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   string
	}{
		{FormatHTML, "html"},
		{FormatMarkdown, "md"},
		{FormatJSON, "json"},
		{FormatCSV, "csv"},
		{Format("unknown"), "html"},
	}

	for _, tt := range tests {
		tt := tt
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("%q.Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

// TestXDGDirs tests that the XDG paths carry the application name.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{
		"data":   XDGDataDir(),
		"config": XDGConfigDir(),
		"cache":  XDGCacheDir(),
	} {
		if dir == "" {
			t.Errorf("%s dir is empty", name)
		}
	}
}
