package archive

import "testing"

// TestFormatTimestamp tests CDX timestamp formatting.
func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full timestamp", "20230112153045", "12/01/2023 15:30:45"},
		{"date only", "20230112", "12/01/2023 00:00:00"},
		{"year and month", "202301", "01/01/2023 00:00:00"},
		{"year only", "2023", "01/01/2023 00:00:00"},
		{"hour precision", "2023011215", "12/01/2023 15:00:00"},
		{"minute precision", "202301121530", "12/01/2023 15:30:00"},
		{"odd length returned untouched", "2023011", "2023011"},
		{"non-digits returned untouched", "not-a-time-at", "not-a-time-at"},
		{"empty returned untouched", "", ""},
		{"invalid month returned untouched", "20231312000000", "20231312000000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatTimestamp(tt.input); got != tt.want {
				t.Errorf("FormatTimestamp(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseTimestamp tests the ok flag for valid and invalid input.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	if _, ok := ParseTimestamp("20230112153045"); !ok {
		t.Error("expected ok for a full CDX timestamp")
	}
	if _, ok := ParseTimestamp("garbage"); ok {
		t.Error("expected !ok for garbage input")
	}

	got, ok := ParseTimestamp("20230112")
	if !ok {
		t.Fatal("expected ok for a date-only timestamp")
	}
	if got.Year() != 2023 || int(got.Month()) != 1 || got.Day() != 12 {
		t.Errorf("parsed %v, want 2023-01-12", got)
	}
}
