// Package archive provides helpers for Wayback Machine archive metadata.
//
// The only logic here is timestamp handling: the CDX API timestamps records
// with a digit string of up to 14 characters (YYYYMMDDhhmmss), and shorter
// prefixes are valid when the archive only recorded a coarser time.
package archive

import "time"

// timestampLayouts maps CDX timestamp lengths to their parse layouts.
// The CDX API truncates timestamps rather than padding them, so the length
// of the input decides which layout applies.
var timestampLayouts = map[int]string{
	4:  "2006",
	6:  "200601",
	8:  "20060102",
	10: "2006010215",
	12: "200601021504",
	14: "20060102150405",
}

// displayLayout is the human-readable form used in reports.
var displayLayout = "02/01/2006 15:04:05"

// ParseTimestamp parses a CDX timestamp string into a time.Time.
// It returns the zero time and false when the string has no valid layout.
func ParseTimestamp(ts string) (time.Time, bool) {
	layout, ok := timestampLayouts[len(ts)]
	if !ok {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, ts)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatTimestamp converts a CDX timestamp into its human-readable form.
// Unparseable input is returned untouched: the timestamp is a cosmetic
// field and rendering must not abort over it.
func FormatTimestamp(ts string) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ts
	}
	return t.Format(displayLayout)
}
