package report

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/claromes/waybacktweets/internal/model"
)

// csvHeader lists the exported columns in record field order.
// Column names match the JSON field names so a CSV export lines up with
// the input records column for column.
var csvHeader = []string{
	"archived_urlkey",
	"archived_timestamp",
	"original_tweet_url",
	"archived_tweet_url",
	"parsed_tweet_url",
	"parsed_archived_tweet_url",
	"available_tweet_text",
	"available_tweet_is_RT",
	"available_tweet_info",
	"archived_mimetype",
	"archived_statuscode",
	"archived_digest",
	"archived_length",
}

// CSVWriter outputs reports as flat CSV, one row per archived tweet.
// This format is designed for spreadsheets and ad-hoc analysis.
//
// Design decision: encoding/csv from the standard library handles quoting
// and escaping; the format has no structure a dedicated library would add
// value for.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in CSV format.
func (w *CSVWriter) Write(report *model.TweetReport) (int, error) {
	// Encode into a buffer first so the byte count is exact and a partial
	// document never reaches the output on error.
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}

	for i := range report.Records {
		rec := &report.Records[i]
		row := []string{
			rec.ArchivedURLKey,
			rec.ArchivedTimestamp,
			rec.OriginalTweetURL,
			rec.ArchivedTweetURL,
			rec.ParsedTweetURL,
			rec.ParsedArchivedTweetURL,
			rec.AvailableTweetText,
			rec.AvailableTweetIsRT.String(),
			rec.AvailableTweetInfo,
			rec.ArchivedMimetype,
			rec.ArchivedStatuscode,
			rec.ArchivedDigest,
			rec.ArchivedLength,
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
