package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/claromes/waybacktweets/internal/archive"
	"github.com/claromes/waybacktweets/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing; it carries the
// same fields as the HTML report but no pagination or embedded snapshots.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.TweetReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeRecords(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with summary information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.TweetReport) {
	md.H1f("@%s's archived tweets", report.Username)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Username", "`@" + report.Username + "`"},
			{"Archived Tweets", strconv.Itoa(len(report.Records))},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	if len(report.Records) == 0 {
		md.Note("No archived tweets were found for this username.")
		md.PlainText("")
	}
}

// writeRecords writes one section per archived tweet.
func (w *MarkdownWriter) writeRecords(md *markdown.Markdown, report *model.TweetReport) {
	for i := range report.Records {
		rec := &report.Records[i]

		md.H2f("Tweet %d", i+1)
		md.PlainText("")

		if rec.HasAvailableText() {
			md.Blockquote(rec.AvailableTweetText)
			md.PlainText("")
			md.BulletList(
				"Is Retweet: "+rec.AvailableTweetIsRT.String(),
				"Username: "+rec.AvailableTweetInfo,
			)
			md.PlainText("")
		}

		md.Table(markdown.TableSet{
			Header: []string{"Field", "Value"},
			Rows: [][]string{
				{"Archived Tweet", mdLink(rec.ArchivedTweetURL)},
				{"Parsed Archived Tweet", mdLink(rec.ParsedArchivedTweetURL)},
				{"Original Tweet", mdLink(rec.OriginalTweetURL)},
				{"Parsed Tweet", mdLink(rec.ParsedTweetURL)},
				{"Archived URL Key", "`" + rec.ArchivedURLKey + "`"},
				{"Archived Timestamp", fmt.Sprintf("%s (%s)",
					archive.FormatTimestamp(rec.ArchivedTimestamp), rec.ArchivedTimestamp)},
				{"Archived mimetype", rec.ArchivedMimetype},
				{"Archived Statuscode", rec.ArchivedStatuscode},
				{"Archived Digest", "`" + rec.ArchivedDigest + "`"},
				{"Archived Length", rec.ArchivedLength},
			},
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*generated by [Wayback Tweets](https://claromes.github.io/waybacktweets/)*")
}

// mdLink renders a URL as a markdown link, or a dash when empty.
func mdLink(url string) string {
	if url == "" {
		return "-"
	}
	return "[" + url + "](" + url + ")"
}
