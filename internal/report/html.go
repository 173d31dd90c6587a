package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/claromes/waybacktweets/internal/archive"
	"github.com/claromes/waybacktweets/internal/model"
)

// htmlStyle is the fixed stylesheet embedded in every report.
// It defines the card/grid/accordion/pagination visuals and is a literal
// artifact of the output document, not configuration.
const htmlStyle = `body { font-family: monospace; background-color: whitesmoke; color: #1c1e21; margin: 0; padding: 20px; }
.container { display: flex; flex-wrap: wrap; gap: 20px; }
.tweet { flex: 0 1 calc(33.33% - 20px); background-color: #ffffff; border: 1px solid #e2e2e2; border-radius: 10px; padding: 15px; overflow-wrap: break-word; margin: auto; width: 600px; }
.tweet strong { font-weight: bold; }
.tweet a { color: #000000; text-decoration: none; }
.content { color: #000000; }
.source { font-size: 12px; text-align: center; }
.tweet a:hover { text-decoration: underline; }
h1, h3 { text-align: center; }
iframe { width: 600px; height: 600px; }
input { position: absolute; opacity: 0; z-index: -1; }
.accordion { margin: 10px; border-radius: 5px; overflow: hidden; box-shadow: 0 4px 4px -2px rgba(0, 0, 0, 0.4); }
.accordion-label { display: flex; justify-content: space-between; padding: 1em; font-weight: bold; cursor: pointer; background: #000000; color: #ffffff; }
.accordion-content { max-height: 0; padding: 0 1em; background: white; transition: all 0.35s; }
input:checked ~ .accordion-content { max-height: 100vh; padding: 1em; }
.pagination { text-align: center; margin-top: 20px; }
.pagination a { margin: 0 5px; text-decoration: none; color: #000000; padding: 1px 2px; border-radius: 5px; }
.pagination a:hover { background-color: #e2e2e2; }
.pagination a.selected { background-color: #e2e2e2; color: #000000; font-weight: bold; }
`

// jsStringEscaper escapes a value for embedding in a single-quoted
// JavaScript string literal inside an inline <script> block.
// The "</" rewrite prevents a value from closing the script element early.
var jsStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
	`</`, `<\/`,
)

// iframeConcern pairs an accordion label with the record field supplying
// the iframe source URL.
type iframeConcern struct {
	label string
	url   func(*model.TweetRecord) string
}

// iframeConcerns lists the four embedded-snapshot sections of a tweet card,
// in display order.
var iframeConcerns = []iframeConcern{
	{"Archived Tweet", func(r *model.TweetRecord) string { return r.ArchivedTweetURL }},
	{"Parsed Archived Tweet", func(r *model.TweetRecord) string { return r.ParsedArchivedTweetURL }},
	{"Original Tweet", func(r *model.TweetRecord) string { return r.OriginalTweetURL }},
	{"Parsed Tweet", func(r *model.TweetRecord) string { return r.ParsedTweetURL }},
}

// HTMLWriter renders the paginated, self-contained HTML report.
// The document carries its own stylesheet and pagination script, so the
// saved file can be opened directly in a browser with no external assets;
// only the lazily-loaded iframe sources reach out to the network.
//
// Design decision: The document is assembled by direct string building
// rather than html/template. The structure is fixed, the interpolation
// points are few, and a template would interleave Go pipeline syntax with
// the inline JavaScript the document itself carries, which is harder to
// read than the literal markup.
type HTMLWriter struct {
	baseWriter

	// pageSize is the number of tweet cards per page.
	pageSize int

	// escape controls HTML/JS escaping of interpolated field values.
	// Enabled by default; WithoutEscaping reproduces the raw interpolation
	// of the original visualizer for byte-compatible output.
	escape bool
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithHTMLPageSize overrides the number of tweet cards per page.
// Values below 1 are ignored.
func WithHTMLPageSize(n int) HTMLWriterOption {
	return func(w *HTMLWriter) {
		if n >= 1 {
			w.pageSize = n
		}
	}
}

// WithoutEscaping disables HTML and JavaScript escaping of field values.
// The original visualizer interpolated raw values; a hostile field can then
// corrupt the page or run script in the viewer's browser, so this exists
// only for byte-compatible comparison against documents it produced.
func WithoutEscaping() HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.escape = false
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		pageSize:   DefaultPageSize,
		escape:     true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write generates the document and emits it to the configured output.
func (w *HTMLWriter) Write(report *model.TweetReport) (int, error) {
	doc, err := w.Generate(report)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w.output, doc)
}

// Generate renders the full HTML document as a string.
// It is a pure function of the report: no I/O happens here.
func (w *HTMLWriter) Generate(report *model.TweetReport) (string, error) {
	pages := Paginate(len(report.Records), w.pageSize)
	totalPages := len(pages)

	var sb strings.Builder

	w.writeHead(&sb, report.Username)

	sb.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&sb, "<h1>@%s's archived tweets</h1>\n", w.esc(report.Username))
	sb.WriteString("<p id=\"loading_first_page\">Building pagination with JavaScript...</p>\n")

	for i, pr := range pages {
		page := i + 1
		fmt.Fprintf(&sb, "<div id=\"page_%d\" style=\"display:none;\">\n", page)
		sb.WriteString("<div class=\"container\">\n")

		for index := pr.Start; index < pr.End; index++ {
			w.writeCard(&sb, index, &report.Records[index])
		}

		// Closes the page div and the container
		sb.WriteString("</div>\n</div>\n")
	}

	sb.WriteString("<br>\n")
	w.writePagination(&sb, totalPages)

	sb.WriteString("<br><p class=\"source\">generated by <a href=\"https://claromes.github.io/waybacktweets/\" target=\"_blank\">Wayback Tweets↗</a></p>\n")

	w.writePageScript(&sb, totalPages)

	sb.WriteString("</body>\n")
	sb.WriteString("</html>")

	return sb.String(), nil
}

// writeHead writes the document prologue, metadata, and stylesheet.
func (w *HTMLWriter) writeHead(sb *strings.Builder, username string) {
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<!-- This document was generated by Wayback Tweets. Visit: https://claromes.github.io/waybacktweets -->\n")

	sb.WriteString("<head>")
	sb.WriteString("<meta charset=\"UTF-8\">\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(sb, "<title>@%s's archived tweets</title>\n", w.esc(username))

	sb.WriteString("<style>\n")
	sb.WriteString(htmlStyle)
	sb.WriteString("</style>\n")
}

// writeCard writes one tweet card. index is the absolute record position,
// used to keep element IDs unique across pages.
func (w *HTMLWriter) writeCard(sb *strings.Builder, index int, rec *model.TweetRecord) {
	sb.WriteString("<div class=\"tweet\">\n")

	// Both branches are gated on the same field, so exactly one of them
	// renders per card: accordions with embedded snapshots when the live
	// text is gone, plain labeled fields when it is still known. This
	// avoids loading archived snapshots for tweets whose text survives.
	if !rec.HasAvailableText() {
		for _, concern := range iframeConcerns {
			w.writeAccordion(sb, index, concern.label, concern.url(rec))
		}
	}

	if rec.HasAvailableText() {
		sb.WriteString("<br>\n")
		fmt.Fprintf(sb, "<p><strong class=\"content\">Available Tweet Content:</strong> %s</p>\n", w.esc(rec.AvailableTweetText))
		fmt.Fprintf(sb, "<p><strong class=\"content\">Available Tweet Is Retweet:</strong> %s</p>\n", w.esc(rec.AvailableTweetIsRT.String()))
		fmt.Fprintf(sb, "<p><strong class=\"content\">Available Tweet Username:</strong> %s</p>\n", w.esc(rec.AvailableTweetInfo))
	}

	sb.WriteString("<br>\n")
	w.writeLinkField(sb, "Archived Tweet", rec.ArchivedTweetURL)
	w.writeLinkField(sb, "Parsed Archived Tweet", rec.ParsedArchivedTweetURL)
	w.writeLinkField(sb, "Original Tweet", rec.OriginalTweetURL)
	w.writeLinkField(sb, "Parsed Tweet", rec.ParsedTweetURL)
	fmt.Fprintf(sb, "<p><strong>Archived URL Key:</strong> %s</p>\n", w.esc(rec.ArchivedURLKey))
	fmt.Fprintf(sb, "<p><strong>Archived Timestamp:</strong> %s (%s)</p>\n",
		w.esc(archive.FormatTimestamp(rec.ArchivedTimestamp)), w.esc(rec.ArchivedTimestamp))
	fmt.Fprintf(sb, "<p><strong>Archived mimetype:</strong> %s</p>\n", w.esc(rec.ArchivedMimetype))
	fmt.Fprintf(sb, "<p><strong>Archived Statuscode:</strong> %s</p>\n", w.esc(rec.ArchivedStatuscode))
	fmt.Fprintf(sb, "<p><strong>Archived Digest:</strong> %s\n", w.esc(rec.ArchivedDigest))
	fmt.Fprintf(sb, "<p><strong>Archived Length:</strong> %s</p>\n", w.esc(rec.ArchivedLength))
	sb.WriteString("</div>\n")
}

// writeAccordion writes one collapsible section with a lazily-loaded iframe.
// The iframe carries no src until the section is expanded; the inline
// change-listener fills it in, so collapsed snapshots cost no requests.
func (w *HTMLWriter) writeAccordion(sb *strings.Builder, index int, label, url string) {
	id := fmt.Sprintf("%d_%s", index, strings.ReplaceAll(label, " ", "_"))

	sb.WriteString("<div class=\"accordion\">\n")
	fmt.Fprintf(sb, "<input type=\"checkbox\" id=\"tab_%s\" />\n", id)
	fmt.Fprintf(sb, "<label class=\"accordion-label\" for=\"tab_%s\">Click to load the iframe from %s</label>\n", id, label)
	sb.WriteString("<div class=\"accordion-content\">\n")
	fmt.Fprintf(sb, "<div id=\"loading_%s\" class=\"loading\">Loading...</div>\n", id)
	fmt.Fprintf(sb, "<iframe id=\"iframe_%s\" frameborder=\"0\" scrolling=\"auto\" loading=\"lazy\" style=\"display: none;\" onload=\"document.getElementById('loading_%s').style.display='none'; this.style.display='block';\"></iframe>\n", id, id)
	sb.WriteString("</div>\n")
	sb.WriteString("</div>\n")

	sb.WriteString("<script>\n")
	sb.WriteString("// Loads the src attribute of the iframe tag\n")
	fmt.Fprintf(sb, "document.getElementById('tab_%s').addEventListener('change', function() {\n", id)
	sb.WriteString("    if (this.checked) {\n")
	fmt.Fprintf(sb, "        document.getElementById('loading_%s').style.display = 'block';\n", id)
	fmt.Fprintf(sb, "        document.getElementById('iframe_%s').src = '%s';\n", id, w.jsEsc(url))
	sb.WriteString("    }\n")
	sb.WriteString("});\n")
	sb.WriteString("</script>\n")
}

// writeLinkField writes one labeled hyperlink field of a card.
func (w *HTMLWriter) writeLinkField(sb *strings.Builder, label, url string) {
	fmt.Fprintf(sb, "<p><strong>%s:</strong> <a href=\"%s\" target=\"_blank\">%s</a></p>\n",
		label, w.esc(url), w.esc(url))
}

// writePagination writes the page navigation links.
// The container div is always present; with zero pages it is simply empty.
func (w *HTMLWriter) writePagination(sb *strings.Builder, totalPages int) {
	sb.WriteString("<div class=\"pagination\">\n")
	for page := 1; page <= totalPages; page++ {
		fmt.Fprintf(sb, "<a href=\"#\" id=\"page_link_%d\" onclick=\"showPage(%d)\">%d</a>\n", page, page, page)
	}
	sb.WriteString("</div>\n")
}

// writePageScript writes the client-side pagination logic.
// This runs in the viewer's browser, not in this tool: it shows exactly one
// page container at a time, marks its link selected, and defaults to page 1.
func (w *HTMLWriter) writePageScript(sb *strings.Builder, totalPages int) {
	sb.WriteString("<script>\n")
	sb.WriteString("// Function to show the selected page and hide the others\n")
	sb.WriteString("function showPage(page) {\n")
	fmt.Fprintf(sb, "    for (let i = 1; i <= %d; i++) {\n", totalPages)
	sb.WriteString("        document.getElementById('page_' + i).style.display = 'none';\n")
	sb.WriteString("        document.getElementById('page_link_' + i).classList.remove('selected');\n")
	sb.WriteString("    }\n")
	sb.WriteString("\n")
	if totalPages > 0 {
		sb.WriteString("    document.getElementById('page_' + page).style.display = 'block';\n")
		sb.WriteString("    document.getElementById('page_link_' + page).classList.add('selected');\n")
	}
	sb.WriteString("}\n")
	sb.WriteString("\n")
	sb.WriteString("// Initializes the page to show only the first page\n")
	sb.WriteString("document.addEventListener('DOMContentLoaded', (event) => {\n")
	if totalPages > 0 {
		sb.WriteString("    showPage(1); // Shows only the first page on load\n")
	}
	sb.WriteString("    document.getElementById('loading_first_page').style.display = 'none';\n")
	sb.WriteString("});\n")
	sb.WriteString("</script>\n")
}

// esc escapes a field value for interpolation into markup.
func (w *HTMLWriter) esc(s string) string {
	if !w.escape {
		return s
	}
	return html.EscapeString(s)
}

// jsEsc escapes a field value for interpolation into an inline script.
func (w *HTMLWriter) jsEsc(s string) string {
	if !w.escape {
		return s
	}
	return jsStringEscaper.Replace(s)
}
