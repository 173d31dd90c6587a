// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - HTMLWriter: The paginated, self-contained HTML report for browsers
//   - MarkdownWriter: GitHub Flavored Markdown for documentation and sharing
//   - JSONWriter: Structured JSON output for tool integration
//   - CSVWriter: Flat CSV export of all record fields
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
