// Package main provides the entry point for the Wayback Tweets CLI.
//
// Wayback Tweets renders browsable reports from parsed archived-tweet
// records: paginated HTML for viewing, plus Markdown/JSON/CSV exports.
//
// Usage:
//
//	waybacktweets visualize --username <name> <records.json>
//	waybacktweets history <name>
//
// See --help for all available options.
package main

// main is the entry point for Wayback Tweets.
func main() {
	Execute()
}
