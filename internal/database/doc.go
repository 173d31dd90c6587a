// Package database provides the local SQLite store for Wayback Tweets.
//
// Two tables are kept: tweet_records holds every record ever imported per
// username (deduplicated on the archived tweet URL), and report_runs holds
// one row per generated report. The store makes repeated renders cheap and
// lets the history command answer "what did I generate, and when" without
// keeping the output files around.
//
// Design decision: modernc.org/sqlite is a pure Go driver, so the CLI
// stays a single static binary with no cgo toolchain requirement.
package database
