// Package log provides structured logging helpers for Wayback Tweets.
//
// The CLI logs through log/slog with a wrapping handler that keeps terminal
// output readable: archive URLs, digests, and raw JSON attributes routinely
// run to hundreds of characters, so oversized values are truncated, and
// credential-looking attribute keys are masked outright.
package log
