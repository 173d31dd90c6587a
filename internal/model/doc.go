// Package model defines the core data structures used throughout Wayback Tweets.
//
// This package contains the following main types:
//   - TweetRecord: A single parsed archived tweet as produced by the parser
//   - TweetReport: An ordered collection of records for one username
//   - Flag: A permissive boolean for fields that appear as bool or string
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (record, report, database) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage, with struct tags matching the field names emitted by the
// parser that produces the input JSON.
package model
