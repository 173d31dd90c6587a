package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Flag is a permissive boolean for JSON fields that appear in the wild as a
// real boolean, a string ("true", "False", ...), a number, or null.
//
// Design decision: The parser that produces the input JSON has emitted the
// retweet flag in different representations across versions. Rather than
// rejecting records over a cosmetic field, we accept any scalar and keep the
// textual form for rendering.
type Flag struct {
	// Set reports whether the field was present and non-null.
	Set bool

	// Value is the boolean interpretation of the field.
	Value bool

	// Raw is the textual form used when rendering the field.
	Raw string
}

// UnmarshalJSON decodes a boolean-like JSON value.
func (f *Flag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*f = Flag{}
		return nil
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		*f = Flag{Set: true, Value: b, Raw: fmt.Sprintf("%t", b)}
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*f = Flag{Set: true, Value: isTruthy(s), Raw: s}
		return nil
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		*f = Flag{Set: true, Value: n != 0, Raw: string(trimmed)}
		return nil
	}

	return fmt.Errorf("cannot decode %s as a boolean-like value", string(trimmed))
}

// MarshalJSON encodes the flag as a plain boolean.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// String returns the textual form of the flag for rendering.
// Unset flags render as "false" so every card shows all fields.
func (f Flag) String() string {
	if !f.Set {
		return "false"
	}
	return f.Raw
}

// isTruthy interprets common string spellings of a boolean.
func isTruthy(s string) bool {
	switch s {
	case "", "0", "false", "False", "FALSE", "no", "No":
		return false
	default:
		return true
	}
}

// TweetRecord is a single parsed archived tweet.
// All fields are produced by the archive parser and consumed read-only here;
// this tool performs no parsing or fetching of its own.
type TweetRecord struct {
	// ArchivedTweetURL is the Wayback Machine snapshot URL.
	ArchivedTweetURL string `json:"archived_tweet_url"`

	// ParsedArchivedTweetURL is the cleaned form of the snapshot URL.
	ParsedArchivedTweetURL string `json:"parsed_archived_tweet_url"`

	// OriginalTweetURL is the live tweet URL at the time of archiving.
	OriginalTweetURL string `json:"original_tweet_url"`

	// ParsedTweetURL is the cleaned form of the live tweet URL.
	ParsedTweetURL string `json:"parsed_tweet_url"`

	// AvailableTweetText holds the tweet text when it could still be
	// retrieved live. Empty when only the archived snapshot is available.
	AvailableTweetText string `json:"available_tweet_text"`

	// AvailableTweetIsRT reports whether the live tweet is a retweet.
	AvailableTweetIsRT Flag `json:"available_tweet_is_RT"`

	// AvailableTweetInfo is the attributed username/info for the live tweet.
	AvailableTweetInfo string `json:"available_tweet_info"`

	// ArchivedURLKey is the CDX url key of the snapshot.
	ArchivedURLKey string `json:"archived_urlkey"`

	// ArchivedTimestamp is the raw archive timestamp (YYYYMMDDhhmmss).
	ArchivedTimestamp string `json:"archived_timestamp"`

	// ArchivedMimetype is the mimetype recorded for the snapshot.
	ArchivedMimetype string `json:"archived_mimetype"`

	// ArchivedStatuscode is the HTTP status recorded for the snapshot.
	ArchivedStatuscode string `json:"archived_statuscode"`

	// ArchivedDigest is the content digest recorded for the snapshot.
	ArchivedDigest string `json:"archived_digest"`

	// ArchivedLength is the content length recorded for the snapshot.
	ArchivedLength string `json:"archived_length"`
}

// HasAvailableText reports whether the live tweet text could be retrieved.
// The renderer uses this to choose between the embedded-snapshot branch and
// the plain-text branch of a tweet card.
func (r *TweetRecord) HasAvailableText() bool {
	return r.AvailableTweetText != ""
}

// TweetReport is the unit every report writer consumes: a username plus the
// ordered records loaded for it. Record order is preserved from the input;
// pagination in the writers is purely positional.
type TweetReport struct {
	// Username is the Twitter/X username the records belong to,
	// without the leading "@".
	Username string `json:"username"`

	// Records are the parsed tweets in input order.
	Records []TweetRecord `json:"records"`

	// GeneratedAt is when this report was assembled.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewTweetReport creates a report for the given username and records.
func NewTweetReport(username string, records []TweetRecord) *TweetReport {
	return &TweetReport{
		Username:    username,
		Records:     records,
		GeneratedAt: time.Now(),
	}
}
