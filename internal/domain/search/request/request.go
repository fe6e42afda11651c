package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

// Search parameter limits.
const (
	// DefaultQuery replaces an empty query before classification.
	DefaultQuery = "top action"
	// MaxQueryLength is the maximum allowed search query length in characters.
	MaxQueryLength = 4096
)

// Query is the immutable input of one free-text search.
type Query struct {
	raw    string
	lower  string
	length int
}

// NewQuery validates a raw query. An empty query becomes DefaultQuery.
// Invalid UTF-8 is rejected before it can reach the trigram matcher.
// The text is not trimmed: length thresholds apply to what the caller sent.
func NewQuery(raw string) (Query, error) {
	if raw == "" {
		raw = DefaultQuery
	}
	if !utf8.ValidString(raw) {
		return Query{}, domain.NewInvalidParam("q", "must be valid UTF-8")
	}
	n := utf8.RuneCountInString(raw)
	if n > MaxQueryLength {
		return Query{}, domain.NewInvalidParam("q", fmt.Sprintf("too long (max %d chars)", MaxQueryLength))
	}
	return Query{raw: raw, lower: strings.ToLower(raw), length: n}, nil
}

// Raw returns the query as sent (or the default).
func (q *Query) Raw() string { return q.raw }

// Lower returns the lowercased query.
func (q *Query) Lower() string { return q.lower }

// Len returns the query length in characters.
func (q *Query) Len() int { return q.length }
