package request

import "math"

// "Movies like this" pagination bounds.
const (
	DefaultPage         = 1
	DefaultSimilarLimit = 12
	MaxSimilarLimit     = 50
)

// SimilarRequest is a normalized "movies like this" page request.
type SimilarRequest struct {
	movieID int64
	page    int
	limit   int
}

// NewSimilar clamps page to at least 1 and limit to [1, MaxSimilarLimit].
// Out-of-range values are normalized, never rejected.
func NewSimilar(movieID int64, page, limit int) SimilarRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}
	// Offset must stay representable.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return SimilarRequest{movieID: movieID, page: page, limit: limit}
}

// MovieID returns the target movie.
func (r *SimilarRequest) MovieID() int64 { return r.movieID }

// Page returns the 1-based page number.
func (r *SimilarRequest) Page() int { return r.page }

// Limit returns the page size.
func (r *SimilarRequest) Limit() int { return r.limit }

// Offset returns the number of rows to skip.
func (r *SimilarRequest) Offset() int { return (r.page - 1) * r.limit }
