package request

import (
	"fmt"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/genre"
)

// Trending feed bounds.
const (
	DefaultTrendingLimit = 10
	MaxTrendingLimit     = 100
)

// TrendingRequest is a validated trending feed request.
type TrendingRequest struct {
	limit int
}

// NewTrending validates limit. Zero selects DefaultTrendingLimit.
func NewTrending(limit int) (TrendingRequest, error) {
	if limit == 0 {
		limit = DefaultTrendingLimit
	}
	if limit < 1 || limit > MaxTrendingLimit {
		return TrendingRequest{}, domain.NewInvalidParam("limit",
			fmt.Sprintf("must be between 1 and %d", MaxTrendingLimit))
	}
	return TrendingRequest{limit: limit}, nil
}

// Limit returns the number of movies to return.
func (r *TrendingRequest) Limit() int { return r.limit }

// PoolSize returns how many popularity-ordered movies the feed samples from.
func (r *TrendingRequest) PoolSize() int { return r.limit * 5 }

// GenreRequest is a validated genre discovery request.
type GenreRequest struct {
	genres []string
}

// NewGenre normalizes genre names to lowercase. At least one is required.
func NewGenre(genres []string) (GenreRequest, error) {
	g := genre.Normalize(genres)
	if len(g) == 0 {
		return GenreRequest{}, domain.NewInvalidParam("genre", "is required")
	}
	return GenreRequest{genres: g}, nil
}

// Genres returns the lowercased requested genres.
func (r *GenreRequest) Genres() []string { return r.genres }
