package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultRefreshInterval matches the daily rebuild of the trending pools.
const DefaultRefreshInterval = 24 * time.Hour

// Refresher keeps cached trending pools warm on a fixed interval.
type Refresher struct {
	svc      *Service
	sizes    []int
	interval time.Duration
	logger   *zap.Logger
}

// NewRefresher creates a refresher for the given pool sizes.
func NewRefresher(svc *Service, sizes []int, interval time.Duration, logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{svc: svc, sizes: sizes, interval: interval, logger: logger}
}

// Run refreshes once immediately and then every interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	r.refreshAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	for _, size := range r.sizes {
		start := time.Now()
		if err := r.svc.Refresh(ctx, size); err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Warn("Trending refresh failed", zap.Int("size", size), zap.Error(err))
			continue
		}
		r.logger.Info("Trending pool refreshed",
			zap.Int("size", size),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
