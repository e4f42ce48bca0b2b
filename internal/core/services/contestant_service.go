package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
)

type contestantService struct {
	repo    ports.ContestantRepository
	cache   ports.TallyCache
	dir     *Directory
	pricing config.Pricing
	log     *slog.Logger
}

func NewContestantService(repo ports.ContestantRepository, cache ports.TallyCache, dir *Directory, pricing config.Pricing, log *slog.Logger) ports.ContestantService {
	return &contestantService{
		repo:    repo,
		cache:   cache,
		dir:     dir,
		pricing: pricing,
		log:     log,
	}
}

// List returns the roster with live tallies and refreshes the local
// snapshot and the cache projection along the way.
func (s *contestantService) List(ctx context.Context) ([]*domain.Contestant, error) {
	contestants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}

	for _, c := range contestants {
		s.dir.Update(c)
		if err := s.cache.Set(ctx, c.ID, c.Votes); err != nil {
			s.log.Warn("tally cache refresh failed", "contestant_id", c.ID, "error", err)
		}
	}

	return contestants, nil
}

// PrizeFundNGN is the payout pool: the prize share of gross vote revenue,
// in naira.
func (s *contestantService) PrizeFundNGN(ctx context.Context) (float64, error) {
	contestants, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to compute prize fund: %w", err)
	}

	var total int64
	for _, c := range contestants {
		total += c.Votes
	}

	return float64(total) * s.pricing.VotePriceUSD * s.pricing.USDToNGN * s.pricing.PrizeShare, nil
}
