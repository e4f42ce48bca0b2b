package services

import (
	"context"
	"strings"
	"time"

	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
	"github.com/smallie/smallie/internal/core/schedule"
)

type voteService struct {
	dir     *Directory
	window  schedule.Window
	pricing config.Pricing
	now     func() time.Time
}

func NewVoteService(dir *Directory, window schedule.Window, pricing config.Pricing) ports.VoteService {
	return &voteService{
		dir:     dir,
		window:  window,
		pricing: pricing,
		now:     time.Now,
	}
}

// BuildIntent normalizes both vote entry points (one-click card button and
// the full form) into a single intent plus the quote the confirmation modal
// shows. Nothing is persisted here.
func (s *voteService) BuildIntent(ctx context.Context, input ports.BuildIntentInput) (*domain.VoteIntent, *ports.Quote, error) {
	if input.ContestantID == "" {
		return nil, nil, domain.ErrInvalidContestantID
	}

	count := input.Count
	if count == 0 {
		count = 1
	}
	if count < 1 {
		return nil, nil, domain.ErrInvalidVoteCount
	}

	name, tally, ok := s.dir.Snapshot(input.ContestantID)
	if !ok {
		return nil, nil, domain.ErrContestantNotFound
	}
	if tally.Eliminated {
		return nil, nil, domain.ErrContestantEliminated
	}

	day, _ := s.window.DayIndex(s.now())

	intent := &domain.VoteIntent{
		ContestantID: input.ContestantID,
		Count:        count,
		PayerEmail:   strings.TrimSpace(input.Email),
		DayIndex:     day,
	}

	quote := &ports.Quote{
		ContestantID:   input.ContestantID,
		ContestantName: name,
		Count:          count,
		UnitUSD:        s.pricing.VotePriceUSD,
		TotalUSD:       s.pricing.TotalUSD(count),
		TotalNGN:       s.pricing.TotalNGN(count),
	}

	return intent, quote, nil
}
