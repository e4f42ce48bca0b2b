package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
	"github.com/smallie/smallie/internal/core/schedule"
)

func testPricing() config.Pricing {
	return config.Pricing{
		VotePriceUSD:   0.5,
		USDToNGN:       480,
		LamportsPerNGN: 1e9 / 1000,
		PrizeShare:     0.9,
	}
}

func newTestVoteService(dir *Directory) *voteService {
	svc := NewVoteService(dir, schedule.Default(), testPricing()).(*voteService)
	// Noon on the second day of the run.
	svc.now = func() time.Time {
		return time.Date(2025, time.April, 16, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func rosterDirectory() *Directory {
	dir := NewDirectory()
	dir.Update(&domain.Contestant{ID: "7", Name: "Ibrahim Yusuf", Votes: 234})
	dir.Update(&domain.Contestant{ID: "8", Name: "Amara Obi", Votes: 156, Eliminated: true})
	return dir
}

func TestBuildIntentQuote(t *testing.T) {
	svc := newTestVoteService(rosterDirectory())

	intent, quote, err := svc.BuildIntent(context.Background(), ports.BuildIntentInput{
		ContestantID: "7",
		Count:        2,
		Email:        "  voter@example.com ",
	})
	require.NoError(t, err)

	assert.Equal(t, "7", intent.ContestantID)
	assert.Equal(t, 2, intent.Count)
	assert.Equal(t, "voter@example.com", intent.PayerEmail)
	assert.Equal(t, 2, intent.DayIndex)

	assert.Equal(t, "Ibrahim Yusuf", quote.ContestantName)
	assert.Equal(t, 0.5, quote.UnitUSD)
	assert.Equal(t, 1.0, quote.TotalUSD)
	assert.Equal(t, 480.0, quote.TotalNGN)
}

func TestBuildIntentDefaultsToOneVote(t *testing.T) {
	svc := newTestVoteService(rosterDirectory())

	intent, quote, err := svc.BuildIntent(context.Background(), ports.BuildIntentInput{ContestantID: "7"})
	require.NoError(t, err)
	assert.Equal(t, 1, intent.Count)
	assert.Equal(t, 0.5, quote.TotalUSD)
}

func TestBuildIntentRejectsBadInput(t *testing.T) {
	svc := newTestVoteService(rosterDirectory())
	ctx := context.Background()

	_, _, err := svc.BuildIntent(ctx, ports.BuildIntentInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidContestantID)

	_, _, err = svc.BuildIntent(ctx, ports.BuildIntentInput{ContestantID: "7", Count: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidVoteCount)

	_, _, err = svc.BuildIntent(ctx, ports.BuildIntentInput{ContestantID: "99"})
	assert.ErrorIs(t, err, domain.ErrContestantNotFound)
}

func TestBuildIntentRejectsEliminatedContestant(t *testing.T) {
	svc := newTestVoteService(rosterDirectory())

	_, _, err := svc.BuildIntent(context.Background(), ports.BuildIntentInput{ContestantID: "8"})
	assert.ErrorIs(t, err, domain.ErrContestantEliminated)
}
