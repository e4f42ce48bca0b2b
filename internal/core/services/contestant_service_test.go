package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallie/smallie/internal/core/domain"
)

func TestListRefreshesSnapshotAndCache(t *testing.T) {
	repo := newFakeContestantRepo()
	repo.list = []*domain.Contestant{
		{ID: "1", Name: "Adebola Johnson", Votes: 245},
		{ID: "8", Name: "Amara Obi", Votes: 156, Eliminated: true},
	}
	cache := newFakeTallyCache()
	dir := NewDirectory()

	svc := NewContestantService(repo, cache, dir, testPricing(), discardLogger())

	contestants, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, contestants, 2)

	name, tally, ok := dir.Snapshot("8")
	require.True(t, ok)
	assert.Equal(t, "Amara Obi", name)
	assert.True(t, tally.Eliminated)

	assert.Equal(t, int64(245), cache.counts["1"])
	assert.Equal(t, int64(156), cache.counts["8"])
}

func TestListSurvivesCacheFailure(t *testing.T) {
	repo := newFakeContestantRepo()
	repo.list = []*domain.Contestant{{ID: "1", Name: "Adebola Johnson", Votes: 245}}
	cache := newFakeTallyCache()
	cache.setErr = errBackend

	svc := NewContestantService(repo, cache, NewDirectory(), testPricing(), discardLogger())

	_, err := svc.List(context.Background())
	require.NoError(t, err)
}

func TestPrizeFund(t *testing.T) {
	repo := newFakeContestantRepo()
	repo.list = []*domain.Contestant{
		{ID: "1", Votes: 600},
		{ID: "2", Votes: 400},
	}

	svc := NewContestantService(repo, newFakeTallyCache(), NewDirectory(), testPricing(), discardLogger())

	fund, err := svc.PrizeFundNGN(context.Background())
	require.NoError(t, err)
	// 1000 votes * $0.50 * 480 NGN * 0.9 share.
	assert.InDelta(t, 216_000, fund, 0.001)
}

func TestPrizeFundPropagatesStoreError(t *testing.T) {
	repo := newFakeContestantRepo()
	repo.listErr = errBackend

	svc := NewContestantService(repo, newFakeTallyCache(), NewDirectory(), testPricing(), discardLogger())

	_, err := svc.PrizeFundNGN(context.Background())
	assert.ErrorIs(t, err, errBackend)
}
