package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/music-league-system/models"
)

func TestInMemoryLeagueRepository(t *testing.T) {
	repo := NewInMemoryLeagueRepository()

	_, ok := repo.GetBySlug("season-1")
	require.False(t, ok)
	require.Empty(t, repo.ListByCategory("main"))

	repo.ReplaceAll([]models.LeagueResult{
		{Category: "main", Slug: "season-1", State: models.LeagueStateReady},
		{Category: "main", Slug: "season-2", State: models.LeagueStateFailed, Error: "boom"},
		{Category: "special", Slug: "holiday", State: models.LeagueStateReady},
	})

	result, ok := repo.GetBySlug("season-1")
	require.True(t, ok)
	require.Equal(t, models.LeagueStateReady, result.State)

	main := repo.ListByCategory("main")
	require.Len(t, main, 2)
	require.Empty(t, repo.ListByCategory("unknown"))
}

func TestReplaceAllDropsStaleResults(t *testing.T) {
	repo := NewInMemoryLeagueRepository()

	repo.ReplaceAll([]models.LeagueResult{
		{Category: "main", Slug: "season-1", State: models.LeagueStateReady},
	})
	repo.ReplaceAll([]models.LeagueResult{
		{Category: "main", Slug: "season-2", State: models.LeagueStateReady},
	})

	_, ok := repo.GetBySlug("season-1")
	require.False(t, ok)
	_, ok = repo.GetBySlug("season-2")
	require.True(t, ok)
	require.Len(t, repo.ListByCategory("main"), 1)
}
