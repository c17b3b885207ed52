package repositories

import (
	"sync"

	"github.com/Dosada05/music-league-system/models"
)

// LeagueRepository holds the results of the latest load cycle. Every refresh
// replaces the whole set at once; there is no partial update path, matching
// the load-everything-from-scratch refresh model.
type LeagueRepository interface {
	ReplaceAll(results []models.LeagueResult)
	GetBySlug(slug string) (models.LeagueResult, bool)
	ListByCategory(categorySlug string) []models.LeagueResult
}

type inMemoryLeagueRepository struct {
	mu         sync.RWMutex
	bySlug     map[string]models.LeagueResult
	byCategory map[string][]models.LeagueResult
}

// NewInMemoryLeagueRepository returns an empty repository. Reads before the
// first ReplaceAll simply find nothing.
func NewInMemoryLeagueRepository() LeagueRepository {
	return &inMemoryLeagueRepository{
		bySlug:     make(map[string]models.LeagueResult),
		byCategory: make(map[string][]models.LeagueResult),
	}
}

func (r *inMemoryLeagueRepository) ReplaceAll(results []models.LeagueResult) {
	bySlug := make(map[string]models.LeagueResult, len(results))
	byCategory := make(map[string][]models.LeagueResult)
	for _, result := range results {
		bySlug[result.Slug] = result
		byCategory[result.Category] = append(byCategory[result.Category], result)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySlug = bySlug
	r.byCategory = byCategory
}

func (r *inMemoryLeagueRepository) GetBySlug(slug string) (models.LeagueResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.bySlug[slug]
	return result, ok
}

func (r *inMemoryLeagueRepository) ListByCategory(categorySlug string) []models.LeagueResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byCategory[categorySlug]
	results := make([]models.LeagueResult, len(stored))
	copy(results, stored)
	return results
}
