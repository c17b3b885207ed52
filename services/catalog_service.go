package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/music-league-system/live"
	"github.com/Dosada05/music-league-system/models"
	"github.com/Dosada05/music-league-system/repositories"
	"github.com/Dosada05/music-league-system/utils"
)

// maxConcurrentLoads caps the archive fan-out so a large manifest does not
// open an unbounded number of fetches at once.
const maxConcurrentLoads = 8

type CatalogService interface {
	// RefreshAll reloads every archive in the manifest in parallel and
	// replaces the repository contents in one step. One archive's failure is
	// recorded in its result and never aborts sibling loads.
	RefreshAll(ctx context.Context) []models.LeagueResult

	Categories() []models.CategorySummary
	LeaguesByCategory(categorySlug string) ([]models.LeagueResult, error)
	LeagueBySlug(slug string) (models.LeagueResult, error)
}

type catalogService struct {
	manifest models.Manifest
	leagues  LeagueService
	repo     repositories.LeagueRepository
	hub      *live.Hub
	logger   *slog.Logger
}

// NewCatalogService wires the injected manifest to the loader and the
// repository. The hub may be nil when no websocket surface is running,
// e.g. in tests.
func NewCatalogService(
	manifest models.Manifest,
	leagues LeagueService,
	repo repositories.LeagueRepository,
	hub *live.Hub,
	logger *slog.Logger,
) CatalogService {
	return &catalogService{
		manifest: manifest,
		leagues:  leagues,
		repo:     repo,
		hub:      hub,
		logger:   logger,
	}
}

// archiveTask addresses one manifest archive inside the flattened fan-out.
type archiveTask struct {
	category models.Category
	file     models.ArchiveFile
}

func (s *catalogService) RefreshAll(ctx context.Context) []models.LeagueResult {
	var tasks []archiveTask
	for _, category := range s.manifest.Categories {
		for _, file := range category.Archives {
			tasks = append(tasks, archiveTask{category: category, file: file})
		}
	}

	results := make([]models.LeagueResult, len(tasks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = s.loadOne(gCtx, task)
			return nil
		})
	}
	// Tasks never return errors; per-archive failures live in the results.
	_ = g.Wait()

	s.repo.ReplaceAll(results)
	s.notify(results)

	return results
}

func (s *catalogService) loadOne(ctx context.Context, task archiveTask) models.LeagueResult {
	result := models.LeagueResult{
		Category: task.category.Slug,
		File:     task.file,
		Slug:     utils.Slugify(task.file.LeagueTitle),
		LoadedAt: time.Now().UTC(),
	}

	league, err := s.leagues.LoadLeague(ctx, task.file)
	if err != nil {
		s.logger.Error("league load failed",
			slog.String("category", task.category.Slug),
			slog.String("file", task.file.FileName),
			slog.Any("error", err),
		)
		result.State = models.LeagueStateFailed
		result.Error = err.Error()
		return result
	}

	result.State = models.LeagueStateReady
	result.League = league
	return result
}

func (s *catalogService) notify(results []models.LeagueResult) {
	if s.hub == nil {
		return
	}
	for _, result := range results {
		if result.State != models.LeagueStateReady {
			continue
		}
		s.hub.BroadcastToCategory(result.Category, live.UpdateMessage{
			Type:     "LEAGUE_UPDATED",
			Category: result.Category,
			Payload: models.LeagueSummary{
				Slug:     result.Slug,
				Title:    result.File.LeagueTitle,
				FileName: result.File.FileName,
				State:    result.State,
			},
		})
	}
}

func (s *catalogService) Categories() []models.CategorySummary {
	summaries := make([]models.CategorySummary, 0, len(s.manifest.Categories))
	for _, category := range s.manifest.Categories {
		summary := models.CategorySummary{
			Name:    category.Name,
			Slug:    category.Slug,
			Leagues: make([]models.LeagueSummary, 0, len(category.Archives)),
		}
		for _, file := range category.Archives {
			league := models.LeagueSummary{
				Slug:     utils.Slugify(file.LeagueTitle),
				Title:    file.LeagueTitle,
				FileName: file.FileName,
				State:    models.LeagueStatePending,
			}
			if result, ok := s.repo.GetBySlug(league.Slug); ok {
				league.State = result.State
				league.Error = result.Error
			}
			summary.Leagues = append(summary.Leagues, league)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func (s *catalogService) LeaguesByCategory(categorySlug string) ([]models.LeagueResult, error) {
	for _, category := range s.manifest.Categories {
		if category.Slug == categorySlug {
			return s.repo.ListByCategory(categorySlug), nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (s *catalogService) LeagueBySlug(slug string) (models.LeagueResult, error) {
	result, ok := s.repo.GetBySlug(slug)
	if !ok {
		return models.LeagueResult{}, ErrLeagueNotFound
	}
	return result, nil
}
