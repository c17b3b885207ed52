package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/music-league-system/archive"
	"github.com/Dosada05/music-league-system/models"
	"github.com/Dosada05/music-league-system/standings"
	"github.com/Dosada05/music-league-system/storage"
	"github.com/Dosada05/music-league-system/utils"
)

// DefaultLoadTimeout bounds one archive's fetch-and-decode phase.
const DefaultLoadTimeout = 5 * time.Second

type LeagueService interface {
	// LoadLeague turns one archive into a finished League:
	// fetch -> validate -> parse -> join -> aggregate. Any validation or
	// transport failure aborts the whole load; no partial League is returned.
	LoadLeague(ctx context.Context, file models.ArchiveFile) (*models.League, error)
}

type leagueService struct {
	fetcher storage.ArchiveFetcher
	timeout time.Duration
	logger  *slog.Logger
}

func NewLeagueService(fetcher storage.ArchiveFetcher, timeout time.Duration, logger *slog.Logger) LeagueService {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &leagueService{
		fetcher: fetcher,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *leagueService) LoadLeague(ctx context.Context, file models.ArchiveFile) (*models.League, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()

	raw, err := s.fetcher.Fetch(ctx, file.FileName)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", ErrLoadTimeout, file.FileName, s.timeout)
		}
		return nil, err
	}

	// The deadline bounds the fetch and decode phase. Aggregation itself is
	// synchronous and cheap once bytes are resident, so a deadline that fires
	// during it means the work is abandoned on return, not cancelled midway.
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %s after %s", ErrLoadTimeout, file.FileName, s.timeout)
	}

	contents, err := archive.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("archive %s rejected: %w", file.FileName, err)
	}

	tables := archive.ParseAll(contents)
	joined := standings.Join(tables.Competitors, tables.Submissions, tables.Votes)

	rounds := make([]models.Round, len(tables.Rounds))
	for i, round := range tables.Rounds {
		round.Standings = standings.RoundStandings(round, joined)
		rounds[i] = round
	}

	league := &models.League{
		Title:           file.LeagueTitle,
		Slug:            utils.Slugify(file.LeagueTitle),
		Rounds:          rounds,
		LeagueStandings: standings.LeagueStandings(rounds),
		Competitors:     tables.Competitors,
		Submissions:     tables.Submissions,
		Votes:           tables.Votes,
	}

	s.logger.Info("league loaded",
		slog.String("file", file.FileName),
		slog.Int("rounds", len(league.Rounds)),
		slog.Int("competitors", len(league.Competitors)),
		slog.Duration("elapsed", time.Since(started)),
	)

	return league, nil
}
