package services

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/music-league-system/archive"
	"github.com/Dosada05/music-league-system/models"
	"github.com/Dosada05/music-league-system/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func leagueArchiveFixture(t *testing.T) []byte {
	return buildZip(t, map[string]string{
		"competitors.csv": "ID,Name\nu1,Alice\nu2,Bob\n",
		"rounds.csv":      "ID,Created,Name,Description\nr1,2024-01-01,Round 1,Openers\n",
		"submissions.csv": "Spotify URI,Title,Album,Artist(s),Submitter ID,Created,Comment,Round ID,Visible To Voters\n" +
			"t1,Song A,Album A,Artist A,u1,2024-01-02,,r1,Yes\n" +
			"t2,Song B,Album B,Artist B,u2,2024-01-02,,r1,Yes\n",
		"votes.csv": "Spotify URI,Voter ID,Created,Points Assigned,Comment,Round ID\n" +
			"t1,u2,2024-01-05,10,,r1\n" +
			"t2,u1,2024-01-05,7,,r1\n" +
			"t1,u3,2024-01-05,3,,r1\n",
	})
}

func archiveServer(t *testing.T, archives map[string][]byte) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(raw)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestLeagueService(t *testing.T, server *httptest.Server, timeout time.Duration) LeagueService {
	t.Helper()

	fetcher, err := storage.NewHTTPFetcher(server.URL, server.Client())
	require.NoError(t, err)
	return NewLeagueService(fetcher, timeout, testLogger())
}

func TestLoadLeagueEndToEnd(t *testing.T) {
	server := archiveServer(t, map[string][]byte{
		"/season-1.zip": leagueArchiveFixture(t),
	})
	svc := newTestLeagueService(t, server, time.Second)

	league, err := svc.LoadLeague(context.Background(), models.ArchiveFile{
		FileName:    "season-1.zip",
		LeagueTitle: "Season 1",
	})
	require.NoError(t, err)

	require.Equal(t, "Season 1", league.Title)
	require.Equal(t, "season-1", league.Slug)
	require.Len(t, league.Rounds, 1)

	round := league.Rounds[0]
	require.Equal(t, "Round 1", round.Name)
	require.Equal(t, []models.Standing{
		{Position: 1, Name: "Alice", Points: 13, Song: "Song A"},
		{Position: 2, Name: "Bob", Points: 7, Song: "Song B"},
	}, round.Standings)

	// A single round: league standings mirror the round.
	require.Equal(t, []models.Standing{
		{Position: 1, Name: "Alice", Points: 13},
		{Position: 2, Name: "Bob", Points: 7},
	}, league.LeagueStandings)

	require.Len(t, league.Competitors, 2)
	require.Len(t, league.Submissions, 2)
	require.Len(t, league.Votes, 3)
}

func TestLoadLeagueIsIdempotent(t *testing.T) {
	server := archiveServer(t, map[string][]byte{
		"/season-1.zip": leagueArchiveFixture(t),
	})
	svc := newTestLeagueService(t, server, time.Second)
	file := models.ArchiveFile{FileName: "season-1.zip", LeagueTitle: "Season 1"}

	first, err := svc.LoadLeague(context.Background(), file)
	require.NoError(t, err)
	second, err := svc.LoadLeague(context.Background(), file)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestLoadLeagueRejectsUnsafeArchive(t *testing.T) {
	server := archiveServer(t, map[string][]byte{
		"/evil.zip": buildZip(t, map[string]string{
			"../evil.csv": "ID,Name\nu1,Mallory\n",
		}),
	})
	svc := newTestLeagueService(t, server, time.Second)

	league, err := svc.LoadLeague(context.Background(), models.ArchiveFile{
		FileName:    "evil.zip",
		LeagueTitle: "Evil",
	})
	require.ErrorIs(t, err, archive.ErrPathTraversal)
	require.Nil(t, league)
}

func TestLoadLeagueFetchFailure(t *testing.T) {
	server := archiveServer(t, nil)
	svc := newTestLeagueService(t, server, time.Second)

	_, err := svc.LoadLeague(context.Background(), models.ArchiveFile{
		FileName:    "missing.zip",
		LeagueTitle: "Missing",
	})
	require.ErrorIs(t, err, storage.ErrFetchFailed)
}

func TestLoadLeagueTimeoutNamesArchive(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	t.Cleanup(slow.Close)

	fetcher, err := storage.NewHTTPFetcher(slow.URL, slow.Client())
	require.NoError(t, err)
	svc := NewLeagueService(fetcher, 20*time.Millisecond, testLogger())

	_, err = svc.LoadLeague(context.Background(), models.ArchiveFile{
		FileName:    "slow.zip",
		LeagueTitle: "Slow",
	})
	require.ErrorIs(t, err, ErrLoadTimeout)
	require.Contains(t, err.Error(), "slow.zip")
}

func TestLoadLeagueTimeoutDuringBodyRead(t *testing.T) {
	// Headers arrive in time, the body stalls. The deadline fires while the
	// fetcher drains the body and must still map to ErrLoadTimeout.
	stalling := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	t.Cleanup(stalling.Close)

	fetcher, err := storage.NewHTTPFetcher(stalling.URL, stalling.Client())
	require.NoError(t, err)
	svc := NewLeagueService(fetcher, 20*time.Millisecond, testLogger())

	_, err = svc.LoadLeague(context.Background(), models.ArchiveFile{
		FileName:    "stalling.zip",
		LeagueTitle: "Stalling",
	})
	require.ErrorIs(t, err, ErrLoadTimeout)
	require.Contains(t, err.Error(), "stalling.zip")
}
