package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/music-league-system/archive"
)

func TestNewHTTPFetcherRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPFetcher("", nil)
	require.Error(t, err)
}

func TestHTTPFetcherReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/season-1.zip", r.URL.Path)
		w.Write([]byte("zip-bytes"))
	}))
	t.Cleanup(server.Close)

	fetcher, err := NewHTTPFetcher(server.URL, server.Client())
	require.NoError(t, err)

	raw, err := fetcher.Fetch(context.Background(), "season-1.zip")
	require.NoError(t, err)
	require.Equal(t, []byte("zip-bytes"), raw)
}

func TestHTTPFetcherNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	fetcher, err := NewHTTPFetcher(server.URL, server.Client())
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), "missing.zip")
	require.ErrorIs(t, err, ErrFetchFailed)
	require.Contains(t, err.Error(), "missing.zip")
}

func TestHTTPFetcherEscapesFileName(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	fetcher, err := NewHTTPFetcher(server.URL+"/", server.Client())
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), "season one.zip")
	require.NoError(t, err)
	require.Equal(t, "/season%20one.zip", gotPath)
}

func TestHTTPFetcherRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, archive.MaxArchiveBytes+1))
	}))
	t.Cleanup(server.Close)

	fetcher, err := NewHTTPFetcher(server.URL, server.Client())
	require.NoError(t, err)

	raw, err := fetcher.Fetch(context.Background(), "huge.zip")
	require.ErrorIs(t, err, archive.ErrArchiveTooLarge)
	require.Nil(t, raw)
}

func TestHTTPFetcherDeadlineDuringBodyRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	t.Cleanup(server.Close)

	fetcher, err := NewHTTPFetcher(server.URL, server.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = fetcher.Fetch(ctx, "slow-body.zip")
	require.ErrorIs(t, err, ErrFetchFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
