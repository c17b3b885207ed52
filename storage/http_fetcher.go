package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dosada05/music-league-system/archive"
)

type httpFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher fetches archives from a static HTTP endpoint,
// GET {baseURL}/{fileName}.
func NewHTTPFetcher(baseURL string, client *http.Client) (ArchiveFetcher, error) {
	if baseURL == "" {
		return nil, errors.New("invalid HTTP fetcher configuration: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid HTTP fetcher base URL %q: %w", baseURL, err)
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &httpFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}, nil
}

func (f *httpFetcher) Fetch(ctx context.Context, fileName string) ([]byte, error) {
	archiveURL := f.baseURL + "/" + url.PathEscape(fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build archive request for %q: %w", fileName, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Both sentinels are kept in the chain so callers can distinguish a
		// deadline from a plain transport failure.
		return nil, fmt.Errorf("%w: %q: %w", ErrFetchFailed, fileName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %q returned status %d", ErrFetchFailed, fileName, resp.StatusCode)
	}

	return readCapped(resp.Body, fileName)
}

// readCapped reads at most the raw payload cap. Exceeding it is an archive
// size error at the transport boundary, before decoding is attempted.
func readCapped(body io.Reader, fileName string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, archive.MaxArchiveBytes+1))
	if err != nil {
		// Keep the underlying error in the chain: a deadline firing mid-read
		// must still be recognizable as context.DeadlineExceeded upstream.
		return nil, fmt.Errorf("%w: %q: %w", ErrFetchFailed, fileName, err)
	}
	if len(data) > archive.MaxArchiveBytes {
		return nil, fmt.Errorf("%w: %q exceeds %d raw bytes", archive.ErrArchiveTooLarge, fileName, archive.MaxArchiveBytes)
	}
	return data, nil
}
