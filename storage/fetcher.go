package storage

import (
	"context"
	"errors"
)

// ErrFetchFailed marks a non-success transport response for an archive.
var ErrFetchFailed = errors.New("failed to fetch archive")

// ArchiveFetcher retrieves the raw bytes of one league archive by its
// manifest file name. Implementations enforce the raw payload cap so callers
// never hold more than archive.MaxArchiveBytes in memory per fetch.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, fileName string) ([]byte, error)
}
