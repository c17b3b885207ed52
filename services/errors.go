package services

import "errors"

// Common errors shared across services and the HTTP mapping. Archive
// validation kinds live in the archive package, transport kinds in storage;
// what remains here is the loader deadline and the API lookups.
var (
	ErrLoadTimeout = errors.New("league load timed out")

	ErrLeagueNotFound   = errors.New("league not found")
	ErrCategoryNotFound = errors.New("category not found")
)
