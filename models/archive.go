package models

// ArchiveFile describes one league archive inside the static manifest.
type ArchiveFile struct {
	FileName    string `json:"file_name"`
	LeagueTitle string `json:"league_title"`
}

// Category groups archives for display. Slug is the URL segment.
type Category struct {
	Name     string        `json:"name"`
	Slug     string        `json:"slug"`
	Archives []ArchiveFile `json:"archives"`
}

// Manifest is the static configuration table mapping categories to archive
// files. It is loaded once at startup and injected into the catalog service.
type Manifest struct {
	Categories []Category `json:"categories"`
}

// LeagueSummary is the list-view projection of a LeagueResult.
type LeagueSummary struct {
	Slug     string      `json:"slug"`
	Title    string      `json:"title"`
	FileName string      `json:"file_name"`
	State    LeagueState `json:"state"`
	Error    string      `json:"error,omitempty"`
}

// CategorySummary is a category plus the load state of its leagues.
type CategorySummary struct {
	Name    string          `json:"name"`
	Slug    string          `json:"slug"`
	Leagues []LeagueSummary `json:"leagues"`
}
