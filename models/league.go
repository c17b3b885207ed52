package models

import "time"

// League is the fully aggregated result of one archive: the parsed rounds with
// their computed standings, plus the raw tables kept for downstream display.
type League struct {
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Rounds          []Round            `json:"rounds"`
	LeagueStandings []Standing         `json:"league_standings"`
	Competitors     []Competitor       `json:"competitors,omitempty"`
	Submissions     []SubmissionRecord `json:"submissions,omitempty"`
	Votes           []VoteRecord       `json:"votes,omitempty"`
}

type LeagueState string

const (
	LeagueStatePending LeagueState = "pending"
	LeagueStateReady   LeagueState = "ready"
	LeagueStateFailed  LeagueState = "failed"
)

// LeagueResult is the outcome of one archive's load attempt. A load resolves
// to either a League or an error message, never a partial League.
type LeagueResult struct {
	Category string      `json:"category"`
	File     ArchiveFile `json:"file"`
	Slug     string      `json:"slug"`
	State    LeagueState `json:"state"`
	Error    string      `json:"error,omitempty"`
	League   *League     `json:"league,omitempty"`
	LoadedAt time.Time   `json:"loaded_at"`
}
