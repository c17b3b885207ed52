package models

// Standing is a computed leaderboard row. It is never parsed from an archive
// table; round and league standings are built by the standings package after
// votes are joined.
type Standing struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Song     string `json:"song,omitempty"`
}
