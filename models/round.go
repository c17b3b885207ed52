package models

// Round is one competition cycle of a league. The definition fields come from
// the rounds table; Standings are attached once by the aggregation step and
// the struct is treated as read-only afterwards.
type Round struct {
	ID          string     `json:"id"`
	CreatedAt   string     `json:"created_at"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	PlaylistURL string     `json:"playlist_url,omitempty"`
	Standings   []Standing `json:"standings"`
}
