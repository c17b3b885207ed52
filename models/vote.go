package models

// VoteRecord is one voter's points on one (round, track) pair. Multiple votes
// may target the same pair; their points sum during aggregation.
type VoteRecord struct {
	TrackURI       string `json:"track_uri"`
	VoterID        string `json:"voter_id"`
	CreatedAt      string `json:"created_at"`
	PointsAssigned int    `json:"points_assigned"`
	Comment        string `json:"comment,omitempty"`
	RoundID        string `json:"round_id"`
}
