package models

// SubmissionRecord is one submitted track in one round. TrackURI plus RoundID
// form the natural key a vote references.
type SubmissionRecord struct {
	TrackURI        string `json:"track_uri"`
	Title           string `json:"title"`
	Album           string `json:"album"`
	Artists         string `json:"artists"`
	SubmitterID     string `json:"submitter_id"`
	CreatedAt       string `json:"created_at"`
	Comment         string `json:"comment,omitempty"`
	RoundID         string `json:"round_id"`
	VisibleToVoters bool   `json:"visible_to_voters"`
}
