package standings

import "github.com/Dosada05/music-league-system/models"

// UnknownCompetitor is the display name used when a submitter id has no match
// in the competitors table.
const UnknownCompetitor = "Unknown"

// SubmissionKey identifies one submitted track within one round.
type SubmissionKey struct {
	RoundID  string
	TrackURI string
}

// Joined holds the lookup structures aggregation needs, built in one pass
// over the parsed tables. Missing keys resolve to safe defaults rather than
// errors, so referential-integrity gaps in the source data (orphan votes,
// submissions from unknown competitors) never fail a load.
type Joined struct {
	namesByCompetitor  map[string]string
	submissionsByRound map[string][]models.SubmissionRecord
	pointsBySubmission map[SubmissionKey]int
}

// Join builds the lookup structures without requiring any particular row
// order. Duplicate competitor ids are last-write-wins; votes on the same
// (round, track) pair sum.
func Join(competitors []models.Competitor, submissions []models.SubmissionRecord, votes []models.VoteRecord) *Joined {
	joined := &Joined{
		namesByCompetitor:  make(map[string]string, len(competitors)),
		submissionsByRound: make(map[string][]models.SubmissionRecord),
		pointsBySubmission: make(map[SubmissionKey]int, len(submissions)),
	}

	for _, competitor := range competitors {
		joined.namesByCompetitor[competitor.ID] = competitor.Name
	}

	for _, submission := range submissions {
		joined.submissionsByRound[submission.RoundID] = append(joined.submissionsByRound[submission.RoundID], submission)
	}

	for _, vote := range votes {
		key := SubmissionKey{RoundID: vote.RoundID, TrackURI: vote.TrackURI}
		joined.pointsBySubmission[key] += vote.PointsAssigned
	}

	return joined
}

// CompetitorName resolves a submitter id to a display name, falling back to
// UnknownCompetitor on a miss.
func (j *Joined) CompetitorName(competitorID string) string {
	if name, ok := j.namesByCompetitor[competitorID]; ok {
		return name
	}
	return UnknownCompetitor
}

// RoundSubmissions returns a round's submissions in insertion order.
func (j *Joined) RoundSubmissions(roundID string) []models.SubmissionRecord {
	return j.submissionsByRound[roundID]
}

// Points returns the summed points for one (round, track) pair, 0 on a miss.
func (j *Joined) Points(roundID, trackURI string) int {
	return j.pointsBySubmission[SubmissionKey{RoundID: roundID, TrackURI: trackURI}]
}
