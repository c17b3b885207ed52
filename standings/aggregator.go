package standings

import (
	"sort"

	"github.com/Dosada05/music-league-system/models"
)

// RoundStandings computes the leaderboard for one round: one entry per
// submission in the round, scored by the summed votes on its track. Entries
// are sorted by points descending with a stable sort; equal points keep their
// insertion order, which is the tie-break policy. Positions are the
// contiguous sequence 1..N.
func RoundStandings(round models.Round, joined *Joined) []models.Standing {
	submissions := joined.RoundSubmissions(round.ID)
	entries := make([]models.Standing, 0, len(submissions))
	for _, submission := range submissions {
		entries = append(entries, models.Standing{
			Name:   joined.CompetitorName(submission.SubmitterID),
			Points: joined.Points(round.ID, submission.TrackURI),
			Song:   submission.Title,
		})
	}

	sortAndRank(entries)
	return entries
}

// LeagueStandings sums each competitor's per-round points across all rounds.
// Identity across rounds is the display name, since only the name survives
// into round standings. Accumulation order is first-seen order, which the
// stable sort preserves among ties.
func LeagueStandings(rounds []models.Round) []models.Standing {
	totals := make(map[string]int)
	var order []string

	for _, round := range rounds {
		for _, standing := range round.Standings {
			if _, seen := totals[standing.Name]; !seen {
				order = append(order, standing.Name)
			}
			totals[standing.Name] += standing.Points
		}
	}

	entries := make([]models.Standing, 0, len(order))
	for _, name := range order {
		entries = append(entries, models.Standing{Name: name, Points: totals[name]})
	}

	sortAndRank(entries)
	return entries
}

func sortAndRank(entries []models.Standing) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
}
