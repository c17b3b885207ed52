package archive

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Dosada05/music-league-system/models"
)

// TableKind identifies which of the four known tables a CSV entry holds.
// The role is carried by the entry name, not the headers.
type TableKind string

const (
	KindCompetitors TableKind = "competitors"
	KindRounds      TableKind = "rounds"
	KindSubmissions TableKind = "submissions"
	KindVotes       TableKind = "votes"
	KindUnknown     TableKind = ""
)

// KindForName matches a validated entry name to a table kind by
// case-insensitive substring. Unmatched entries are ignored entirely, which
// keeps archives forward-compatible with extra files.
func KindForName(name string) TableKind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "competitor"):
		return KindCompetitors
	case strings.Contains(lower, "round"):
		return KindRounds
	case strings.Contains(lower, "submission"):
		return KindSubmissions
	case strings.Contains(lower, "vote"):
		return KindVotes
	}
	return KindUnknown
}

// Tables accumulates typed rows from every recognized entry of one archive.
type Tables struct {
	Competitors []models.Competitor
	Rounds      []models.Round
	Submissions []models.SubmissionRecord
	Votes       []models.VoteRecord
}

// ParseAll parses every recognized entry of a validated archive. Entries are
// visited in sorted name order so row insertion order, which later decides
// tie-breaks, does not depend on map iteration.
func ParseAll(contents map[string]string) *Tables {
	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := &Tables{}
	for _, name := range names {
		tables.ParseEntry(name, contents[name])
	}
	return tables
}

// ParseEntry parses one CSV entry into the matching table. Entries with an
// unrecognized name are skipped.
func (t *Tables) ParseEntry(name, csvText string) {
	switch KindForName(name) {
	case KindCompetitors:
		t.parseCompetitors(csvText)
	case KindRounds:
		t.parseRounds(csvText)
	case KindSubmissions:
		t.parseSubmissions(csvText)
	case KindVotes:
		t.parseVotes(csvText)
	}
}

func (t *Tables) parseCompetitors(csvText string) {
	for _, row := range readRows(csvText) {
		if row["ID"] == "" {
			continue
		}
		t.Competitors = append(t.Competitors, models.Competitor{
			ID:   row["ID"],
			Name: row["Name"],
		})
	}
}

func (t *Tables) parseRounds(csvText string) {
	for _, row := range readRows(csvText) {
		if row["ID"] == "" {
			continue
		}
		t.Rounds = append(t.Rounds, models.Round{
			ID:          row["ID"],
			CreatedAt:   row["Created"],
			Name:        row["Name"],
			Description: row["Description"],
			PlaylistURL: row["Playlist URL"],
		})
	}
}

func (t *Tables) parseSubmissions(csvText string) {
	for _, row := range readRows(csvText) {
		if row["Spotify URI"] == "" {
			continue
		}
		t.Submissions = append(t.Submissions, models.SubmissionRecord{
			TrackURI:        row["Spotify URI"],
			Title:           row["Title"],
			Album:           row["Album"],
			Artists:         row["Artist(s)"],
			SubmitterID:     row["Submitter ID"],
			CreatedAt:       row["Created"],
			Comment:         row["Comment"],
			RoundID:         row["Round ID"],
			VisibleToVoters: parseBool(row["Visible To Voters"]),
		})
	}
}

func (t *Tables) parseVotes(csvText string) {
	for _, row := range readRows(csvText) {
		if row["Spotify URI"] == "" {
			continue
		}
		t.Votes = append(t.Votes, models.VoteRecord{
			TrackURI:       row["Spotify URI"],
			VoterID:        row["Voter ID"],
			CreatedAt:      row["Created"],
			PointsAssigned: parsePoints(row["Points Assigned"]),
			Comment:        row["Comment"],
			RoundID:        row["Round ID"],
		})
	}
}

// readRows reads a CSV table into header-keyed rows. The first row names the
// fields; blank lines are skipped and malformed rows are dropped instead of
// failing the whole table, since this is community-uploaded data of varying
// quality.
func readRows(csvText string) []map[string]string {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if isBlank(record) {
			continue
		}

		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return rows
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// parsePoints coerces non-numeric values to 0 so one corrupt vote cannot
// abort aggregation.
func parsePoints(value string) int {
	points, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return points
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1":
		return true
	}
	return false
}
