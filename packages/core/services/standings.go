package services

import (
	"sort"

	"epl-api/packages/core/models"
)

// StandingsOptions controls which matches feed the counters. By default only
// live and finished matches count as played; upcoming fixtures still set the
// next match of each team.
type StandingsOptions struct {
	// CountUpcoming also counts matches that have not kicked off yet, scoring
	// each one with its stored score. This reproduces the legacy table, which
	// counted every match regardless of status. Set from
	// league.count_upcoming_in_table.
	CountUpcoming bool
}

func counted(m *models.Match, opts StandingsOptions) bool {
	if opts.CountUpcoming {
		return true
	}
	return m.IsFinished || m.Status == models.StatusLive || m.Status == models.StatusFinished
}

// ComputeStandings builds the league table. Every team gets a row even without
// matches. Ties on points, goal difference and goals for fall back to the team
// name, then the id.
func ComputeStandings(teams []models.Team, matches []models.Match, opts StandingsOptions) []models.StandingRow {
	byID := make(map[uint]*models.Team, len(teams))
	rows := make(map[uint]*models.StandingRow, len(teams))
	next := make(map[uint]*models.Match, len(teams))
	for i := range teams {
		t := &teams[i]
		byID[t.ID] = t
		rows[t.ID] = &models.StandingRow{
			TeamID:       t.ID,
			TeamName:     t.Name,
			ClubCrest:    t.ClubCrest,
			NextOpponent: models.NoOpponent,
		}
	}

	for i := range matches {
		m := &matches[i]
		home, away := rows[m.HomeTeamID], rows[m.AwayTeamID]

		if m.Status == models.StatusUpcoming && !m.IsFinished {
			for _, id := range []uint{m.HomeTeamID, m.AwayTeamID} {
				if cur, ok := next[id]; !ok || m.Before(cur) {
					next[id] = m
				}
			}
		}

		if !counted(m, opts) {
			continue
		}
		if home != nil {
			tally(home, m.HomeTeamScore, m.AwayTeamScore)
		}
		if away != nil {
			tally(away, m.AwayTeamScore, m.HomeTeamScore)
		}
	}

	out := make([]models.StandingRow, 0, len(rows))
	for id, row := range rows {
		row.Lost = row.Played - row.Won - row.Drawn
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		row.Points = 3*row.Won + row.Drawn
		if m, ok := next[id]; ok {
			oppID := m.AwayTeamID
			if oppID == id {
				oppID = m.HomeTeamID
			}
			matchID := m.ID
			row.NextMatchID = &matchID
			row.NextMatchDate = m.MatchDate.Format(models.DateLayout)
			row.NextMatchTime = m.MatchTime
			if opp, ok := byID[oppID]; ok {
				row.NextOpponent = opp.Name
				row.NextCrest = opp.ClubCrest
			}
		}
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

func tally(row *models.StandingRow, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Won++
	case scored == conceded:
		row.Drawn++
	}
}
