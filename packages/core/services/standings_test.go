package services

import (
	"testing"
	"time"

	"epl-api/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.August, d, 0, 0, 0, 0, time.UTC)
}

func played(id, home, away uint, hs, as int) models.Match {
	return models.Match{
		ID: id, HomeTeamID: home, AwayTeamID: away,
		MatchDate: day(1), MatchTime: "15:00",
		HomeTeamScore: hs, AwayTeamScore: as,
		Status: models.StatusFinished, IsFinished: true,
	}
}

func rowFor(t *testing.T, rows []models.StandingRow, teamID uint) models.StandingRow {
	t.Helper()
	for _, r := range rows {
		if r.TeamID == teamID {
			return r
		}
	}
	require.Failf(t, "missing row", "team %d", teamID)
	return models.StandingRow{}
}

func TestComputeStandings(t *testing.T) {
	teams := []models.Team{
		{ID: 1, Name: "A", ClubCrest: "a.png"},
		{ID: 2, Name: "B", ClubCrest: "b.png"},
		{ID: 3, Name: "C", ClubCrest: "c.png"},
		{ID: 4, Name: "D"},
	}
	matches := []models.Match{
		played(1, 1, 2, 2, 1),
		played(2, 1, 3, 1, 1),
		{ID: 3, HomeTeamID: 3, AwayTeamID: 2, MatchDate: day(20), MatchTime: "17:30", Status: models.StatusUpcoming},
		{ID: 4, HomeTeamID: 2, AwayTeamID: 3, MatchDate: day(9), MatchTime: "12:30", Status: models.StatusUpcoming},
	}

	rows := ComputeStandings(teams, matches, StandingsOptions{})
	require.Len(t, rows, 4)

	a := rowFor(t, rows, 1)
	assert.Equal(t, models.StandingRow{
		Position: 1, TeamID: 1, TeamName: "A", ClubCrest: "a.png",
		Played: 2, Won: 1, Drawn: 1, Lost: 0,
		GoalsFor: 3, GoalsAgainst: 2, GoalDifference: 1, Points: 4,
		NextOpponent: models.NoOpponent,
	}, a)

	d := rowFor(t, rows, 4)
	assert.Zero(t, d.Played)
	assert.Zero(t, d.Points)
	assert.Equal(t, models.NoOpponent, d.NextOpponent)
	assert.Nil(t, d.NextMatchID)
	assert.Empty(t, d.NextMatchDate)

	b := rowFor(t, rows, 2)
	assert.Equal(t, 1, b.Lost)
	assert.Equal(t, -1, b.GoalDifference)
	require.NotNil(t, b.NextMatchID)
	assert.Equal(t, uint(4), *b.NextMatchID, "earliest upcoming fixture wins")
	assert.Equal(t, "C", b.NextOpponent)
	assert.Equal(t, "c.png", b.NextCrest)
	assert.Equal(t, "2025-08-09", b.NextMatchDate)
	assert.Equal(t, "12:30", b.NextMatchTime)

	order := make([]string, len(rows))
	for i, r := range rows {
		order[i] = r.TeamName
		assert.Equal(t, i+1, r.Position)
	}
	assert.Equal(t, []string{"A", "C", "D", "B"}, order)
}

func TestComputeStandingsCountsLiveNotUpcoming(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	matches := []models.Match{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, MatchDate: day(1), MatchTime: "15:00", HomeTeamScore: 1, Status: models.StatusLive},
		{ID: 2, HomeTeamID: 2, AwayTeamID: 1, MatchDate: day(9), MatchTime: "15:00", Status: models.StatusUpcoming},
	}

	rows := ComputeStandings(teams, matches, StandingsOptions{})
	assert.Equal(t, 1, rowFor(t, rows, 1).Played)
	assert.Equal(t, 3, rowFor(t, rows, 1).Points)

	rows = ComputeStandings(teams, matches, StandingsOptions{CountUpcoming: true})
	assert.Equal(t, 2, rowFor(t, rows, 1).Played)
	assert.Equal(t, 4, rowFor(t, rows, 1).Points)
	assert.Equal(t, 1, rowFor(t, rows, 2).Points)
}

func TestComputeStandingsTieBreaks(t *testing.T) {
	teams := []models.Team{
		{ID: 7, Name: "Zeta"}, {ID: 3, Name: "Eta"}, {ID: 5, Name: "Eta"},
		{ID: 9, Name: "Theta"}, {ID: 8, Name: "Beta"}, {ID: 2, Name: "Eta"},
	}
	matches := []models.Match{
		played(1, 7, 9, 3, 1),
		played(2, 3, 9, 2, 0),
	}

	rows := ComputeStandings(teams, matches, StandingsOptions{})
	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.TeamID
	}
	// Zeta scored more at equal points and difference. The teams without a
	// match are ordered by name, then id.
	assert.Equal(t, []uint{7, 3, 8, 2, 5, 9}, ids)
}

func TestComputeStandingsEmpty(t *testing.T) {
	assert.Empty(t, ComputeStandings(nil, nil, StandingsOptions{}))
}
