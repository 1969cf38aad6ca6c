package services

import (
	"context"
	"testing"
	"time"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository/memory"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// Saturday 16 August 2025, 14:00 UTC.
var testNow = time.Date(2025, time.August, 16, 14, 0, 0, 0, time.UTC)

type league struct {
	teams     *memory.Store[models.Team, *models.Team]
	players   *memory.Store[models.Player, *models.Player]
	matches   *memory.MatchStore
	clock     *clockwork.FakeClock
	lifecycle *LifecycleResolver
	svc       *MatchService
}

func newLeague(t *testing.T) *league {
	t.Helper()
	l := &league{
		teams:   memory.NewTeamStore(),
		players: memory.NewPlayerStore(),
		matches: memory.NewMatchStore(),
		clock:   clockwork.NewFakeClockAt(testNow),
	}
	l.matches.Hydrate = func(m *models.Match) {
		m.HomeTeam, _ = l.teams.GetByID(context.Background(), m.HomeTeamID)
		m.AwayTeam, _ = l.teams.GetByID(context.Background(), m.AwayTeamID)
	}
	l.players.Hydrate = func(p *models.Player) {
		p.Team, _ = l.teams.GetByID(context.Background(), p.TeamID)
	}
	l.lifecycle = NewLifecycleResolver(l.matches, l.clock, 90*time.Minute, time.UTC)
	l.svc = NewMatchService(l.matches, l.teams, l.lifecycle, StandingsOptions{})
	return l
}

func (l *league) team(t *testing.T, name string) models.Team {
	t.Helper()
	team := models.Team{Name: name, City: name + " City", HomeStadium: name + " Park"}
	require.NoError(t, l.teams.Create(context.Background(), &team))
	return team
}

func (l *league) player(t *testing.T, first, last string, teamID uint) models.Player {
	t.Helper()
	p := models.Player{FirstName: first, LastName: last, Position: "Forward", TeamID: teamID}
	require.NoError(t, l.players.Create(context.Background(), &p))
	return p
}

// match stores a fixture kicking off at the given offset from testNow,
// bypassing the service so the status is whatever the caller sets.
func (l *league) match(t *testing.T, home, away uint, offset time.Duration, status models.MatchStatus, hs, as int) models.Match {
	t.Helper()
	kickoff := testNow.Add(offset)
	m := models.Match{
		HomeTeamID:    home,
		AwayTeamID:    away,
		MatchDate:     time.Date(kickoff.Year(), kickoff.Month(), kickoff.Day(), 0, 0, 0, 0, time.UTC),
		MatchTime:     kickoff.Format(models.TimeLayout),
		HomeTeamScore: hs,
		AwayTeamScore: as,
		Status:        status,
		IsFinished:    status == models.StatusFinished,
		IsHomeStadium: true,
		Version:       1,
	}
	require.NoError(t, l.matches.Create(context.Background(), &m))
	return m
}

func (l *league) stored(t *testing.T, id uint) *models.Match {
	t.Helper()
	m, err := l.matches.GetByID(context.Background(), id)
	require.NoError(t, err)
	return m
}

func ptr[T any](v T) *T {
	return &v
}
