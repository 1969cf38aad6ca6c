package services

import (
	"context"
	"testing"
	"time"

	"epl-api/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatch(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	a, b := l.team(t, "Alpha"), l.team(t, "Bravo")

	got, err := l.svc.CreateMatch(ctx, models.CreateMatchRequest{
		HomeTeamID: a.ID, AwayTeamID: b.ID, MatchDate: "2025-08-23", MatchTime: "15:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, got.Status)
	assert.Equal(t, "Saturday, 23-08-2025", got.MatchDate)
	assert.Equal(t, "Alpha", got.HomeTeamName)
	assert.Equal(t, "Alpha Park", got.KickoffStadium)

	_, err = l.svc.CreateMatch(ctx, models.CreateMatchRequest{
		HomeTeamID: a.ID, AwayTeamID: b.ID, MatchDate: "2025-08-23", MatchTime: "17:30",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Reverse fixture on the same day is a different match.
	_, err = l.svc.CreateMatch(ctx, models.CreateMatchRequest{
		HomeTeamID: b.ID, AwayTeamID: a.ID, MatchDate: "2025-08-23", MatchTime: "17:30",
		IsHomeStadium: ptr(false),
	})
	require.NoError(t, err)
}

func TestCreateMatchResolvesInitialStatus(t *testing.T) {
	l := newLeague(t)
	a, b := l.team(t, "Alpha"), l.team(t, "Bravo")

	got, err := l.svc.CreateMatch(context.Background(), models.CreateMatchRequest{
		HomeTeamID: a.ID, AwayTeamID: b.ID, MatchDate: "2025-08-10", MatchTime: "15:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, got.Status)
	assert.True(t, got.IsFinished)
}

func TestCreateMatchRejects(t *testing.T) {
	l := newLeague(t)
	a, b := l.team(t, "Alpha"), l.team(t, "Bravo")

	tests := []struct {
		name string
		req  models.CreateMatchRequest
	}{
		{"same team", models.CreateMatchRequest{HomeTeamID: a.ID, AwayTeamID: a.ID, MatchDate: "2025-08-23", MatchTime: "15:00"}},
		{"unknown team", models.CreateMatchRequest{HomeTeamID: a.ID, AwayTeamID: 99, MatchDate: "2025-08-23", MatchTime: "15:00"}},
		{"bad date", models.CreateMatchRequest{HomeTeamID: a.ID, AwayTeamID: b.ID, MatchDate: "23/08/2025", MatchTime: "15:00"}},
		{"bad time", models.CreateMatchRequest{HomeTeamID: a.ID, AwayTeamID: b.ID, MatchDate: "2025-08-23", MatchTime: "3pm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.svc.CreateMatch(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
	assert.Zero(t, l.matches.Len())
}

func TestUpdateUpcomingMatch(t *testing.T) {
	l := newLeague(t)
	a, b, c := l.team(t, "Alpha"), l.team(t, "Bravo"), l.team(t, "Charlie")
	m := l.match(t, a.ID, b.ID, 7*24*time.Hour, models.StatusUpcoming, 0, 0)

	got, err := l.svc.UpdateMatch(context.Background(), m.ID, models.UpdateMatchRequest{
		AwayTeamID: ptr(c.ID),
		MatchTime:  ptr("19:45"),
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.AwayTeamID)
	assert.Equal(t, "19:45", got.MatchTime)
	assert.Equal(t, 2, got.Version)

	_, err = l.svc.UpdateMatch(context.Background(), m.ID, models.UpdateMatchRequest{AwayTeamID: ptr(a.ID)})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestUpdateKickedOffMatchOnlyStatusAndScores(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	a, b := l.team(t, "Alpha"), l.team(t, "Bravo")
	// Stored as upcoming: the refresh before the edit must move it to live.
	m := l.match(t, a.ID, b.ID, -20*time.Minute, models.StatusUpcoming, 0, 0)

	_, err := l.svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{MatchDate: ptr("2025-09-01")})
	assert.ErrorIs(t, err, ErrBadRequest)

	got, err := l.svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{
		HomeTeamScore: ptr(1),
		AwayTeamScore: ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusLive, got.Status)
	assert.Equal(t, 1, got.HomeTeamScore)

	got, err = l.svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{Status: ptr(models.StatusFinished)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, got.Status)
	assert.True(t, got.IsFinished)

	_, err = l.svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{HomeTeamScore: ptr(-1)})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestUpdateMatchNotFound(t *testing.T) {
	l := newLeague(t)
	_, err := l.svc.UpdateMatch(context.Background(), 42, models.UpdateMatchRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMatchPolicy(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	a, b := l.team(t, "Alpha"), l.team(t, "Bravo")
	m := l.match(t, a.ID, b.ID, -10*time.Minute, models.StatusUpcoming, 0, 0)
	upcoming := l.match(t, b.ID, a.ID, 48*time.Hour, models.StatusUpcoming, 0, 0)

	assert.ErrorIs(t, l.svc.DeleteMatch(ctx, m.ID), ErrForbidden)
	assert.Equal(t, models.StatusLive, l.stored(t, m.ID).Status)

	l.clock.Advance(2 * time.Hour)
	assert.ErrorIs(t, l.svc.DeleteMatch(ctx, m.ID), ErrForbidden)
	assert.Equal(t, models.StatusFinished, l.stored(t, m.ID).Status)
	assert.True(t, l.stored(t, m.ID).IsFinished)

	require.NoError(t, l.svc.DeleteMatch(ctx, upcoming.ID))
	_, err := l.svc.GetMatch(ctx, upcoming.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, l.svc.DeleteMatch(ctx, upcoming.ID), ErrNotFound)
}

func TestMatchViews(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	a, b, c := l.team(t, "Alpha"), l.team(t, "Bravo"), l.team(t, "Charlie")
	old := l.match(t, a.ID, b.ID, -14*24*time.Hour, models.StatusUpcoming, 1, 0)
	recent := l.match(t, b.ID, c.ID, -7*24*time.Hour, models.StatusUpcoming, 0, 3)
	live := l.match(t, c.ID, a.ID, -time.Hour, models.StatusUpcoming, 0, 0)
	soon := l.match(t, a.ID, c.ID, 24*time.Hour, models.StatusUpcoming, 0, 0)
	later := l.match(t, b.ID, a.ID, 3*24*time.Hour, models.StatusUpcoming, 0, 0)

	ids := func(ds []models.MatchDetail) []uint {
		out := make([]uint, len(ds))
		for i, d := range ds {
			out[i] = d.MatchID
		}
		return out
	}

	all, err := l.svc.GetMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{live.ID, soon.ID, later.ID, old.ID, recent.ID}, ids(all))

	ongoing, err := l.svc.GetOngoingMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{live.ID}, ids(ongoing))

	finished, err := l.svc.GetFinishedMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{recent.ID, old.ID}, ids(finished))

	upcoming, err := l.svc.GetUpcomingMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{soon.ID, later.ID}, ids(upcoming))
}

func TestGetTableSweepsFirst(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	a, b := l.team(t, "Alpha"), l.team(t, "Bravo")
	m := l.match(t, a.ID, b.ID, time.Hour, models.StatusUpcoming, 0, 0)

	table, err := l.svc.GetTable(ctx)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Zero(t, table[0].Played)
	require.NotNil(t, table[0].NextMatchID)
	assert.Equal(t, m.ID, *table[0].NextMatchID)

	l.clock.Advance(2 * time.Hour)
	_, err = l.svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{HomeTeamScore: ptr(2)})
	require.NoError(t, err)

	table, err = l.svc.GetTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", table[0].TeamName)
	assert.Equal(t, 1, table[0].Played)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, models.NoOpponent, table[0].NextOpponent)
}
