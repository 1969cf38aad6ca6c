package services

import (
	"context"
	"testing"
	"time"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLeague struct {
	*league
	home, away, neutral models.Team
	scorer                models.Player
	match                 models.Match
}

func newEventLeague(t *testing.T) *eventLeague {
	l := newLeague(t)
	e := &eventLeague{league: l}
	e.home, e.away, e.neutral = l.team(t, "Arsenal"), l.team(t, "Chelsea"), l.team(t, "Everton")
	e.scorer = l.player(t, "Bukayo", "Saka", e.home.ID)
	e.match = l.match(t, e.home.ID, e.away.ID, -2*time.Hour, models.StatusFinished, 1, 0)
	return e
}

func (e *eventLeague) hydrate(match **models.Match, player **models.Player, team **models.Team, matchID, playerID, teamID uint) {
	ctx := context.Background()
	*match, _ = e.matches.GetByID(ctx, matchID)
	*player, _ = e.players.GetByID(ctx, playerID)
	*team, _ = e.teams.GetByID(ctx, teamID)
}

func (e *eventLeague) goals() *GoalService {
	store := memory.NewGoalStore()
	store.Hydrate = func(g *models.Goal) { e.hydrate(&g.Match, &g.Player, &g.Team, g.MatchID, g.PlayerID, g.TeamID) }
	return NewGoalService(store, e.matches, e.players)
}

func (e *eventLeague) cards() *CardService {
	store := memory.NewCardStore()
	store.Hydrate = func(c *models.Card) { e.hydrate(&c.Match, &c.Player, &c.Team, c.MatchID, c.PlayerID, c.TeamID) }
	return NewCardService(store, e.matches, e.players)
}

func (e *eventLeague) request(minute float64) models.EventRequest {
	return models.EventRequest{Minute: ptr(minute), MatchID: e.match.ID, PlayerID: e.scorer.ID, TeamID: e.home.ID}
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()
	e := newEventLeague(t)
	svc := e.goals()

	got, err := svc.Create(ctx, e.request(23.456))
	require.NoError(t, err)
	assert.Equal(t, 23.46, got.Minute)
	assert.Equal(t, "Arsenal vs Chelsea", got.Match)
	require.NotNil(t, got.Player)
	assert.Equal(t, "Saka", got.Player.LastName)
	require.NotNil(t, got.Team)
	assert.Equal(t, "Arsenal", got.Team.Name)

	_, err = svc.Create(ctx, e.request(23.4561))
	assert.ErrorIs(t, err, ErrConflict, "same minute after rounding")

	_, err = svc.Create(ctx, e.request(67))
	require.NoError(t, err)
}

func TestGoalValidation(t *testing.T) {
	e := newEventLeague(t)
	svc := e.goals()

	noMinute := e.request(0)
	noMinute.Minute = nil
	wrongTeam := e.request(10)
	wrongTeam.TeamID = e.neutral.ID
	missingPlayer := e.request(10)
	missingPlayer.PlayerID = 404
	missingMatch := e.request(10)
	missingMatch.MatchID = 404
	zeroID := e.request(10)
	zeroID.TeamID = 0

	tests := map[string]models.EventRequest{
		"negative minute":  e.request(-1),
		"missing minute":   noMinute,
		"team not playing": wrongTeam,
		"unknown player":   missingPlayer,
		"unknown match":    missingMatch,
		"zero id":          zeroID,
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
}

func TestUpdateAndDeleteGoal(t *testing.T) {
	ctx := context.Background()
	e := newEventLeague(t)
	svc := e.goals()

	first, err := svc.Create(ctx, e.request(10))
	require.NoError(t, err)
	second, err := svc.Create(ctx, e.request(20))
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, e.request(10))
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.Update(ctx, second.ID, e.request(88.5))
	require.NoError(t, err)
	assert.Equal(t, 88.5, got.Minute)

	require.NoError(t, svc.Delete(ctx, first.ID))
	_, err = svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), ErrNotFound)
}

func TestListGoalsByQuery(t *testing.T) {
	ctx := context.Background()
	e := newEventLeague(t)
	svc := e.goals()
	other := e.player(t, "Cole", "Palmer", e.away.ID)

	_, err := svc.Create(ctx, e.request(10))
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.EventRequest{Minute: ptr(30.0), MatchID: e.match.ID, PlayerID: other.ID, TeamID: e.away.ID})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	for query, want := range map[string]int{
		"saka":          1,
		"bukayo saka":   1,
		"chelsea":       2, // team name or match label
		"arsenal vs":    2,
		"nobody at all": 0,
	} {
		got, err := svc.List(ctx, query)
		require.NoError(t, err)
		assert.Len(t, got, want, query)
	}
}

func TestCardsNeedAType(t *testing.T) {
	ctx := context.Background()
	e := newEventLeague(t)
	svc := e.cards()

	_, err := svc.Create(ctx, e.request(40))
	assert.ErrorIs(t, err, ErrBadRequest)

	yellow := e.request(40)
	yellow.CardType = models.CardYellow
	got, err := svc.Create(ctx, yellow)
	require.NoError(t, err)
	assert.Equal(t, models.CardYellow, got.CardType)

	_, err = svc.Create(ctx, yellow)
	assert.ErrorIs(t, err, ErrConflict)

	red := yellow
	red.CardType = models.CardRed
	_, err = svc.Create(ctx, red)
	assert.NoError(t, err, "a red card at the same minute is a different event")
}
