package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authMiddleware "epl-api/packages/auth/middleware"
	"epl-api/packages/core/models"
	"epl-api/packages/core/repository/memory"
	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.August, 16, 14, 0, 0, 0, time.UTC)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Content    json.RawMessage `json:"content"`
}

type testAPI struct {
	router  *gin.Engine
	teams   *memory.Store[models.Team, *models.Team]
	players *memory.Store[models.Player, *models.Player]
	matches *memory.MatchStore
}

func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(authMiddleware.ContextUserID, id)
		c.Next()
	}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api := &testAPI{
		teams:   memory.NewTeamStore(),
		players: memory.NewPlayerStore(),
		matches: memory.NewMatchStore(),
	}
	ctx := context.Background()
	api.matches.Hydrate = func(m *models.Match) {
		m.HomeTeam, _ = api.teams.GetByID(ctx, m.HomeTeamID)
		m.AwayTeam, _ = api.teams.GetByID(ctx, m.AwayTeamID)
	}
	goals := memory.NewGoalStore()
	goals.Hydrate = func(g *models.Goal) {
		g.Match, _ = api.matches.GetByID(ctx, g.MatchID)
		g.Player, _ = api.players.GetByID(ctx, g.PlayerID)
		g.Team, _ = api.teams.GetByID(ctx, g.TeamID)
	}

	clock := clockwork.NewFakeClockAt(now)
	lifecycle := services.NewLifecycleResolver(api.matches, clock, 90*time.Minute, time.UTC)
	matchHandler := NewMatchHandler(services.NewMatchService(api.matches, api.teams, lifecycle, services.StandingsOptions{}))
	teamHandler := NewTeamHandler(services.NewTeamService(api.teams))
	goalHandler := NewGoalHandler(services.NewGoalService(goals, api.matches, api.players))
	cardHandler := NewCardHandler(services.NewCardService(memory.NewCardStore(), api.matches, api.players))
	newsHandler := NewNewsHandler(services.NewNewsService(memory.NewNewsStore(), clock))

	r := gin.New()
	r.GET("/matches", matchHandler.GetMatches)
	r.GET("/matches/table", matchHandler.GetTable)
	r.GET("/matches/:id", matchHandler.GetMatch)
	r.POST("/matches", matchHandler.CreateMatch)
	r.PUT("/matches/:id", matchHandler.UpdateMatch)
	r.DELETE("/matches/:id", matchHandler.DeleteMatch)
	r.POST("/teams", teamHandler.CreateTeam)
	r.GET("/teams", teamHandler.GetTeams)
	r.GET("/goals", goalHandler.List)
	r.POST("/goals", goalHandler.Create)
	r.GET("/cards", cardHandler.List)
	r.POST("/news", newsHandler.CreateNews)
	r.POST("/news/as-author", asUser(5), newsHandler.CreateNews)
	api.router = r
	return api
}

func (api *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.Equal(t, w.Code, env.StatusCode, "envelope mirrors the HTTP status")
	return w, env
}

func (api *testAPI) seed(t *testing.T) (models.Team, models.Team) {
	t.Helper()
	ctx := context.Background()
	home := models.Team{Name: "Arsenal", City: "London", HomeStadium: "Emirates Stadium"}
	away := models.Team{Name: "Chelsea", City: "London", HomeStadium: "Stamford Bridge"}
	require.NoError(t, api.teams.Create(ctx, &home))
	require.NoError(t, api.teams.Create(ctx, &away))
	return home, away
}

func TestCreateAndListMatches(t *testing.T) {
	api := newTestAPI(t)
	home, away := api.seed(t)

	w, env := api.do(t, http.MethodPost, "/matches", gin.H{
		"home_team_id": home.ID, "away_team_id": away.ID,
		"match_date": "2025-08-23", "match_time": "17:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var created models.MatchDetail
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Arsenal", created.HomeTeamName)
	assert.Equal(t, "Emirates Stadium", created.KickoffStadium)
	assert.Equal(t, models.StatusUpcoming, created.Status)

	w, env = api.do(t, http.MethodPost, "/matches", gin.H{
		"home_team_id": home.ID, "away_team_id": away.ID,
		"match_date": "2025-08-23", "match_time": "12:30",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, env.Message, "already meet")

	w, env = api.do(t, http.MethodGet, "/matches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Content)
	var list []models.MatchDetail
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	w, env = api.do(t, http.MethodGet, "/matches/table", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var table []models.StandingRow
	require.NoError(t, json.Unmarshal(env.Data, &table))
	require.Len(t, table, 2)
	assert.Equal(t, "Chelsea", table[0].NextOpponent)
}

func TestMatchErrors(t *testing.T) {
	api := newTestAPI(t)
	home, away := api.seed(t)
	live := models.Match{
		HomeTeamID: home.ID, AwayTeamID: away.ID,
		MatchDate: time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC), MatchTime: "13:30",
		Status: models.StatusUpcoming, Version: 1,
	}
	require.NoError(t, api.matches.Create(context.Background(), &live))

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing fields", http.MethodPost, "/matches", gin.H{"home_team_id": home.ID}, http.StatusBadRequest},
		{"same teams", http.MethodPost, "/matches", gin.H{"home_team_id": home.ID, "away_team_id": home.ID, "match_date": "2025-08-30", "match_time": "15:00"}, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/matches/abc", nil, http.StatusBadRequest},
		{"unknown match", http.MethodGet, "/matches/999", nil, http.StatusNotFound},
		{"edit fixture of live match", http.MethodPut, "/matches/1", gin.H{"match_time": "20:00"}, http.StatusBadRequest},
		{"unknown status", http.MethodPut, "/matches/1", gin.H{"status": "postponed"}, http.StatusBadRequest},
		{"delete live match", http.MethodDelete, "/matches/1", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, env.Message)
			assert.NotEmpty(t, env.Message)
		})
	}

	w, env := api.do(t, http.MethodPut, "/matches/1", gin.H{"home_team_score": 2, "away_team_score": 1})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var got models.MatchDetail
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, models.StatusLive, got.Status)
	assert.Equal(t, 2, got.HomeTeamScore)
}

func TestGoalsUseContentEnvelope(t *testing.T) {
	api := newTestAPI(t)
	home, away := api.seed(t)
	ctx := context.Background()
	m := models.Match{
		HomeTeamID: home.ID, AwayTeamID: away.ID,
		MatchDate: time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC), MatchTime: "15:00",
		Status: models.StatusFinished, IsFinished: true, Version: 1,
	}
	require.NoError(t, api.matches.Create(ctx, &m))
	p := models.Player{FirstName: "Bukayo", LastName: "Saka", Position: "Forward", TeamID: home.ID}
	require.NoError(t, api.players.Create(ctx, &p))

	body := gin.H{"minute": 12.5, "match_id": m.ID, "player_id": p.ID, "team_id": home.ID}
	w, env := api.do(t, http.MethodPost, "/goals", body)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	assert.Empty(t, env.Data)
	var goal models.EventDetail
	require.NoError(t, json.Unmarshal(env.Content, &goal))
	assert.Equal(t, 12.5, goal.Minute)
	assert.Equal(t, "Arsenal vs Chelsea", goal.Match)

	w, _ = api.do(t, http.MethodPost, "/goals", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = api.do(t, http.MethodPost, "/goals", gin.H{"match_id": m.ID, "player_id": p.ID, "team_id": home.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code, "minute is required")

	w, env = api.do(t, http.MethodGet, "/goals?query=saka", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var goals []models.EventDetail
	require.NoError(t, json.Unmarshal(env.Content, &goals))
	assert.Len(t, goals, 1)

	w, env = api.do(t, http.MethodGet, "/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data), "cards answer under data")
}

func TestCreateNewsNeedsCaller(t *testing.T) {
	api := newTestAPI(t)
	body := gin.H{
		"title": "Season opener", "sub_title": "Preview", "body": "All the fixtures.",
		"expire_date": now.Add(48 * time.Hour).Format(time.RFC3339),
	}

	w, _ := api.do(t, http.MethodPost, "/news", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := api.do(t, http.MethodPost, "/news/as-author", body)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var n models.News
	require.NoError(t, json.Unmarshal(env.Content, &n))
	assert.Equal(t, uint(5), n.UserID)
}

func TestTeamsSearch(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	w, env := api.do(t, http.MethodGet, "/teams?search=bridge", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var teams []models.Team
	require.NoError(t, json.Unmarshal(env.Data, &teams))
	require.Len(t, teams, 1)
	assert.Equal(t, "Chelsea", teams[0].Name)

	w, _ = api.do(t, http.MethodGet, "/teams?id=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, http.MethodPost, "/teams", gin.H{"name": "Arsenal", "city": "London", "home_stadium": "Highbury"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
