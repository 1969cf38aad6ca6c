package core

import (
	"context"
	"time"

	"epl-api/config"
	"epl-api/packages/core/cron"
	"epl-api/packages/core/handlers"
	"epl-api/packages/core/repository"
	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Guard supplies the authentication middleware the routes are protected with.
type Guard struct {
	Authenticated gin.HandlerFunc
	Admin         gin.HandlerFunc
}

type Module struct {
	MatchHandler  *handlers.MatchHandler
	TeamHandler   *handlers.TeamHandler
	PlayerHandler *handlers.PlayerHandler
	GoalHandler   *handlers.EventHandler
	AssistHandler *handlers.EventHandler
	CardHandler   *handlers.EventHandler
	SeasonHandler *handlers.SeasonHandler
	NewsHandler   *handlers.NewsHandler
	Lifecycle     *services.LifecycleResolver
	guard         Guard
}

func NewModule(db *gorm.DB, league config.LeagueConfig, clock clockwork.Clock, guard Guard) *Module {
	teams := repository.NewTeamRepository(db)
	players := repository.NewPlayerRepository(db)
	matches := repository.NewMatchRepository(db)
	seasons := repository.NewSeasonRepository(db)

	loc, err := league.Location()
	if err != nil {
		log.Warn().Err(err).Msg("invalid league timezone, falling back to UTC")
		loc = time.UTC
	}
	lifecycle := services.NewLifecycleResolver(matches, clock, league.MatchDuration, loc)
	matchService := services.NewMatchService(matches, teams, lifecycle, services.StandingsOptions{
		CountUpcoming: league.CountUpcomingInTable,
	})

	return &Module{
		MatchHandler:  handlers.NewMatchHandler(matchService),
		TeamHandler:   handlers.NewTeamHandler(services.NewTeamService(teams)),
		PlayerHandler: handlers.NewPlayerHandler(services.NewPlayerService(players, teams)),
		GoalHandler:   handlers.NewGoalHandler(services.NewGoalService(repository.NewGoalRepository(db), matches, players)),
		AssistHandler: handlers.NewAssistHandler(services.NewAssistService(repository.NewAssistRepository(db), matches, players)),
		CardHandler:   handlers.NewCardHandler(services.NewCardService(repository.NewCardRepository(db), matches, players)),
		SeasonHandler: handlers.NewSeasonHandler(
			services.NewSeasonService(seasons),
			services.NewMatchSeasonService(repository.NewMatchSeasonRepository(db), matches, seasons),
		),
		NewsHandler: handlers.NewNewsHandler(services.NewNewsService(repository.NewNewsRepository(db), clock)),
		Lifecycle:   lifecycle,
		guard:       guard,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth, admin := m.guard.Authenticated, m.guard.Admin

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/table", m.MatchHandler.GetTable)
		matches.GET("/ongoing", m.MatchHandler.GetOngoingMatches)
		matches.GET("/finished", m.MatchHandler.GetFinishedMatches)
		matches.GET("/upcoming", m.MatchHandler.GetUpcomingMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("", auth, admin, m.MatchHandler.CreateMatch)
		matches.PUT("/:id", auth, admin, m.MatchHandler.UpdateMatch)
		matches.DELETE("/:id", auth, admin, m.MatchHandler.DeleteMatch)
	}

	teams := r.Group("/teams")
	{
		teams.GET("", m.TeamHandler.GetTeams)
		teams.GET("/:id", m.TeamHandler.GetTeam)
		teams.POST("", auth, admin, m.TeamHandler.CreateTeam)
		teams.PUT("/:id", auth, admin, m.TeamHandler.UpdateTeam)
		teams.DELETE("/:id", auth, admin, m.TeamHandler.DeleteTeam)
	}

	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetPlayers)
		players.GET("/by-team", m.PlayerHandler.GetPlayersByTeam)
		players.GET("/:id", auth, m.PlayerHandler.GetPlayer)
		players.POST("", auth, admin, m.PlayerHandler.CreatePlayer)
		players.PUT("/:id", auth, admin, m.PlayerHandler.UpdatePlayer)
		players.DELETE("/:id", auth, admin, m.PlayerHandler.DeletePlayer)
	}

	for path, h := range map[string]*handlers.EventHandler{
		"/goals":   m.GoalHandler,
		"/assists": m.AssistHandler,
		"/cards":   m.CardHandler,
	} {
		g := r.Group(path)
		g.GET("", h.List)
		g.GET("/:id", auth, h.Get)
		g.POST("", auth, admin, h.Create)
		g.PUT("/:id", auth, admin, h.Update)
		g.DELETE("/:id", auth, admin, h.Delete)
	}

	seasons := r.Group("/seasons")
	{
		seasons.GET("", m.SeasonHandler.GetSeasons)
		seasons.GET("/:id", auth, m.SeasonHandler.GetSeason)
		seasons.POST("", auth, admin, m.SeasonHandler.CreateSeason)
		seasons.PUT("/:id", auth, admin, m.SeasonHandler.UpdateSeason)
		seasons.DELETE("/:id", auth, admin, m.SeasonHandler.DeleteSeason)
	}

	links := r.Group("/match-seasons")
	{
		links.GET("", m.SeasonHandler.GetLinks)
		links.GET("/:id", auth, m.SeasonHandler.GetLink)
		links.POST("", auth, admin, m.SeasonHandler.CreateLink)
		links.PUT("/:id", auth, admin, m.SeasonHandler.UpdateLink)
		links.DELETE("/:id", auth, admin, m.SeasonHandler.DeleteLink)
	}

	news := r.Group("/news")
	{
		news.GET("", m.NewsHandler.GetNews)
		news.GET("/search", m.NewsHandler.SearchNews)
		news.GET("/:id", auth, m.NewsHandler.GetNewsItem)
		news.POST("", auth, admin, m.NewsHandler.CreateNews)
		news.PUT("/:id", auth, admin, m.NewsHandler.UpdateNews)
		news.DELETE("/:id", auth, admin, m.NewsHandler.DeleteNews)
	}
}

// RegisterJobs schedules the periodic match status sweep.
func (m *Module) RegisterJobs(s *cron.Scheduler, league config.LeagueConfig) error {
	return s.Register("match-status-sweep", league.SweepCron, m.SweepNow)
}

func (m *Module) SweepNow() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := m.Lifecycle.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("match status sweep failed")
		return
	}
	log.Debug().Int("transitions", n).Msg("match status sweep done")
}
