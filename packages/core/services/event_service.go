package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

type matchEvent[T any] interface {
	*T
	models.Entity
	Apply(req models.EventRequest) error
	Detail() models.EventDetail
}

// EventService serves goals, assists and cards, which share one shape.
type EventService[T any, PT matchEvent[T]] struct {
	kind    string
	events  repository.Store[T]
	matches repository.Store[models.Match]
	players repository.Store[models.Player]
}

type (
	GoalService   = EventService[models.Goal, *models.Goal]
	AssistService = EventService[models.Assist, *models.Assist]
	CardService   = EventService[models.Card, *models.Card]
)

func NewGoalService(events repository.Store[models.Goal], matches repository.Store[models.Match], players repository.Store[models.Player]) *GoalService {
	return &GoalService{kind: "goal", events: events, matches: matches, players: players}
}

func NewAssistService(events repository.Store[models.Assist], matches repository.Store[models.Match], players repository.Store[models.Player]) *AssistService {
	return &AssistService{kind: "assist", events: events, matches: matches, players: players}
}

func NewCardService(events repository.Store[models.Card], matches repository.Store[models.Match], players repository.Store[models.Player]) *CardService {
	return &CardService{kind: "card", events: events, matches: matches, players: players}
}

func eventMatches(d *models.EventDetail, q string) bool {
	if d.Player != nil && (containsFold(d.Player.FirstName, q) || containsFold(d.Player.LastName, q) ||
		containsFold(d.Player.FirstName+" "+d.Player.LastName, q)) {
		return true
	}
	if d.Team != nil && containsFold(d.Team.Name, q) {
		return true
	}
	return containsFold(d.Match, q)
}

// List returns every event, filtered by player name, team name or either
// match team name when query is set.
func (s *EventService[T, PT]) List(ctx context.Context, query string) ([]models.EventDetail, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	out := make([]models.EventDetail, 0, len(all))
	for i := range all {
		d := PT(&all[i]).Detail()
		if query != "" && !eventMatches(&d, query) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *EventService[T, PT]) Get(ctx context.Context, id uint) (*models.EventDetail, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, s.kind)
	}
	d := PT(e).Detail()
	return &d, nil
}

// validate checks the referenced match and player exist and that the team
// plays in that match.
func (s *EventService[T, PT]) validate(ctx context.Context, req models.EventRequest) error {
	if req.Minute == nil || *req.Minute < 0 {
		return badRequest("minute must be zero or more")
	}
	if req.MatchID == 0 || req.PlayerID == 0 || req.TeamID == 0 {
		return badRequest("match_id, player_id and team_id must be positive")
	}
	m, err := s.matches.GetByID(ctx, req.MatchID)
	if err != nil {
		return mustExist(err, "match", req.MatchID)
	}
	if req.TeamID != m.HomeTeamID && req.TeamID != m.AwayTeamID {
		return badRequest("team %d does not play in match %d", req.TeamID, req.MatchID)
	}
	if _, err := s.players.GetByID(ctx, req.PlayerID); err != nil {
		return mustExist(err, "player", req.PlayerID)
	}
	return nil
}

func (s *EventService[T, PT]) conflict(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: this %s is already recorded for the player at that minute", ErrConflict, s.kind)
	}
	return storeErr(err, s.kind)
}

func (s *EventService[T, PT]) Create(ctx context.Context, req models.EventRequest) (*models.EventDetail, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}
	e := PT(new(T))
	if err := e.Apply(req); err != nil {
		return nil, badRequest("%v", err)
	}
	if err := s.events.Create(ctx, (*T)(e)); err != nil {
		return nil, s.conflict(err)
	}
	return s.Get(ctx, e.GetID())
}

func (s *EventService[T, PT]) Update(ctx context.Context, id uint, req models.EventRequest) (*models.EventDetail, error) {
	cur, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, s.kind)
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}
	e := PT(cur)
	if err := e.Apply(req); err != nil {
		return nil, badRequest("%v", err)
	}
	if err := s.events.Save(ctx, cur); err != nil {
		return nil, s.conflict(err)
	}
	return s.Get(ctx, id)
}

func (s *EventService[T, PT]) Delete(ctx context.Context, id uint) error {
	return storeErr(s.events.Delete(ctx, id), s.kind)
}
