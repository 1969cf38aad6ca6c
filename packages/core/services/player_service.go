package services

import (
	"context"
	"strings"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

type PlayerService struct {
	players repository.Store[models.Player]
	teams   repository.Store[models.Team]
}

func NewPlayerService(players repository.Store[models.Player], teams repository.Store[models.Team]) *PlayerService {
	return &PlayerService{players: players, teams: teams}
}

func (s *PlayerService) GetPlayers(ctx context.Context) ([]models.Player, error) {
	return s.players.List(ctx)
}

// GetPlayersByTeam returns the squad of teamID, or a single player of that
// squad when playerID is set.
func (s *PlayerService) GetPlayersByTeam(ctx context.Context, teamID, playerID uint) ([]models.Player, error) {
	if teamID == 0 {
		return nil, badRequest("teamId is required")
	}
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, storeErr(err, "team")
	}
	all, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Player, 0)
	for _, p := range all {
		if p.TeamID != teamID {
			continue
		}
		if playerID != 0 && p.ID != playerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uint) (*models.Player, error) {
	p, err := s.players.GetByID(ctx, id)
	return p, storeErr(err, "player")
}

func (s *PlayerService) CreatePlayer(ctx context.Context, req models.CreatePlayerRequest) (*models.Player, error) {
	if _, err := s.teams.GetByID(ctx, req.TeamID); err != nil {
		return nil, mustExist(err, "team", req.TeamID)
	}
	player := &models.Player{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		PlayerNumber:  req.PlayerNumber,
		Position:      req.Position,
		Nationality:   req.Nationality,
		PreferredFoot: req.PreferredFoot,
		SocialHandle:  req.SocialHandle,
		Photo:         req.Photo,
		TeamID:        req.TeamID,
	}
	if err := s.players.Create(ctx, player); err != nil {
		return nil, storeErr(err, "player "+player.FirstName+" "+player.LastName+" in this team")
	}
	return s.GetPlayer(ctx, player.ID)
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id uint, req models.UpdatePlayerRequest) (*models.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "player")
	}
	if req.TeamID != nil && *req.TeamID != 0 && *req.TeamID != player.TeamID {
		if _, err := s.teams.GetByID(ctx, *req.TeamID); err != nil {
			return nil, mustExist(err, "team", *req.TeamID)
		}
		player.TeamID = *req.TeamID
		player.Team = nil
	}
	setString(&player.FirstName, req.FirstName)
	setString(&player.LastName, req.LastName)
	setString(&player.Position, req.Position)
	setString(&player.Nationality, req.Nationality)
	setString(&player.PreferredFoot, req.PreferredFoot)
	setString(&player.SocialHandle, req.SocialHandle)
	setString(&player.Photo, req.Photo)
	if req.PlayerNumber != nil && *req.PlayerNumber != 0 {
		player.PlayerNumber = *req.PlayerNumber
	}
	if err := s.players.Save(ctx, player); err != nil {
		return nil, storeErr(err, "player "+player.FirstName+" "+player.LastName+" in this team")
	}
	return s.GetPlayer(ctx, id)
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id uint) error {
	return storeErr(s.players.Delete(ctx, id), "player")
}
