package services

import (
	"context"
	"strconv"
	"strings"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

type TeamService struct {
	teams repository.Store[models.Team]
}

func NewTeamService(teams repository.Store[models.Team]) *TeamService {
	return &TeamService{teams: teams}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func teamMatches(t *models.Team, q string) bool {
	return containsFold(t.Name, q) ||
		containsFold(strconv.Itoa(t.Founded), q) ||
		containsFold(t.City, q) ||
		containsFold(t.HomeStadium, q) ||
		containsFold(t.HeadCoach, q)
}

// GetTeams lists teams, optionally narrowed to one id and/or a free-text search.
func (s *TeamService) GetTeams(ctx context.Context, id uint, search string) ([]models.Team, error) {
	if id != 0 {
		t, err := s.teams.GetByID(ctx, id)
		if err != nil {
			return nil, storeErr(err, "team")
		}
		if search != "" && !teamMatches(t, search) {
			return []models.Team{}, nil
		}
		return []models.Team{*t}, nil
	}

	all, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return all, nil
	}
	out := make([]models.Team, 0, len(all))
	for i := range all {
		if teamMatches(&all[i], search) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (*models.Team, error) {
	t, err := s.teams.GetByID(ctx, id)
	return t, storeErr(err, "team")
}

func (s *TeamService) CreateTeam(ctx context.Context, req models.CreateTeamRequest) (*models.Team, error) {
	team := &models.Team{
		Name:        strings.TrimSpace(req.Name),
		Founded:     req.Founded,
		City:        req.City,
		HomeStadium: req.HomeStadium,
		HeadCoach:   req.HeadCoach,
		ClubCrest:   req.ClubCrest,
		ThemeColor:  req.ThemeColor,
		WebsiteURL:  req.WebsiteURL,
	}
	if team.Name == "" {
		return nil, badRequest("team name is required")
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, storeErr(err, "team "+team.Name)
	}
	return team, nil
}

func setString(dst *string, src *string) {
	if src != nil && strings.TrimSpace(*src) != "" {
		*dst = *src
	}
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint, req models.UpdateTeamRequest) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "team")
	}
	setString(&team.Name, req.Name)
	setString(&team.City, req.City)
	setString(&team.HomeStadium, req.HomeStadium)
	setString(&team.HeadCoach, req.HeadCoach)
	setString(&team.ClubCrest, req.ClubCrest)
	setString(&team.ThemeColor, req.ThemeColor)
	setString(&team.WebsiteURL, req.WebsiteURL)
	if req.Founded != nil && *req.Founded != 0 {
		team.Founded = *req.Founded
	}
	if err := s.teams.Save(ctx, team); err != nil {
		return nil, storeErr(err, "team "+team.Name)
	}
	return team, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint) error {
	return storeErr(s.teams.Delete(ctx, id), "team")
}
