package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

type SeasonService struct {
	seasons repository.Store[models.Season]
}

func NewSeasonService(seasons repository.Store[models.Season]) *SeasonService {
	return &SeasonService{seasons: seasons}
}

// buildSeason parses the dates and enforces that a season ends the year after it starts.
func buildSeason(req models.SeasonRequest, into *models.Season) error {
	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return badRequest("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		return badRequest("end_date must be YYYY-MM-DD")
	}
	if end.Year() != start.Year()+1 {
		return badRequest("a season must end the year after it starts (%d/%d)", start.Year(), start.Year()+1)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest("season name is required")
	}
	into.Name, into.StartDate, into.EndDate = name, start, end
	return nil
}

func (s *SeasonService) GetSeasons(ctx context.Context, query string) ([]models.Season, error) {
	all, err := s.seasons.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}
	out := make([]models.Season, 0, len(all))
	for _, season := range all {
		if containsFold(season.Name, query) ||
			strconv.Itoa(season.StartDate.Year()) == query ||
			strconv.Itoa(season.EndDate.Year()) == query {
			out = append(out, season)
		}
	}
	return out, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, id uint) (*models.Season, error) {
	season, err := s.seasons.GetByID(ctx, id)
	return season, storeErr(err, "season")
}

func (s *SeasonService) CreateSeason(ctx context.Context, req models.SeasonRequest) (*models.Season, error) {
	season := &models.Season{}
	if err := buildSeason(req, season); err != nil {
		return nil, err
	}
	if err := s.seasons.Create(ctx, season); err != nil {
		return nil, storeErr(err, "season "+season.Name)
	}
	return season, nil
}

func (s *SeasonService) UpdateSeason(ctx context.Context, id uint, req models.SeasonRequest) (*models.Season, error) {
	season, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "season")
	}
	if err := buildSeason(req, season); err != nil {
		return nil, err
	}
	if err := s.seasons.Save(ctx, season); err != nil {
		return nil, storeErr(err, "season "+season.Name)
	}
	return season, nil
}

func (s *SeasonService) DeleteSeason(ctx context.Context, id uint) error {
	return storeErr(s.seasons.Delete(ctx, id), "season")
}
