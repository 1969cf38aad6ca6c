package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

type MatchSeasonService struct {
	links   repository.Store[models.MatchSeason]
	matches repository.Store[models.Match]
	seasons repository.Store[models.Season]
}

func NewMatchSeasonService(links repository.Store[models.MatchSeason], matches repository.Store[models.Match], seasons repository.Store[models.Season]) *MatchSeasonService {
	return &MatchSeasonService{links: links, matches: matches, seasons: seasons}
}

func (s *MatchSeasonService) List(ctx context.Context, query string) ([]models.MatchSeasonDetail, error) {
	all, err := s.links.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	out := make([]models.MatchSeasonDetail, 0, len(all))
	for i := range all {
		d := all[i].Detail()
		if query != "" {
			hit := containsFold(d.SeasonName, query)
			if d.Match != nil {
				hit = hit || containsFold(d.Match.HomeTeamName, query) || containsFold(d.Match.AwayTeamName, query)
			}
			if !hit {
				continue
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *MatchSeasonService) Get(ctx context.Context, id uint) (*models.MatchSeasonDetail, error) {
	ms, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "match season")
	}
	d := ms.Detail()
	return &d, nil
}

func (s *MatchSeasonService) validate(ctx context.Context, req models.MatchSeasonRequest) error {
	if req.MatchID == 0 || req.SeasonID == 0 {
		return badRequest("match_id and season_id must be positive")
	}
	if _, err := s.matches.GetByID(ctx, req.MatchID); err != nil {
		return mustExist(err, "match", req.MatchID)
	}
	if _, err := s.seasons.GetByID(ctx, req.SeasonID); err != nil {
		return mustExist(err, "season", req.SeasonID)
	}
	return nil
}

func linkErr(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: match is already linked to this season", ErrConflict)
	}
	return storeErr(err, "match season")
}

func (s *MatchSeasonService) Create(ctx context.Context, req models.MatchSeasonRequest) (*models.MatchSeasonDetail, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}
	ms := &models.MatchSeason{MatchID: req.MatchID, SeasonID: req.SeasonID}
	if err := s.links.Create(ctx, ms); err != nil {
		return nil, linkErr(err)
	}
	return s.Get(ctx, ms.ID)
}

func (s *MatchSeasonService) Update(ctx context.Context, id uint, req models.MatchSeasonRequest) (*models.MatchSeasonDetail, error) {
	ms, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "match season")
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}
	ms.MatchID, ms.SeasonID = req.MatchID, req.SeasonID
	ms.Match, ms.Season = nil, nil
	if err := s.links.Save(ctx, ms); err != nil {
		return nil, linkErr(err)
	}
	return s.Get(ctx, id)
}

func (s *MatchSeasonService) Delete(ctx context.Context, id uint) error {
	return storeErr(s.links.Delete(ctx, id), "match season")
}
