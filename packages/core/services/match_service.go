package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

type MatchService struct {
	matches   MatchStore
	teams     repository.Store[models.Team]
	lifecycle *LifecycleResolver
	standings StandingsOptions
}

func NewMatchService(matches MatchStore, teams repository.Store[models.Team], lifecycle *LifecycleResolver, standings StandingsOptions) *MatchService {
	return &MatchService{
		matches:   matches,
		teams:     teams,
		lifecycle: lifecycle,
		standings: standings,
	}
}

func (s *MatchService) sweep(ctx context.Context) error {
	if _, err := s.lifecycle.Sweep(ctx); err != nil {
		return fmt.Errorf("match status sweep: %w", err)
	}
	return nil
}

func statusRank(st models.MatchStatus) int {
	switch st {
	case models.StatusLive:
		return 0
	case models.StatusUpcoming:
		return 1
	}
	return 2
}

func details(matches []models.Match) []models.MatchDetail {
	out := make([]models.MatchDetail, 0, len(matches))
	for i := range matches {
		out = append(out, matches[i].Detail())
	}
	return out
}

// GetMatches lists every match: live first, then upcoming, then finished,
// each group in kickoff order.
func (s *MatchService) GetMatches(ctx context.Context) ([]models.MatchDetail, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}
	matches, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := statusRank(matches[i].Status), statusRank(matches[j].Status)
		if ri != rj {
			return ri < rj
		}
		return matches[i].Before(&matches[j])
	})
	return details(matches), nil
}

func (s *MatchService) byStatus(ctx context.Context, status models.MatchStatus, newestFirst bool) ([]models.Match, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}
	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Match, 0, len(all))
	for _, m := range all {
		if m.Status == status {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[j].Before(&out[i])
		}
		return out[i].Before(&out[j])
	})
	return out, nil
}

func (s *MatchService) GetOngoingMatches(ctx context.Context) ([]models.MatchDetail, error) {
	matches, err := s.byStatus(ctx, models.StatusLive, false)
	if err != nil {
		return nil, err
	}
	return details(matches), nil
}

func (s *MatchService) GetFinishedMatches(ctx context.Context) ([]models.MatchDetail, error) {
	matches, err := s.byStatus(ctx, models.StatusFinished, true)
	if err != nil {
		return nil, err
	}
	return details(matches), nil
}

// GetUpcomingMatches only returns fixtures whose kickoff is still ahead.
func (s *MatchService) GetUpcomingMatches(ctx context.Context) ([]models.MatchDetail, error) {
	matches, err := s.byStatus(ctx, models.StatusUpcoming, false)
	if err != nil {
		return nil, err
	}
	now := s.lifecycle.Now()
	out := matches[:0]
	for _, m := range matches {
		kickoff, err := m.Kickoff(s.lifecycle.Location())
		if err == nil && kickoff.After(now) {
			out = append(out, m)
		}
	}
	return details(out), nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uint) (*models.MatchDetail, error) {
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "match")
	}
	d := m.Detail()
	return &d, nil
}

// GetTable sweeps statuses and aggregates the league table.
func (s *MatchService) GetTable(ctx context.Context) ([]models.StandingRow, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStandings(teams, matches, s.standings), nil
}

func parseFixture(date, clock string) (time.Time, string, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return time.Time{}, "", badRequest("match_date must be YYYY-MM-DD")
	}
	t, err := time.Parse(models.TimeLayout, clock)
	if err != nil {
		return time.Time{}, "", badRequest("match_time must be HH:MM")
	}
	return d, t.Format(models.TimeLayout), nil
}

func (s *MatchService) checkTeams(ctx context.Context, homeID, awayID uint) error {
	if homeID == awayID {
		return badRequest("home and away team must be different")
	}
	for _, id := range []uint{homeID, awayID} {
		if _, err := s.teams.GetByID(ctx, id); err != nil {
			return mustExist(err, "team", id)
		}
	}
	return nil
}

func (s *MatchService) CreateMatch(ctx context.Context, req models.CreateMatchRequest) (*models.MatchDetail, error) {
	if err := s.checkTeams(ctx, req.HomeTeamID, req.AwayTeamID); err != nil {
		return nil, err
	}
	date, clock, err := parseFixture(req.MatchDate, req.MatchTime)
	if err != nil {
		return nil, err
	}

	match := models.Match{
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		MatchDate:     date,
		MatchTime:     clock,
		Status:        models.StatusUpcoming,
		IsHomeStadium: true,
		Version:       1,
	}
	if req.IsHomeStadium != nil {
		match.IsHomeStadium = *req.IsHomeStadium
	}
	if _, err := s.lifecycle.resolve(&match); err != nil {
		return nil, badRequest("%v", err)
	}

	if err := s.matches.Create(ctx, &match); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: these teams already meet on %s", ErrConflict, req.MatchDate)
		}
		return nil, storeErr(err, "match")
	}
	return s.GetMatch(ctx, match.ID)
}

// UpdateMatch applies the edit policy: an upcoming match may change anything,
// a live or finished one only its status and scores.
func (s *MatchService) UpdateMatch(ctx context.Context, id uint, req models.UpdateMatchRequest) (*models.MatchDetail, error) {
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "match")
	}
	if err := s.lifecycle.Refresh(ctx, m); err != nil {
		return nil, err
	}

	if m.Status != models.StatusUpcoming && req.TouchesFixture() {
		return nil, badRequest("match is %s: only status and scores can be changed", m.Status)
	}

	if req.TouchesFixture() {
		home, away := m.HomeTeamID, m.AwayTeamID
		if req.HomeTeamID != nil {
			home = *req.HomeTeamID
		}
		if req.AwayTeamID != nil {
			away = *req.AwayTeamID
		}
		if err := s.checkTeams(ctx, home, away); err != nil {
			return nil, err
		}
		date, clock := m.MatchDate.Format(models.DateLayout), m.MatchTime
		if req.MatchDate != nil {
			date = *req.MatchDate
		}
		if req.MatchTime != nil {
			clock = *req.MatchTime
		}
		d, t, err := parseFixture(date, clock)
		if err != nil {
			return nil, err
		}
		m.HomeTeamID, m.AwayTeamID, m.MatchDate, m.MatchTime = home, away, d, t
		if req.IsHomeStadium != nil {
			m.IsHomeStadium = *req.IsHomeStadium
		}
	}

	if req.HomeTeamScore != nil {
		if *req.HomeTeamScore < 0 {
			return nil, badRequest("scores cannot be negative")
		}
		m.HomeTeamScore = *req.HomeTeamScore
	}
	if req.AwayTeamScore != nil {
		if *req.AwayTeamScore < 0 {
			return nil, badRequest("scores cannot be negative")
		}
		m.AwayTeamScore = *req.AwayTeamScore
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, badRequest("unknown status %q", *req.Status)
		}
		m.Status = *req.Status
		m.IsFinished = m.Status == models.StatusFinished
	} else if req.TouchesFixture() {
		if _, err := s.lifecycle.resolve(m); err != nil {
			return nil, badRequest("%v", err)
		}
	}

	ok, err := s.matches.SaveVersioned(ctx, m)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: these teams already meet on %s", ErrConflict, m.MatchDate.Format(models.DateLayout))
		}
		return nil, storeErr(err, "match")
	}
	if !ok {
		return nil, fmt.Errorf("%w: match %d was modified concurrently, retry", ErrConflict, id)
	}
	return s.GetMatch(ctx, id)
}

// DeleteMatch only removes matches that have not kicked off.
func (s *MatchService) DeleteMatch(ctx context.Context, id uint) error {
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "match")
	}
	if err := s.lifecycle.Refresh(ctx, m); err != nil {
		return err
	}
	if m.Status != models.StatusUpcoming {
		return fmt.Errorf("%w: a %s match cannot be deleted", ErrForbidden, m.Status)
	}
	return storeErr(s.matches.Delete(ctx, id), "match")
}
