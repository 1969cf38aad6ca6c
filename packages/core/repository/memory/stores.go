package memory

import (
	"context"
	"fmt"
	"strings"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"
)

func NewTeamStore() *Store[models.Team, *models.Team] {
	return NewStore[models.Team](func(t *models.Team) []string {
		return []string{strings.ToLower(t.Name)}
	})
}

func NewPlayerStore() *Store[models.Player, *models.Player] {
	return NewStore[models.Player](func(p *models.Player) []string {
		return []string{fmt.Sprintf("%d/%s", p.TeamID, p.FullName())}
	})
}

func eventKey(matchID, playerID, teamID uint, minute float64) string {
	return fmt.Sprintf("%d/%d/%d/%.2f", matchID, playerID, teamID, minute)
}

func NewGoalStore() *Store[models.Goal, *models.Goal] {
	return NewStore[models.Goal](func(g *models.Goal) []string {
		return []string{eventKey(g.MatchID, g.PlayerID, g.TeamID, g.Minute)}
	})
}

func NewAssistStore() *Store[models.Assist, *models.Assist] {
	return NewStore[models.Assist](func(a *models.Assist) []string {
		return []string{eventKey(a.MatchID, a.PlayerID, a.TeamID, a.Minute)}
	})
}

func NewCardStore() *Store[models.Card, *models.Card] {
	return NewStore[models.Card](func(c *models.Card) []string {
		return []string{eventKey(c.MatchID, c.PlayerID, c.TeamID, c.Minute) + "/" + string(c.Type)}
	})
}

func NewSeasonStore() *Store[models.Season, *models.Season] {
	return NewStore[models.Season](func(s *models.Season) []string {
		return []string{s.Name}
	})
}

func NewMatchSeasonStore() *Store[models.MatchSeason, *models.MatchSeason] {
	return NewStore[models.MatchSeason](func(ms *models.MatchSeason) []string {
		return []string{fmt.Sprintf("%d/%d", ms.MatchID, ms.SeasonID)}
	})
}

func NewNewsStore() *Store[models.News, *models.News] {
	return NewStore[models.News](func(n *models.News) []string {
		return []string{n.Title}
	})
}

// MatchStore mirrors repository.MatchRepository.
type MatchStore struct {
	*Store[models.Match, *models.Match]
}

func NewMatchStore() *MatchStore {
	return &MatchStore{Store: NewStore[models.Match](func(m *models.Match) []string {
		return []string{fmt.Sprintf("%d/%d/%s", m.HomeTeamID, m.AwayTeamID, m.MatchDate.Format(models.DateLayout))}
	})}
}

func (s *MatchStore) ListUnfinished(ctx context.Context) ([]models.Match, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, m := range all {
		if m.Status != models.StatusFinished {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MatchStore) SaveVersioned(_ context.Context, m *models.Match) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[m.ID]
	if !ok || cur.Version != m.Version {
		return false, nil
	}
	if s.conflicts(m, m.ID) {
		return false, repository.ErrDuplicate
	}
	m.Version++
	s.rows[m.ID] = *m
	return true, nil
}
