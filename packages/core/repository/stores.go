package repository

import (
	"context"

	"epl-api/packages/core/models"

	"gorm.io/gorm"
)

func NewTeamRepository(db *gorm.DB) *Crud[models.Team] {
	return NewCrud[models.Team](db, "name")
}

func NewPlayerRepository(db *gorm.DB) *Crud[models.Player] {
	return NewCrud[models.Player](db, "team_id, last_name, first_name", "Team")
}

func NewGoalRepository(db *gorm.DB) *Crud[models.Goal] {
	return NewCrud[models.Goal](db, "match_id, minute", "Match.HomeTeam", "Match.AwayTeam", "Player", "Team")
}

func NewAssistRepository(db *gorm.DB) *Crud[models.Assist] {
	return NewCrud[models.Assist](db, "match_id, minute", "Match.HomeTeam", "Match.AwayTeam", "Player", "Team")
}

func NewCardRepository(db *gorm.DB) *Crud[models.Card] {
	return NewCrud[models.Card](db, "match_id, minute", "Match.HomeTeam", "Match.AwayTeam", "Player", "Team")
}

func NewSeasonRepository(db *gorm.DB) *Crud[models.Season] {
	return NewCrud[models.Season](db, "start_date DESC")
}

func NewMatchSeasonRepository(db *gorm.DB) *Crud[models.MatchSeason] {
	return NewCrud[models.MatchSeason](db, "season_id, match_id", "Season", "Match.HomeTeam", "Match.AwayTeam")
}

func NewNewsRepository(db *gorm.DB) *Crud[models.News] {
	return NewCrud[models.News](db, "published_date DESC", "Author")
}

// MatchRepository adds the versioned writes the lifecycle sweep relies on.
type MatchRepository struct {
	*Crud[models.Match]
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{Crud: NewCrud[models.Match](db, "match_date, match_time", "HomeTeam", "AwayTeam")}
}

func (r *MatchRepository) ListUnfinished(ctx context.Context) ([]models.Match, error) {
	var out []models.Match
	err := r.query(ctx).
		Where("status <> ?", models.StatusFinished).
		Order(r.order).
		Find(&out).Error
	return out, translate(err)
}

// SaveVersioned writes m only if the stored version still equals m.Version,
// bumping the version on success. It reports false when another writer won.
func (r *MatchRepository) SaveVersioned(ctx context.Context, m *models.Match) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Match{}).
		Where("id = ? AND version = ?", m.ID, m.Version).
		Updates(map[string]any{
			"home_team_id":    m.HomeTeamID,
			"away_team_id":    m.AwayTeamID,
			"match_date":      m.MatchDate,
			"match_time":      m.MatchTime,
			"home_team_score": m.HomeTeamScore,
			"away_team_score": m.AwayTeamScore,
			"status":          m.Status,
			"is_finished":     m.IsFinished,
			"is_home_stadium": m.IsHomeStadium,
			"version":         gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	m.Version++
	return true, nil
}
