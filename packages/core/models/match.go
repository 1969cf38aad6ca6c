package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusUpcoming MatchStatus = "upcoming"
	StatusLive     MatchStatus = "live"
	StatusFinished MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusFinished:
		return true
	}
	return false
}

// Layouts used for the separate date and time-of-day columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Match struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	HomeTeamID    uint           `gorm:"not null;index" json:"home_team_id"`
	AwayTeamID    uint           `gorm:"not null;index" json:"away_team_id"`
	MatchDate     time.Time      `gorm:"type:date;not null" json:"match_date"`
	MatchTime     string         `gorm:"size:5;not null" json:"match_time"`
	HomeTeamScore int            `gorm:"not null;default:0" json:"home_team_score"`
	AwayTeamScore int            `gorm:"not null;default:0" json:"away_team_score"`
	Status        MatchStatus    `gorm:"size:20;not null;default:upcoming" json:"status"`
	IsFinished    bool           `gorm:"not null;default:false" json:"is_finished"`
	IsHomeStadium bool           `gorm:"not null;default:true" json:"is_home_stadium"`
	Version       int            `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	HomeTeam *Team `gorm:"foreignKey:HomeTeamID;references:ID" json:"home_team,omitempty"`
	AwayTeam *Team `gorm:"foreignKey:AwayTeamID;references:ID" json:"away_team,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// Kickoff combines the calendar date and the time of day in loc.
func (m *Match) Kickoff(loc *time.Location) (time.Time, error) {
	tod, err := time.Parse(TimeLayout, m.MatchTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid match time %q: %w", m.MatchTime, err)
	}
	y, mo, d := m.MatchDate.Date()
	return time.Date(y, mo, d, tod.Hour(), tod.Minute(), 0, 0, loc), nil
}

// Before orders matches by date then time of day.
func (m *Match) Before(o *Match) bool {
	if !m.MatchDate.Equal(o.MatchDate) {
		return m.MatchDate.Before(o.MatchDate)
	}
	return m.MatchTime < o.MatchTime
}

type CreateMatchRequest struct {
	HomeTeamID    uint   `json:"home_team_id" binding:"required"`
	AwayTeamID    uint   `json:"away_team_id" binding:"required"`
	MatchDate     string `json:"match_date" binding:"required" example:"2025-08-16"`
	MatchTime     string `json:"match_time" binding:"required" example:"15:00"`
	IsHomeStadium *bool  `json:"is_home_stadium,omitempty"`
}

// UpdateMatchRequest carries only the fields the caller wants to change.
// Once a match has kicked off only Status and the scores may be set.
type UpdateMatchRequest struct {
	HomeTeamID    *uint        `json:"home_team_id,omitempty"`
	AwayTeamID    *uint        `json:"away_team_id,omitempty"`
	MatchDate     *string      `json:"match_date,omitempty"`
	MatchTime     *string      `json:"match_time,omitempty"`
	IsHomeStadium *bool        `json:"is_home_stadium,omitempty"`
	HomeTeamScore *int         `json:"home_team_score,omitempty" binding:"omitempty,min=0"`
	AwayTeamScore *int         `json:"away_team_score,omitempty" binding:"omitempty,min=0"`
	Status        *MatchStatus `json:"status,omitempty" binding:"omitempty,oneof=upcoming live finished"`
}

// TouchesFixture reports whether the request changes anything besides status and scores.
func (r *UpdateMatchRequest) TouchesFixture() bool {
	return r.HomeTeamID != nil || r.AwayTeamID != nil || r.MatchDate != nil ||
		r.MatchTime != nil || r.IsHomeStadium != nil
}

// MatchDetail is the read model returned by the match endpoints.
type MatchDetail struct {
	MatchID        uint        `json:"match_id"`
	HomeTeamID     uint        `json:"home_team_id"`
	AwayTeamID     uint        `json:"away_team_id"`
	MatchDate      string      `json:"match_date" example:"Saturday, 16-08-2025"`
	MatchTime      string      `json:"match_time" example:"15:00"`
	HomeTeamName   string      `json:"home_team_name"`
	AwayTeamName   string      `json:"away_team_name"`
	HomeTeamCrest  string      `json:"home_team_crest"`
	AwayTeamCrest  string      `json:"away_team_crest"`
	HomeTeamScore  int         `json:"home_team_score"`
	AwayTeamScore  int         `json:"away_team_score"`
	KickoffStadium string      `json:"kickoff_stadium"`
	Status         MatchStatus `json:"status"`
	IsFinished     bool        `json:"is_finished"`
	Version        int         `json:"version"`
}

// Detail flattens a match with its preloaded teams. The stadium is the home
// team's ground unless the match is played at a neutral venue.
func (m *Match) Detail() MatchDetail {
	d := MatchDetail{
		MatchID:       m.ID,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		MatchDate:     m.MatchDate.Format("Monday, 02-01-2006"),
		MatchTime:     m.MatchTime,
		HomeTeamScore: m.HomeTeamScore,
		AwayTeamScore: m.AwayTeamScore,
		Status:        m.Status,
		IsFinished:    m.IsFinished,
		Version:       m.Version,
	}
	if m.HomeTeam != nil {
		d.HomeTeamName = m.HomeTeam.Name
		d.HomeTeamCrest = m.HomeTeam.ClubCrest
		if m.IsHomeStadium {
			d.KickoffStadium = m.HomeTeam.HomeStadium
		}
	}
	if m.AwayTeam != nil {
		d.AwayTeamName = m.AwayTeam.Name
		d.AwayTeamCrest = m.AwayTeam.ClubCrest
	}
	if d.KickoffStadium == "" {
		d.KickoffStadium = "Neutral venue"
	}
	return d
}

// Label is the "Home vs Away" text used in event responses.
func (m *Match) Label() string {
	home, away := "?", "?"
	if m.HomeTeam != nil {
		home = m.HomeTeam.Name
	}
	if m.AwayTeam != nil {
		away = m.AwayTeam.Name
	}
	return home + " vs " + away
}
