package models

import (
	"time"
)

type Season struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:20;uniqueIndex;not null" json:"name"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Season) TableName() string {
	return "seasons"
}

type SeasonRequest struct {
	Name      string `json:"name" binding:"required,max=20" example:"2024/2025"`
	StartDate string `json:"start_date" binding:"required" example:"2024-08-16"`
	EndDate   string `json:"end_date" binding:"required" example:"2025-05-25"`
}

// MatchSeason links a match to the season it belongs to.
type MatchSeason struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID   uint      `gorm:"not null;index" json:"match_id"`
	SeasonID  uint      `gorm:"not null;index" json:"season_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Match  *Match  `gorm:"foreignKey:MatchID;references:ID" json:"-"`
	Season *Season `gorm:"foreignKey:SeasonID;references:ID" json:"-"`
}

func (MatchSeason) TableName() string {
	return "match_seasons"
}

type MatchSeasonRequest struct {
	MatchID  uint `json:"match_id" binding:"required,gt=0"`
	SeasonID uint `json:"season_id" binding:"required,gt=0"`
}

type MatchSeasonDetail struct {
	ID         uint         `json:"id"`
	SeasonID   uint         `json:"season_id"`
	SeasonName string       `json:"season_name"`
	Match      *MatchDetail `json:"match"`
}

func (ms *MatchSeason) Detail() MatchSeasonDetail {
	d := MatchSeasonDetail{ID: ms.ID, SeasonID: ms.SeasonID}
	if ms.Season != nil {
		d.SeasonName = ms.Season.Name
	}
	if ms.Match != nil {
		md := ms.Match.Detail()
		d.Match = &md
	}
	return d
}
