package models

import (
	"time"
)

type Team struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Founded     int       `json:"founded"`
	City        string    `gorm:"size:255" json:"city"`
	HomeStadium string    `gorm:"size:255" json:"home_stadium"`
	HeadCoach   string    `gorm:"size:255" json:"head_coach"`
	ClubCrest   string    `gorm:"size:500" json:"club_crest"`
	ThemeColor  string    `gorm:"size:20" json:"theme_color"`
	WebsiteURL  string    `gorm:"column:website_url;size:500" json:"website_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Founded     int    `json:"founded" binding:"omitempty,min=1800,max=2100"`
	City        string `json:"city" binding:"required"`
	HomeStadium string `json:"home_stadium" binding:"required"`
	HeadCoach   string `json:"head_coach"`
	ClubCrest   string `json:"club_crest"`
	ThemeColor  string `json:"theme_color" binding:"omitempty,max=20"`
	WebsiteURL  string `json:"website_url" binding:"omitempty,url"`
}

// UpdateTeamRequest is a partial update: nil or empty fields keep the stored value.
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Founded     *int    `json:"founded,omitempty" binding:"omitempty,min=1800,max=2100"`
	City        *string `json:"city,omitempty"`
	HomeStadium *string `json:"home_stadium,omitempty"`
	HeadCoach   *string `json:"head_coach,omitempty"`
	ClubCrest   *string `json:"club_crest,omitempty"`
	ThemeColor  *string `json:"theme_color,omitempty" binding:"omitempty,max=20"`
	WebsiteURL  *string `json:"website_url,omitempty" binding:"omitempty,url"`
}

// TeamSummary is the compact team projection embedded in event responses.
type TeamSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ClubCrest string `json:"club_crest"`
}

func (t *Team) Summary() *TeamSummary {
	if t == nil {
		return nil
	}
	return &TeamSummary{ID: t.ID, Name: t.Name, ClubCrest: t.ClubCrest}
}
