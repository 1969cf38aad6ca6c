package models

import (
	"strings"
	"time"
)

type Player struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string    `gorm:"size:100;not null" json:"first_name"`
	LastName      string    `gorm:"size:100;not null" json:"last_name"`
	PlayerNumber  int       `json:"player_number"`
	Position      string    `gorm:"size:50;not null" json:"position"`
	Nationality   string    `gorm:"size:100" json:"nationality"`
	PreferredFoot string    `gorm:"size:10" json:"preferred_foot"`
	SocialHandle  string    `gorm:"size:100" json:"social_handle"`
	Photo         string    `gorm:"size:500" json:"photo"`
	TeamID        uint      `gorm:"not null;index" json:"team_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Team *Team `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

// FullName is the case-folded "first last" key players are unique on within a team.
func (p *Player) FullName() string {
	return strings.ToLower(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

type CreatePlayerRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=100"`
	LastName      string `json:"last_name" binding:"required,max=100"`
	PlayerNumber  int    `json:"player_number" binding:"omitempty,min=1,max=99"`
	Position      string `json:"position" binding:"required,max=50"`
	Nationality   string `json:"nationality" binding:"omitempty,max=100"`
	PreferredFoot string `json:"preferred_foot" binding:"omitempty,oneof=left right both"`
	SocialHandle  string `json:"social_handle" binding:"omitempty,max=100"`
	Photo         string `json:"photo"`
	TeamID        uint   `json:"team_id" binding:"required"`
}

type UpdatePlayerRequest struct {
	FirstName     *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName      *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	PlayerNumber  *int    `json:"player_number,omitempty" binding:"omitempty,min=1,max=99"`
	Position      *string `json:"position,omitempty" binding:"omitempty,max=50"`
	Nationality   *string `json:"nationality,omitempty"`
	PreferredFoot *string `json:"preferred_foot,omitempty" binding:"omitempty,oneof=left right both"`
	SocialHandle  *string `json:"social_handle,omitempty"`
	Photo         *string `json:"photo,omitempty"`
	TeamID        *uint   `json:"team_id,omitempty"`
}

// PlayerSummary is the compact player projection embedded in event responses.
type PlayerSummary struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Position     string `json:"position"`
	PlayerNumber int    `json:"player_number"`
	Photo        string `json:"photo"`
}

func (p *Player) Summary() *PlayerSummary {
	if p == nil {
		return nil
	}
	return &PlayerSummary{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Position:     p.Position,
		PlayerNumber: p.PlayerNumber,
		Photo:        p.Photo,
	}
}
