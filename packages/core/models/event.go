package models

import (
	"fmt"
	"math"
	"time"
)

// RoundMinute normalizes a fractional minute to two decimals so that
// uniqueness on (match, player, team, minute) compares equal values.
func RoundMinute(m float64) float64 {
	return math.Round(m*100) / 100
}

type Goal struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Minute    float64   `gorm:"not null" json:"minute"`
	MatchID   uint      `gorm:"not null;index" json:"match_id"`
	PlayerID  uint      `gorm:"not null;index" json:"player_id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Match  *Match  `gorm:"foreignKey:MatchID;references:ID" json:"-"`
	Player *Player `gorm:"foreignKey:PlayerID;references:ID" json:"-"`
	Team   *Team   `gorm:"foreignKey:TeamID;references:ID" json:"-"`
}

func (Goal) TableName() string {
	return "goals"
}

type Assist struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Minute    float64   `gorm:"not null" json:"minute"`
	MatchID   uint      `gorm:"not null;index" json:"match_id"`
	PlayerID  uint      `gorm:"not null;index" json:"player_id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Match  *Match  `gorm:"foreignKey:MatchID;references:ID" json:"-"`
	Player *Player `gorm:"foreignKey:PlayerID;references:ID" json:"-"`
	Team   *Team   `gorm:"foreignKey:TeamID;references:ID" json:"-"`
}

func (Assist) TableName() string {
	return "assists"
}

type CardType string

const (
	CardYellow CardType = "yellow"
	CardRed    CardType = "red"
)

type Card struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      CardType  `gorm:"column:card_type;size:10;not null" json:"card_type"`
	Minute    float64   `gorm:"not null" json:"minute"`
	MatchID   uint      `gorm:"not null;index" json:"match_id"`
	PlayerID  uint      `gorm:"not null;index" json:"player_id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Match  *Match  `gorm:"foreignKey:MatchID;references:ID" json:"-"`
	Player *Player `gorm:"foreignKey:PlayerID;references:ID" json:"-"`
	Team   *Team   `gorm:"foreignKey:TeamID;references:ID" json:"-"`
}

func (Card) TableName() string {
	return "cards"
}

// EventRequest is the body for creating or editing a goal, an assist or a
// card. CardType is only read for cards.
type EventRequest struct {
	Minute   *float64 `json:"minute" binding:"required,min=0,max=200"`
	MatchID  uint     `json:"match_id" binding:"required,gt=0"`
	PlayerID uint     `json:"player_id" binding:"required,gt=0"`
	TeamID   uint     `json:"team_id" binding:"required,gt=0"`
	CardType CardType `json:"card_type,omitempty" binding:"omitempty,oneof=yellow red"`
}

func (r *EventRequest) minute() float64 {
	if r.Minute == nil {
		return 0
	}
	return RoundMinute(*r.Minute)
}

// EventDetail is the read model shared by goals, assists and cards.
type EventDetail struct {
	ID       uint           `json:"id"`
	Minute   float64        `json:"minute"`
	CardType CardType       `json:"card_type,omitempty"`
	MatchID  uint           `json:"match_id"`
	Match    string         `json:"match"`
	Player   *PlayerSummary `json:"player"`
	Team     *TeamSummary   `json:"team"`
}

func eventDetail(id uint, minute float64, matchID uint, match *Match, player *Player, team *Team) EventDetail {
	d := EventDetail{
		ID:      id,
		Minute:  minute,
		MatchID: matchID,
		Player:  player.Summary(),
		Team:    team.Summary(),
	}
	if match != nil {
		d.Match = match.Label()
	}
	return d
}

func (g *Goal) Detail() EventDetail {
	return eventDetail(g.ID, g.Minute, g.MatchID, g.Match, g.Player, g.Team)
}

func (a *Assist) Detail() EventDetail {
	return eventDetail(a.ID, a.Minute, a.MatchID, a.Match, a.Player, a.Team)
}

func (c *Card) Detail() EventDetail {
	d := eventDetail(c.ID, c.Minute, c.MatchID, c.Match, c.Player, c.Team)
	d.CardType = c.Type
	return d
}

func (g *Goal) Apply(req EventRequest) error {
	g.Minute, g.MatchID, g.PlayerID, g.TeamID = req.minute(), req.MatchID, req.PlayerID, req.TeamID
	g.Match, g.Player, g.Team = nil, nil, nil
	return nil
}

func (a *Assist) Apply(req EventRequest) error {
	a.Minute, a.MatchID, a.PlayerID, a.TeamID = req.minute(), req.MatchID, req.PlayerID, req.TeamID
	a.Match, a.Player, a.Team = nil, nil, nil
	return nil
}

func (c *Card) Apply(req EventRequest) error {
	if req.CardType != CardYellow && req.CardType != CardRed {
		return fmt.Errorf("card_type must be %q or %q", CardYellow, CardRed)
	}
	c.Type = req.CardType
	c.Minute, c.MatchID, c.PlayerID, c.TeamID = req.minute(), req.MatchID, req.PlayerID, req.TeamID
	c.Match, c.Player, c.Team = nil, nil, nil
	return nil
}
