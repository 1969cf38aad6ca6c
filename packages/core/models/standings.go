package models

// NoOpponent is the opponent name shown when a team has no fixture left.
const NoOpponent = "-"

type StandingRow struct {
	Position       int    `json:"position"`
	TeamID         uint   `json:"team_id"`
	TeamName       string `json:"team_name"`
	ClubCrest      string `json:"club_crest"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	NextMatchID    *uint  `json:"next_match_id"`
	NextOpponent   string `json:"next_opponent"`
	NextCrest      string `json:"next_opponent_crest,omitempty"`
	NextMatchDate  string `json:"next_match_date,omitempty"`
	NextMatchTime  string `json:"next_match_time,omitempty"`
}
