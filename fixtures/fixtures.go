package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	authModels "epl-api/packages/auth/models"
	authUtils "epl-api/packages/auth/utils"
	"epl-api/packages/core/models"
	"epl-api/packages/core/services"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const matchDuration = 90 * time.Minute

type Fixtures struct {
	db    *gorm.DB
	clock clockwork.Clock
	loc   *time.Location
	rng   *rand.Rand
}

func NewFixtures(db *gorm.DB, clock clockwork.Clock, loc *time.Location) *Fixtures {
	return &Fixtures{
		db:    db,
		clock: clock,
		loc:   loc,
		rng:   rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

var clubs = []models.Team{
	{Name: "Arsenal", Founded: 1886, City: "London", HomeStadium: "Emirates Stadium", HeadCoach: "Mikel Arteta", ThemeColor: "#EF0107", WebsiteURL: "https://www.arsenal.com"},
	{Name: "Chelsea", Founded: 1905, City: "London", HomeStadium: "Stamford Bridge", HeadCoach: "Enzo Maresca", ThemeColor: "#034694", WebsiteURL: "https://www.chelseafc.com"},
	{Name: "Liverpool", Founded: 1892, City: "Liverpool", HomeStadium: "Anfield", HeadCoach: "Arne Slot", ThemeColor: "#C8102E", WebsiteURL: "https://www.liverpoolfc.com"},
	{Name: "Manchester City", Founded: 1880, City: "Manchester", HomeStadium: "Etihad Stadium", HeadCoach: "Pep Guardiola", ThemeColor: "#6CABDD", WebsiteURL: "https://www.mancity.com"},
	{Name: "Manchester United", Founded: 1878, City: "Manchester", HomeStadium: "Old Trafford", HeadCoach: "Ruben Amorim", ThemeColor: "#DA291C", WebsiteURL: "https://www.manutd.com"},
	{Name: "Tottenham Hotspur", Founded: 1882, City: "London", HomeStadium: "Tottenham Hotspur Stadium", HeadCoach: "Thomas Frank", ThemeColor: "#132257", WebsiteURL: "https://www.tottenhamhotspur.com"},
}

var (
	firstNames = []string{"James", "Oliver", "Jack", "Harry", "George", "Noah", "Leo", "Alfie", "Mason", "Ethan", "Lucas", "Theo"}
	lastNames  = []string{"Smith", "Jones", "Taylor", "Brown", "Wilson", "Evans", "Walker", "Wright", "Robinson", "Thompson", "White", "Hughes"}
	feet       = []string{"left", "right", "both"}
	kickoffs   = []string{"12:30", "15:00", "17:30"}
)

// GenerateTestData seeds users, clubs, squads, the current season with a
// double round robin around today, goals for played matches and some news.
func (f *Fixtures) GenerateTestData() error {
	log.Info().Msg("Starting fixtures generation")

	return f.db.Transaction(func(tx *gorm.DB) error {
		admin, err := f.generateUsers(tx)
		if err != nil {
			return fmt.Errorf("failed to generate users: %w", err)
		}
		teams, err := f.generateTeams(tx)
		if err != nil {
			return fmt.Errorf("failed to generate teams: %w", err)
		}
		squads, err := f.generatePlayers(tx, teams)
		if err != nil {
			return fmt.Errorf("failed to generate players: %w", err)
		}
		season, err := f.generateSeason(tx)
		if err != nil {
			return fmt.Errorf("failed to generate season: %w", err)
		}
		matches, err := f.generateMatches(tx, teams, season)
		if err != nil {
			return fmt.Errorf("failed to generate matches: %w", err)
		}
		goals, err := f.generateGoals(tx, matches, squads)
		if err != nil {
			return fmt.Errorf("failed to generate goals: %w", err)
		}
		if err := f.generateNews(tx, admin); err != nil {
			return fmt.Errorf("failed to generate news: %w", err)
		}

		log.Info().
			Int("teams", len(teams)).
			Int("matches", len(matches)).
			Int("goals", goals).
			Msg("Fixtures generated")
		return nil
	})
}

func (f *Fixtures) generateUsers(tx *gorm.DB) (*authModels.User, error) {
	hashed, err := authUtils.HashPassword("password123")
	if err != nil {
		return nil, err
	}
	admin := authModels.User{
		Email:     "admin@epl.local",
		Username:  "admin",
		FirstName: "League",
		LastName:  "Admin",
		Password:  hashed,
		Enabled:   true,
		Roles:     authModels.Roles{authModels.RoleAdmin, authModels.RoleGuest},
	}
	guest := authModels.User{
		Email:     "guest@epl.local",
		Username:  "guest",
		FirstName: "Casual",
		LastName:  "Fan",
		Password:  hashed,
		Enabled:   true,
		Roles:     authModels.GetDefaultRoles(),
	}
	if err := tx.Create(&admin).Error; err != nil {
		return nil, err
	}
	if err := tx.Create(&guest).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (f *Fixtures) generateTeams(tx *gorm.DB) ([]models.Team, error) {
	teams := make([]models.Team, len(clubs))
	copy(teams, clubs)
	if err := tx.Create(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (f *Fixtures) generatePlayers(tx *gorm.DB, teams []models.Team) (map[uint][]models.Player, error) {
	squads := make(map[uint][]models.Player, len(teams))
	for _, team := range teams {
		used := map[string]bool{}
		for number := 1; number <= 11; number++ {
			p := models.Player{
				PlayerNumber:  number,
				Position:      positionFor(number),
				Nationality:   "England",
				PreferredFoot: feet[f.rng.Intn(len(feet))],
				TeamID:        team.ID,
			}
			for {
				p.FirstName = firstNames[f.rng.Intn(len(firstNames))]
				p.LastName = lastNames[f.rng.Intn(len(lastNames))]
				if !used[p.FullName()] {
					used[p.FullName()] = true
					break
				}
			}
			if err := tx.Create(&p).Error; err != nil {
				return nil, err
			}
			squads[team.ID] = append(squads[team.ID], p)
		}
	}
	return squads, nil
}

func positionFor(number int) string {
	switch {
	case number == 1:
		return "Goalkeeper"
	case number <= 5:
		return "Defender"
	case number <= 8:
		return "Midfielder"
	default:
		return "Forward"
	}
}

func (f *Fixtures) generateSeason(tx *gorm.DB) (*models.Season, error) {
	now := f.clock.Now().In(f.loc)
	start := now.Year()
	if now.Month() < time.July {
		start--
	}
	season := models.Season{
		Name:      fmt.Sprintf("%d/%d", start, start+1),
		StartDate: time.Date(start, time.August, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(start+1, time.May, 31, 0, 0, 0, 0, time.UTC),
	}
	return &season, tx.Create(&season).Error
}

// roundRobin pairs teams with the circle method, then repeats with home and
// away swapped.
func roundRobin(teams []models.Team) [][][2]uint {
	ids := make([]uint, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	if len(ids)%2 == 1 {
		ids = append(ids, 0)
	}
	n := len(ids)
	var rounds [][][2]uint
	for r := 0; r < n-1; r++ {
		var round [][2]uint
		for i := 0; i < n/2; i++ {
			home, away := ids[i], ids[n-1-i]
			if home != 0 && away != 0 {
				if r%2 == 1 {
					home, away = away, home
				}
				round = append(round, [2]uint{home, away})
			}
		}
		rounds = append(rounds, round)
		ids = append([]uint{ids[0], ids[n-1]}, ids[1:n-1]...)
	}
	for r := 0; r < n-1; r++ {
		var back [][2]uint
		for _, pair := range rounds[r] {
			back = append(back, [2]uint{pair[1], pair[0]})
		}
		rounds = append(rounds, back)
	}
	return rounds
}

func (f *Fixtures) generateMatches(tx *gorm.DB, teams []models.Team, season *models.Season) ([]models.Match, error) {
	now := f.clock.Now().In(f.loc)
	rounds := roundRobin(teams)
	// half the rounds are already played
	first := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -7*(len(rounds)/2))

	var out []models.Match
	for r, round := range rounds {
		day := first.AddDate(0, 0, 7*r)
		for i, pair := range round {
			m := models.Match{
				HomeTeamID:    pair[0],
				AwayTeamID:    pair[1],
				MatchDate:     day,
				MatchTime:     kickoffs[i%len(kickoffs)],
				Status:        models.StatusUpcoming,
				IsHomeStadium: true,
				Version:       1,
			}
			kickoff, err := m.Kickoff(f.loc)
			if err != nil {
				return nil, err
			}
			m.Status = services.ResolveStatus(kickoff, now, m.Status, matchDuration)
			m.IsFinished = m.Status == models.StatusFinished
			if m.Status != models.StatusUpcoming {
				m.HomeTeamScore = f.rng.Intn(4)
				m.AwayTeamScore = f.rng.Intn(3)
			}
			if err := tx.Create(&m).Error; err != nil {
				return nil, err
			}
			link := models.MatchSeason{MatchID: m.ID, SeasonID: season.ID}
			if err := tx.Create(&link).Error; err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *Fixtures) generateGoals(tx *gorm.DB, matches []models.Match, squads map[uint][]models.Player) (int, error) {
	count := 0
	for _, m := range matches {
		for side, teamID := range []uint{m.HomeTeamID, m.AwayTeamID} {
			scored := m.HomeTeamScore
			if side == 1 {
				scored = m.AwayTeamScore
			}
			squad := squads[teamID]
			for g := 0; g < scored && len(squad) > 0; g++ {
				scorer := squad[f.rng.Intn(len(squad))]
				goal := models.Goal{
					Minute:   models.RoundMinute(float64(1+f.rng.Intn(89)) + float64(g)/100),
					MatchID:  m.ID,
					PlayerID: scorer.ID,
					TeamID:   teamID,
				}
				if err := tx.Create(&goal).Error; err != nil {
					return count, err
				}
				count++
			}
		}
	}
	return count, nil
}

func (f *Fixtures) generateNews(tx *gorm.DB, author *authModels.User) error {
	now := f.clock.Now()
	articles := []models.News{
		{
			Title:         "Matchweek preview",
			SubTitle:      "Everything you need to know before the weekend",
			Body:          "Title race, relegation scrap and the early kickoffs: our preview of the coming fixtures.",
			PublishedDate: now.Add(-48 * time.Hour),
			ExpireDate:    now.AddDate(0, 1, 0),
			IsActive:      true,
			UserID:        author.ID,
		},
		{
			Title:         "Transfer window closes",
			SubTitle:      "Every confirmed deal of the summer",
			Body:          "Clubs spent big in the final days of the window. Here is the complete list.",
			PublishedDate: now.AddDate(0, -2, 0),
			ExpireDate:    now.AddDate(0, -1, 0),
			IsActive:      false,
			UserID:        author.ID,
		},
	}
	return tx.Create(&articles).Error
}

// ClearAllData truncates every league and user table.
func (f *Fixtures) ClearAllData() error {
	log.Info().Msg("Clearing all data")
	return f.db.Exec(`TRUNCATE TABLE
		goals, assists, cards, match_seasons, seasons, news,
		matches, players, teams, refresh_tokens, users
		RESTART IDENTITY CASCADE`).Error
}
