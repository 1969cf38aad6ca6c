package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_teams_and_players_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS teams (
						id SERIAL PRIMARY KEY,
						name VARCHAR(255) UNIQUE NOT NULL,
						founded INTEGER,
						city VARCHAR(255),
						home_stadium VARCHAR(255),
						head_coach VARCHAR(255),
						club_crest VARCHAR(500),
						theme_color VARCHAR(20),
						website_url VARCHAR(500),
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);

					CREATE TABLE IF NOT EXISTS players (
						id SERIAL PRIMARY KEY,
						first_name VARCHAR(100) NOT NULL,
						last_name VARCHAR(100) NOT NULL,
						player_number INTEGER,
						position VARCHAR(50) NOT NULL,
						nationality VARCHAR(100),
						preferred_foot VARCHAR(10) CHECK (preferred_foot IN ('', 'left', 'right', 'both')),
						social_handle VARCHAR(100),
						photo VARCHAR(500),
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_players_team_id ON players(team_id);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_players_team_full_name
						ON players(team_id, lower(trim(first_name) || ' ' || trim(last_name)));
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS players CASCADE;
					DROP TABLE IF EXISTS teams CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000001_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id SERIAL PRIMARY KEY,
						home_team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE RESTRICT,
						away_team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE RESTRICT,
						match_date DATE NOT NULL,
						match_time VARCHAR(5) NOT NULL,
						home_team_score INTEGER NOT NULL DEFAULT 0 CHECK (home_team_score >= 0),
						away_team_score INTEGER NOT NULL DEFAULT 0 CHECK (away_team_score >= 0),
						status VARCHAR(20) NOT NULL DEFAULT 'upcoming'
							CHECK (status IN ('upcoming', 'live', 'finished')),
						is_finished BOOLEAN NOT NULL DEFAULT false,
						is_home_stadium BOOLEAN NOT NULL DEFAULT true,
						version INTEGER NOT NULL DEFAULT 1,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMPTZ NULL,
						CHECK (home_team_id <> away_team_id)
					);
					CREATE INDEX IF NOT EXISTS idx_matches_home_team_id ON matches(home_team_id);
					CREATE INDEX IF NOT EXISTS idx_matches_away_team_id ON matches(away_team_id);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_matches_unfinished ON matches(match_date)
						WHERE is_finished = false AND deleted_at IS NULL;
					CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_fixture
						ON matches(home_team_id, away_team_id, match_date)
						WHERE deleted_at IS NULL;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000002_create_match_event_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS goals (
						id SERIAL PRIMARY KEY,
						minute DOUBLE PRECISION NOT NULL CHECK (minute >= 0),
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_goals_event ON goals(match_id, player_id, team_id, minute);

					CREATE TABLE IF NOT EXISTS assists (
						id SERIAL PRIMARY KEY,
						minute DOUBLE PRECISION NOT NULL CHECK (minute >= 0),
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_assists_event ON assists(match_id, player_id, team_id, minute);

					CREATE TABLE IF NOT EXISTS cards (
						id SERIAL PRIMARY KEY,
						card_type VARCHAR(10) NOT NULL CHECK (card_type IN ('yellow', 'red')),
						minute DOUBLE PRECISION NOT NULL CHECK (minute >= 0),
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_cards_event ON cards(match_id, player_id, team_id, minute, card_type);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS cards CASCADE;
					DROP TABLE IF EXISTS assists CASCADE;
					DROP TABLE IF EXISTS goals CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000003_create_seasons_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS seasons (
						id SERIAL PRIMARY KEY,
						name VARCHAR(20) UNIQUE NOT NULL,
						start_date DATE NOT NULL,
						end_date DATE NOT NULL,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						CHECK (EXTRACT(YEAR FROM end_date) = EXTRACT(YEAR FROM start_date) + 1)
					);

					CREATE TABLE IF NOT EXISTS match_seasons (
						id SERIAL PRIMARY KEY,
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						season_id INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_match_seasons_pair ON match_seasons(match_id, season_id);
					CREATE INDEX IF NOT EXISTS idx_match_seasons_season_id ON match_seasons(season_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS match_seasons CASCADE;
					DROP TABLE IF EXISTS seasons CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000004_create_news_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS news (
						id SERIAL PRIMARY KEY,
						title VARCHAR(200) UNIQUE NOT NULL,
						sub_title VARCHAR(500) NOT NULL,
						body VARCHAR(4000) NOT NULL,
						image VARCHAR(500),
						video_link VARCHAR(500),
						published_date TIMESTAMPTZ NOT NULL,
						expire_date TIMESTAMPTZ NOT NULL,
						is_active BOOLEAN NOT NULL DEFAULT true,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						CHECK (expire_date > published_date)
					);
					CREATE INDEX IF NOT EXISTS idx_news_published_date ON news(published_date DESC);
					CREATE INDEX IF NOT EXISTS idx_news_user_id ON news(user_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS news CASCADE").Error
			},
		},
	}
}
