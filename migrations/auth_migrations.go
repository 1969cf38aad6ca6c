package migrations

import "gorm.io/gorm"

func GetAuthMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_01_000000_create_users_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS users (
						id SERIAL PRIMARY KEY,
						email VARCHAR(255) UNIQUE NOT NULL,
						username VARCHAR(50) UNIQUE NOT NULL,
						first_name VARCHAR(100),
						last_name VARCHAR(100),
						gender VARCHAR(20),
						password VARCHAR(255) NOT NULL,
						enabled BOOLEAN DEFAULT true,
						roles JSONB DEFAULT '["guest"]'::jsonb,
						last_login TIMESTAMPTZ NULL,
						connection_count INTEGER DEFAULT 0,
						confirmation_token VARCHAR(255) NULL,
						password_requested_at TIMESTAMPTZ NULL,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_users_roles ON users USING GIN (roles);
					CREATE INDEX IF NOT EXISTS idx_users_confirmation_token ON users(confirmation_token);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS users CASCADE").Error
			},
		},
		{
			Name: "2025_01_01_000001_create_refresh_tokens_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS refresh_tokens (
						id SERIAL PRIMARY KEY,
						user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						token VARCHAR(255) UNIQUE NOT NULL,
						expires_at TIMESTAMPTZ NOT NULL,
						created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_expires_at ON refresh_tokens(expires_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS refresh_tokens CASCADE").Error
			},
		},
	}
}
