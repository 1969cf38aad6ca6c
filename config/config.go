package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration of the API.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	League   LeagueConfig   `yaml:"league"`
	Mail     MailConfig     `yaml:"mail"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	GinMode     string   `yaml:"gin_mode"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	Issuer     string        `yaml:"issuer"`
	Audience   string        `yaml:"audience"`
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
}

// LeagueConfig tunes the match lifecycle and the standings table.
type LeagueConfig struct {
	MatchDuration        time.Duration `yaml:"match_duration"`
	Timezone             string        `yaml:"timezone"`
	CountUpcomingInTable bool          `yaml:"count_upcoming_in_table"`
	SweepCron            string        `yaml:"sweep_cron"`
	TokenCleanupCron     string        `yaml:"token_cleanup_cron"`
}

type MailConfig struct {
	DSN    string `yaml:"dsn"`
	Sender string `yaml:"sender"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        "8080",
			GinMode:     "debug",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Name:     "epl",
			SSLMode:  "disable",
		},
		Auth: AuthConfig{
			Issuer:     "epl-api",
			Audience:   "epl-web",
			AccessTTL:  30 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
		},
		League: LeagueConfig{
			MatchDuration:    90 * time.Minute,
			Timezone:         "UTC",
			SweepCron:        "0 */5 * * * *",
			TokenCleanupCron: "0 0 3 * * *",
		},
		LogLevel: "info",
	}
}

// Load reads the configuration like Read and validates it for serving.
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read loads .env, then the optional YAML file named by CONFIG_FILE, then
// environment overrides. The CLI tools use it directly since they need no
// JWT secret.
func Read() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = strings.Split(origins, ",")
	}

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvAsInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.Issuer = getEnv("JWT_ISSUER", c.Auth.Issuer)
	c.Auth.Audience = getEnv("JWT_AUDIENCE", c.Auth.Audience)
	c.Auth.AccessTTL = getEnvAsDuration("JWT_ACCESS_TTL", c.Auth.AccessTTL)
	c.Auth.RefreshTTL = getEnvAsDuration("JWT_REFRESH_TTL", c.Auth.RefreshTTL)

	c.League.MatchDuration = getEnvAsDuration("MATCH_DURATION", c.League.MatchDuration)
	c.League.Timezone = getEnv("LEAGUE_TIMEZONE", c.League.Timezone)
	c.League.CountUpcomingInTable = getEnvAsBool("COUNT_UPCOMING_IN_TABLE", c.League.CountUpcomingInTable)
	c.League.SweepCron = getEnv("SWEEP_CRON", c.League.SweepCron)
	c.League.TokenCleanupCron = getEnv("TOKEN_CLEANUP_CRON", c.League.TokenCleanupCron)

	c.Mail.DSN = getEnv("MAIL_DSN", c.Mail.DSN)
	c.Mail.Sender = getEnv("MAILER_ENVELOPE_SENDER", c.Mail.Sender)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.League.MatchDuration <= 0 {
		return fmt.Errorf("league match duration must be positive, got %s", c.League.MatchDuration)
	}
	if _, err := c.League.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the league timezone used to compute kickoff instants.
func (l LeagueConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid league timezone %q: %w", l.Timezone, err)
	}
	return loc, nil
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
