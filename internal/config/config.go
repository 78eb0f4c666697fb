package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownSessionBackend       = errors.New("unknown session backend")
)

// Session store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	Telegram         Telegram  `mapstructure:"telegram"`
	Questions        Questions `mapstructure:"questions"`
	Quiz             Quiz      `mapstructure:"quiz"`
	Session          Session   `mapstructure:"session"`
	Redis            Redis     `mapstructure:"redis"`
	DB               DB        `mapstructure:"database"`
	SQLite           SQLite    `mapstructure:"sqlite"`
}

// Telegram contains bot transport settings.
type Telegram struct {
	Debug         bool `mapstructure:"debug"`          // log raw Bot API traffic
	UpdateTimeout int  `mapstructure:"update_timeout"` // long polling timeout in seconds
	Workers       int  `mapstructure:"workers"`        // number of ordered dispatch workers
}

// Questions describes where topic files are read from.
type Questions struct {
	Dir   string            `mapstructure:"dir"`
	Files map[string]string `mapstructure:"files"` // category -> file name inside Dir
}

// Quiz contains quiz rules.
type Quiz struct {
	Scoring string `mapstructure:"scoring"` // per_question or first_attempt
}

// Session configures the session store.
type Session struct {
	Backend         string        `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`              // idle sessions older than this are dropped
	CleanupSchedule string        `mapstructure:"cleanup_schedule"` // cron spec for purging
}

// Redis contains redis connection parameters.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// SQLite contains the local database file location.
type SQLite struct {
	Path string `mapstructure:"path"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// QuestionFiles returns the topic file of every known category.
func (q Questions) QuestionFiles() (map[entities.Category]string, error) {
	files := make(map[entities.Category]string, len(q.Files))
	for raw, file := range q.Files {
		c, err := entities.ParseCategory(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("questions.files: %q: %w", raw, err)
		}
		files[c] = file
	}
	return files, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine, variables may come from the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN", "BOT_API_KEY")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("session.backend", "SESSION_BACKEND")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return build(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.update_timeout", 60)
	v.SetDefault("telegram.workers", 8)

	v.SetDefault("questions.dir", "assets/questions")
	v.SetDefault("questions.files", map[string]string{
		string(entities.CategoryHTML):  "html_questions.json",
		string(entities.CategoryCSS):   "css_questions.json",
		string(entities.CategoryJS):    "js_questions.json",
		string(entities.CategoryReact): "react_questions.json",
		string(entities.CategoryGo):    "go_questions.json",
	})

	v.SetDefault("quiz.scoring", "per_question")

	v.SetDefault("session.backend", BackendMemory)
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("session.cleanup_schedule", "@hourly")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetDefault("sqlite.path", "data/quiz.db")
}

func build(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.Session.Backend = strings.ToLower(cfg.Session.Backend)
	switch cfg.Session.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	case BackendPostgres:
		cfg.DB.URL = v.GetString("database_url")
		if cfg.DB.URL == "" {
			return nil, ErrMissingEnvironmentVariables
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSessionBackend, cfg.Session.Backend)
	}

	if cfg.Telegram.Workers <= 0 {
		cfg.Telegram.Workers = 1
	}

	return &cfg, nil
}
