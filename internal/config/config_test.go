package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("SESSION_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TelegramAPIToken != "token" {
		t.Errorf("unexpected token %q", cfg.TelegramAPIToken)
	}
	if cfg.Session.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL != 720*time.Hour {
		t.Errorf("unexpected ttl %v", cfg.Session.TTL)
	}
	if cfg.Telegram.UpdateTimeout != 60 || cfg.Telegram.Workers != 8 {
		t.Errorf("unexpected telegram config %+v", cfg.Telegram)
	}
	if cfg.Quiz.Scoring != "per_question" {
		t.Errorf("unexpected scoring %q", cfg.Quiz.Scoring)
	}

	files, err := cfg.Questions.QuestionFiles()
	if err != nil {
		t.Fatalf("question files: %v", err)
	}
	if files[entities.CategoryJS] != "js_questions.json" || len(files) != len(entities.Categories()) {
		t.Errorf("unexpected question files %v", files)
	}
}

func TestLoadLegacyTokenVariable(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("BOT_API_KEY", "legacy")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TelegramAPIToken != "legacy" {
		t.Errorf("expected BOT_API_KEY to be used, got %q", cfg.TelegramAPIToken)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]any
		wantErr error
	}{
		{
			name:    "missing token",
			set:     map[string]any{},
			wantErr: ErrMissingEnvironmentVariables,
		},
		{
			name:    "postgres without url",
			set:     map[string]any{"telegram_api_token": "t", "session.backend": "postgres"},
			wantErr: ErrMissingEnvironmentVariables,
		},
		{
			name:    "unknown backend",
			set:     map[string]any{"telegram_api_token": "t", "session.backend": "etcd"},
			wantErr: ErrUnknownSessionBackend,
		},
		{
			name: "postgres",
			set: map[string]any{
				"telegram_api_token": "t",
				"session.backend":    "Postgres",
				"database_url":       "postgres://localhost/quiz",
			},
		},
		{
			name: "workers clamped",
			set:  map[string]any{"telegram_api_token": "t", "telegram.workers": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			for k, val := range tt.set {
				v.Set(k, val)
			}

			cfg, err := build(v)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Telegram.Workers < 1 {
				t.Errorf("expected at least one worker, got %d", cfg.Telegram.Workers)
			}
			if cfg.Session.Backend == BackendPostgres {
				if dsn, err := cfg.DB.DSN(); err != nil || dsn != "postgres://localhost/quiz" {
					t.Errorf("unexpected dsn %q, %v", dsn, err)
				}
			}
		})
	}
}

func TestQuestionFilesUnknownCategory(t *testing.T) {
	q := Questions{Files: map[string]string{"cobol": "cobol.json"}}

	if _, err := q.QuestionFiles(); !errors.Is(err, entities.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}
