package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/interview-quiz-bot/internal/config"
)

// New returns a JSON production logger for env=production and a colored
// development logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
