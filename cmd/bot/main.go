package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/interview-quiz-bot/internal/config"
	"github.com/aliskhannn/interview-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/interview-quiz-bot/internal/infra/postgres"
	pgrepository "github.com/aliskhannn/interview-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/interview-quiz-bot/internal/infra/redis"
	"github.com/aliskhannn/interview-quiz-bot/internal/infra/sqlite"
	"github.com/aliskhannn/interview-quiz-bot/internal/logger"
	"github.com/aliskhannn/interview-quiz-bot/internal/repository"
	"github.com/aliskhannn/interview-quiz-bot/internal/service"
	"github.com/aliskhannn/interview-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to init session store",
			zap.String("backend", cfg.Session.Backend),
			zap.Error(err),
		)
	}
	defer closeStore()

	scoring, err := service.ParseScoringPolicy(cfg.Quiz.Scoring)
	if err != nil {
		lg.Fatal("invalid quiz config", zap.Error(err))
	}

	quizService := service.NewQuizService(store, service.NewQuestionSelector(service.NewRand()), scoring, lg)

	// The bank is installed before polling starts, so no update is ever
	// handled against a partially loaded bank.
	files, err := cfg.Questions.QuestionFiles()
	if err != nil {
		lg.Fatal("invalid question files config", zap.Error(err))
	}
	quizService.SetBank(repository.LoadQuestionBank(cfg.Questions.Dir, files, lg))

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(bot, lg, quizService, telegram.Options{
		UpdateTimeout: cfg.Telegram.UpdateTimeout,
		Workers:       cfg.Telegram.Workers,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(gctx)
	})

	if purger, ok := store.(service.SessionPurger); ok {
		janitor := service.NewSessionJanitor(purger, cfg.Session.TTL, cfg.Session.CleanupSchedule, lg)
		g.Go(func() error {
			return janitor.Start(gctx)
		})
	}

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown signal received")
}

// newSessionStore opens the configured session backend and returns a
// function releasing its resources.
func newSessionStore(ctx context.Context, cfg *config.Config) (service.SessionStore, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionRepository(client, cfg.Session.TTL), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return pgrepository.NewSessionRepository(pool), pool.Close, nil

	case config.BackendSQLite:
		repo, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return storage.NewSessionStorage(), func() {}, nil
	}
}
