package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/cache"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/config"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/database"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/logger"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/middleware"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/queue"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/core/validator"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting"
	meetingrepo "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/repository"
	meetingservice "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/meeting/service"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/notification"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/scheduling"
	"github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team"
	teamrepo "github.com/sarahhawelu19/functionallyappropriate-sub000/modules/team/repository"
)

// Run boots the API: config, logging, storage, optional Redis-backed cache
// and task queue, routes, and graceful shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.App.LogLevel)

	teamRepo, meetingRepo, err := buildRepositories(cfg)
	if err != nil {
		return err
	}

	var c *cache.Cache
	var q *queue.Queue
	if cfg.Redis.Enabled {
		c, err = cache.New(cfg.Redis)
		if err != nil {
			return fmt.Errorf("server: redis: %w", err)
		}
		defer c.Close()

		q = queue.New(cfg.Redis)
		defer q.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	mw := middleware.New()
	e.Use(mw.RequestLogger())

	v1 := e.Group("/api/v1")

	teamSvc := team.Init(v1, mw, teamRepo)
	scheduling.Init(v1, mw, teamSvc, c, time.Duration(cfg.Scheduling.CacheTTLSeconds)*time.Second)
	meeting.Init(v1, mw, meetingRepo, teamSvc, q, time.Duration(cfg.Scheduling.ReminderLeadMinutes)*time.Minute)
	notification.Init(v1, mw, meetingRepo)

	if cfg.Redis.Enabled {
		go runWorker(cfg, meetingRepo)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Failed", err)
		}
	}()
	logger.Info("Server:Run:Started", "addr", addr, "storage", cfg.Storage.Driver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// buildRepositories selects the storage driver. The memory driver seeds a
// starter team directory so the API is usable out of the box.
func buildRepositories(cfg *config.Config) (teamrepo.TeamRepositoryInterface, meetingrepo.MeetingRepositoryInterface, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.InitDB(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("server: database: %w", err)
		}
		return teamrepo.NewPostgresTeamRepository(db), meetingrepo.NewPostgresMeetingRepository(db), nil
	case "memory", "":
		tr := teamrepo.NewMemoryTeamRepository()
		if err := tr.Seed(context.Background()); err != nil {
			return nil, nil, fmt.Errorf("server: seed: %w", err)
		}
		return tr, meetingrepo.NewMemoryMeetingRepository(), nil
	default:
		return nil, nil, fmt.Errorf("server: unknown storage driver %q", cfg.Storage.Driver)
	}
}

func runWorker(cfg *config.Config, meetingRepo meetingrepo.MeetingRepositoryInterface) {
	handlers := map[string]asynq.HandlerFunc{
		queue.TypeMeetingReminder: meetingservice.NewReminderHandler(meetingRepo),
	}
	if err := queue.RunWorker(cfg.Redis, handlers); err != nil {
		logger.Error("Server:Worker:Stopped", err)
	}
}
