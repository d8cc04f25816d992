package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dainadb/improplan/internal/api"
	"github.com/dainadb/improplan/internal/config"
	"github.com/dainadb/improplan/internal/db"
	"github.com/dainadb/improplan/internal/logger"
	"github.com/dainadb/improplan/internal/repository"
	"github.com/dainadb/improplan/internal/repository/dao"
	"github.com/dainadb/improplan/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	eventRepo := repository.NewEventRepository(dao.NewEventDAO(postgresDB))
	scheduler := service.NewExpiryScheduler(eventRepo, conf.Scheduler.ExpiryHour, zap.L())
	scheduler.Start(context.Background())

	s := api.NewServer(conf, postgresDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
