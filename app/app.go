package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tender-drafting-api/internal/ai"
	"tender-drafting-api/internal/config"
	"tender-drafting-api/internal/controller"
	"tender-drafting-api/internal/prefs"
	"tender-drafting-api/internal/repo"
	"tender-drafting-api/internal/service"
	"tender-drafting-api/pkg/http_server"
	"tender-drafting-api/pkg/logger"
	"tender-drafting-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/rs/zerolog"
)

const initialLoadTimeout = 30 * time.Second

func runMigrations(postgresDB *postgres.Postgres, log zerolog.Logger) error {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info().Msg("no change made by migration scripts")
			return nil
		}

		return err
	}

	return nil
}

func Run(configPath string) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("could not read configuration")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	log.Info().Msg("connecting database")
	postgresDB, err := postgres.NewDB(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer postgresDB.Close()

	log.Info().Msg("running migrations")
	if err := runMigrations(postgresDB, log); err != nil {
		log.Fatal().Err(err).Msg("could not run migrations")
	}

	repositories := repo.NewRepositories(postgresDB)
	generator := ai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.WebhookURL)
	activePrefs := prefs.NewStore(cfg.Prefs.Path)
	services := service.NewServices(repositories, generator, activePrefs, cfg.Autosave.Debounce, log)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), initialLoadTimeout)
	if err := services.Tender.LoadAll(loadCtx); err != nil {
		// the list stays empty; a reload request can retry later
		log.Warn().Err(err).Msg("initial tender load failed")
	}
	loadCancel()

	handler := echo.New()

	log.Info().Msg("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	log.Info().Str("address", cfg.Server.Address).Msg("starting server")
	httpServer := http_server.New(handler, cfg.Server.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info().Str("signal", s.String()).Msg("got signal")
	case err = <-httpServer.Notify():
		log.Error().Err(err).Msg("server stopped")
	}

	log.Info().Msg("shutting down")
	services.Tender.FlushPendingSave()

	if err := httpServer.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		return
	}

	log.Info().Msg("successful shutdown")
}
