package main

import (
	"log"

	"climatelab/adapters/postgres"
	"climatelab/app"
	"climatelab/internal"
	"climatelab/internal/config"
	"climatelab/internal/errors"
	"climatelab/ports"
	"climatelab/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and applies the schema. The database
// is optional: without DATABASE_URL the server runs file-only and the
// dataset endpoints report unavailable.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var repo ports.ObservationRepository
	if cfg.Database.URL != "" {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewObservationRepository(db)
		logger.Info("dataset repository connected")
	} else {
		logger.Info("no DATABASE_URL configured, dataset persistence disabled")
	}

	reports := app.DefaultReportParams()
	reports.Ideal.Lower = cfg.Analysis.IdealLower
	reports.Ideal.Upper = cfg.Analysis.IdealUpper
	reports.NonIdeal.ColdMax = cfg.Analysis.ColdMax
	reports.NonIdeal.HotMin = cfg.Analysis.HotMin
	reports.Window = cfg.Analysis.HardinessWindow

	server := ui.NewApp(ui.Config{
		Port:    cfg.Server.Port,
		DataDir: cfg.Paths.DataDir,
		Reports: reports,
	}, repo, logger)

	if err := server.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
