package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"quiz-spark/internal/config"
	"quiz-spark/internal/database"
	"quiz-spark/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "revert the most recent migration instead of applying pending ones")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	l := logger.Get()

	if !cfg.DatabaseEnabled() {
		l.Fatal("No database configured; set DB_HOST to run migrations")
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		l.Fatal("Failed to load migrations", zap.Error(err))
	}
	defer migrator.Close()

	ctx := context.Background()
	if *down {
		reverted, err := migrator.Down(ctx)
		if err != nil {
			l.Fatal("Failed to revert migration", zap.Error(err))
		}
		if !reverted {
			l.Info("No migrations to revert")
		}
		return
	}

	ran, err := migrator.Up(ctx)
	if err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations completed successfully", zap.Int("applied", ran))
}
