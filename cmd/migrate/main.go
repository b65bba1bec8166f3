package main

import (
	"context"
	"flag"
	"os"

	"bookcatalog/internal/logging"
	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()
	logger, flush := logging.Setup(logging.Options{Level: zapcore.InfoLevel})
	defer flush()

	dir := migrationsDir()
	if err := run(context.Background(), logger, *command, *name, dir); err != nil {
		logger.Error("migration failed", zap.String("command", *command), zap.String("dir", dir), zap.Error(err))
		flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, command, name, dir string) error {
	if command == "create" {
		if name == "" {
			return errMissingName
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return err
		}
		logger.Info("migration created", zap.String("name", name))
		return nil
	}

	switch command {
	case "up", "down", "status":
	default:
		return unknownCommandError(command)
	}

	pool, err := postgres.NewPool(ctx, databaseDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return err
		}
		logger.Info("migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return err
		}
		logger.Info("migrations rolled back successfully")
	case "status":
		return goose.StatusContext(ctx, db, dir)
	}
	return nil
}
