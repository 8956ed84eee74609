package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{logger: slog.Default()})
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return err
	}

	return nil
}

// gooseLogger sends goose progress lines to slog instead of the std logger.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "migrations")
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "migrations")
}
