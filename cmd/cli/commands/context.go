package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/internal/config"
	"github.com/jakechorley/daily-production-plan/pkg/db"
	"github.com/jakechorley/daily-production-plan/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database

	// Postgres is set when the database is PostgreSQL rather than a catalog file
	Postgres *postgres.DB

	Logger *zap.Logger
	Ctx    context.Context
}
