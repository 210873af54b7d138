package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/rotaplan/rotaplan/internal/config"
	"github.com/rotaplan/rotaplan/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}
