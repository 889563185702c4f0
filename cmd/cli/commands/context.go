package commands

import (
	"go.uber.org/zap"

	"github.com/tournament-tools/prize-allocator/internal/config"
	"github.com/tournament-tools/prize-allocator/pkg/core/services"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg         *config.Config
	Tournaments services.TournamentLoader
	Logger      *zap.Logger
}
