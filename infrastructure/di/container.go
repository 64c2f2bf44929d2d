package di

import (
	"github.com/ciprian88m/user-posts-lambda/infrastructure/config"
	"github.com/ciprian88m/user-posts-lambda/interfaces/functions"
	"github.com/ciprian88m/user-posts-lambda/interfaces/http/rest"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Tracer   *observability.Tracer
	Metrics  *observability.Collector
	Registry *functions.Registry
	Router   *rest.Router
}

// Cleanup flushes buffered log entries
func (c *Container) Cleanup() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
