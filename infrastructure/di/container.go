package di

import (
	"go.uber.org/zap"

	"trustnet-backend/infrastructure/config"
	"trustnet-backend/interfaces/http/rest"
	"trustnet-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Tracer  *observability.Tracer
	Router  *rest.Router
}
