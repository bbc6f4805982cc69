//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"trustnet-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideS3Client,
	ProvideSNSClient,
	ProvideThreatRepository,
	ProvideLikeRepository,
	ProvideUserRepository,
	ProvideArticleRepository,
	ProvideReportRepository,
	ProvideBatchDeleter,
	ProvideBlobStore,
	ProvideNotifier,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	ProvideJWTValidator,
	ProvideJWTGenerator,
	ProvideLikeService,
	ProvideCascadeService,
	ProvideThreatService,
	ProvideUserService,
	ProvideArticleService,
	ProvideReportService,
	ProvideDashboardService,
	ProvideThreatHandler,
	ProvideUserHandler,
	ProvideArticleHandler,
	ProvideReportHandler,
	ProvideDashboardHandler,
	ProvideMediaHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
