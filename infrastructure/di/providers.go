package di

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/application/services"
	"trustnet-backend/infrastructure/blob/s3"
	"trustnet-backend/infrastructure/config"
	"trustnet-backend/infrastructure/messaging/eventbridge"
	"trustnet-backend/infrastructure/messaging/sns"
	"trustnet-backend/infrastructure/persistence/dynamodb"
	"trustnet-backend/interfaces/http/rest"
	"trustnet-backend/interfaces/http/rest/handlers"
	"trustnet-backend/pkg/auth"
	"trustnet-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration; when tracing is on, every SDK
// client built from it emits X-Ray subsegments.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideSNSClient creates an SNS client
func ProvideSNSClient(awsCfg aws.Config) *awssns.Client {
	return awssns.NewFromConfig(awsCfg)
}

// ProvideThreatRepository creates the threat repository
func ProvideThreatRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ThreatRepository {
	return dynamodb.NewThreatRepository(client, cfg.ThreatsTable, cfg.SubmitterIndex, logger)
}

// ProvideLikeRepository creates the like repository
func ProvideLikeRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.LikeRepository {
	return dynamodb.NewLikeRepository(client, cfg.LikesTable, cfg.ThreatsTable, cfg.ThreatIdIndex, logger)
}

// ProvideUserRepository creates the user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.UsersTable, cfg.EmailIndex, logger)
}

// ProvideArticleRepository creates the article repository
func ProvideArticleRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ArticleRepository {
	return dynamodb.NewArticleRepository(client, cfg.ArticlesTable, cfg.ArticleAuthorIndex, logger)
}

// ProvideReportRepository creates the scam report repository
func ProvideReportRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReportRepository {
	return dynamodb.NewReportRepository(client, cfg.ReportsTable, cfg.ReportAuthorIndex, logger)
}

// ProvideBatchDeleter creates the multi-table batch deleter
func ProvideBatchDeleter(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.BatchDeleter {
	return dynamodb.NewBatchWriter(client, dynamodb.TableNames{
		Threats:  cfg.ThreatsTable,
		Likes:    cfg.LikesTable,
		Articles: cfg.ArticlesTable,
		Reports:  cfg.ReportsTable,
	}, logger)
}

// ProvideBlobStore creates the S3-backed blob store
func ProvideBlobStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.BlobStore {
	return s3.NewBlobStore(client, cfg.MediaBucket, logger)
}

// ProvideNotifier creates the SNS notification side-channel
func ProvideNotifier(client *awssns.Client, cfg *config.Config, logger *zap.Logger) ports.Notifier {
	return sns.NewNotifier(client, cfg.NotificationTopicARN, logger)
}

// ProvideEventPublisher creates the EventBridge domain event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics(client, cfg.MetricsNamespace, cfg.EnableMetrics, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("trustnet-backend")
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  []string{"trustnet-api"},
	})
}

// ProvideJWTGenerator creates the token issuer
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey:  cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Audience:   []string{"trustnet-api"},
		ExpiryTime: 24 * time.Hour,
	})
}

// ProvideLikeService creates the like toggle service
func ProvideLikeService(
	threats ports.ThreatRepository,
	likes ports.LikeRepository,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *services.LikeService {
	return services.NewLikeService(threats, likes, metrics, tracer, logger)
}

// ProvideCascadeService creates the cascade delete orchestrator
func ProvideCascadeService(
	threats ports.ThreatRepository,
	likes ports.LikeRepository,
	users ports.UserRepository,
	articles ports.ArticleRepository,
	reports ports.ReportRepository,
	batch ports.BatchDeleter,
	blobs ports.BlobStore,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *services.CascadeService {
	return services.NewCascadeService(threats, likes, users, articles, reports, batch, blobs, events, metrics, tracer, logger)
}

// ProvideThreatService creates the threat service
func ProvideThreatService(
	threats ports.ThreatRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	events ports.EventPublisher,
	logger *zap.Logger,
) *services.ThreatService {
	return services.NewThreatService(threats, users, notifier, events, logger)
}

// ProvideUserService creates the user service
func ProvideUserService(users ports.UserRepository, tokens *auth.JWTGenerator, logger *zap.Logger) *services.UserService {
	return services.NewUserService(users, tokens, logger)
}

// ProvideArticleService creates the article service
func ProvideArticleService(articles ports.ArticleRepository, blobs ports.BlobStore, logger *zap.Logger) *services.ArticleService {
	return services.NewArticleService(articles, blobs, logger)
}

// ProvideReportService creates the scam report service
func ProvideReportService(reports ports.ReportRepository, blobs ports.BlobStore, logger *zap.Logger) *services.ReportService {
	return services.NewReportService(reports, blobs, logger)
}

// ProvideDashboardService creates the dashboard service
func ProvideDashboardService(
	threats ports.ThreatRepository,
	users ports.UserRepository,
	articles ports.ArticleRepository,
	reports ports.ReportRepository,
	logger *zap.Logger,
) *services.DashboardService {
	return services.NewDashboardService(threats, users, articles, reports, logger)
}

// ProvideThreatHandler creates the threat handler
func ProvideThreatHandler(
	threats *services.ThreatService,
	likes *services.LikeService,
	cascade *services.CascadeService,
	logger *zap.Logger,
) *handlers.ThreatHandler {
	return handlers.NewThreatHandler(threats, likes, cascade, logger)
}

// ProvideUserHandler creates the user handler
func ProvideUserHandler(users *services.UserService, cascade *services.CascadeService, logger *zap.Logger) *handlers.UserHandler {
	return handlers.NewUserHandler(users, cascade, logger)
}

// ProvideArticleHandler creates the article handler
func ProvideArticleHandler(articles *services.ArticleService, logger *zap.Logger) *handlers.ArticleHandler {
	return handlers.NewArticleHandler(articles, logger)
}

// ProvideReportHandler creates the report handler
func ProvideReportHandler(reports *services.ReportService, logger *zap.Logger) *handlers.ReportHandler {
	return handlers.NewReportHandler(reports, logger)
}

// ProvideDashboardHandler creates the dashboard handler
func ProvideDashboardHandler(dashboard *services.DashboardService, logger *zap.Logger) *handlers.DashboardHandler {
	return handlers.NewDashboardHandler(dashboard, logger)
}

// ProvideMediaHandler creates the media handler
func ProvideMediaHandler(blobs ports.BlobStore, logger *zap.Logger) *handlers.MediaHandler {
	return handlers.NewMediaHandler(blobs, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	validator *auth.JWTValidator,
	threats *handlers.ThreatHandler,
	users *handlers.UserHandler,
	articles *handlers.ArticleHandler,
	reports *handlers.ReportHandler,
	dashboard *handlers.DashboardHandler,
	media *handlers.MediaHandler,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, validator, threats, users, articles, reports, dashboard, media, logger)
}
