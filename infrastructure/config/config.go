package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion string

	// DynamoDB tables and indexes
	ThreatsTable        string
	LikesTable          string
	UsersTable          string
	ArticlesTable       string
	ReportsTable        string
	ThreatIdIndex       string // reverse lookup on the likes table
	SubmitterIndex      string // threats by submittedBy
	EmailIndex          string // users by email
	ArticleAuthorIndex  string // articles by userId
	ReportAuthorIndex   string // reports by userId

	// Blob storage
	MediaBucket string

	// Messaging
	NotificationTopicARN string
	EventBusName         string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel         string
	EnableMetrics    bool
	EnableTracing    bool
	EnableCORS       bool
	MetricsNamespace string
}

// devJWTSecret is the fallback signing key for local development. Validate
// rejects it in production.
const devJWTSecret = "trustnet-dev-secret-do-not-use"

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),

		ThreatsTable:       getEnv("THREATS_TABLE", "trustnet-threats"),
		LikesTable:         getEnv("LIKES_TABLE", "trustnet-threat-likes"),
		UsersTable:         getEnv("USERS_TABLE", "trustnet-users"),
		ArticlesTable:      getEnv("ARTICLES_TABLE", "trustnet-articles"),
		ReportsTable:       getEnv("REPORTS_TABLE", "trustnet-scam-reports"),
		ThreatIdIndex:      getEnv("THREAT_ID_INDEX", "ThreatIdIndex"),
		SubmitterIndex:     getEnv("SUBMITTER_INDEX", "SubmitterIndex"),
		EmailIndex:         getEnv("EMAIL_INDEX", "EmailIndex"),
		ArticleAuthorIndex: getEnv("ARTICLE_AUTHOR_INDEX", "AuthorIndex"),
		ReportAuthorIndex:  getEnv("REPORT_AUTHOR_INDEX", "AuthorIndex"),

		MediaBucket: getEnv("MEDIA_BUCKET", "trustnet-media"),

		NotificationTopicARN: getEnv("NOTIFICATION_TOPIC_ARN", ""),
		EventBusName:         getEnv("EVENT_BUS_NAME", "trustnet-events"),

		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		JWTSecret: getEnv("JWT_SECRET", devJWTSecret),
		JWTIssuer: getEnv("JWT_ISSUER", "trustnet-backend"),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", false),
		EnableTracing:    getEnvBool("ENABLE_TRACING", false),
		EnableCORS:       getEnvBool("ENABLE_CORS", true),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "TrustNet"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" || c.JWTSecret == devJWTSecret {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.MediaBucket == "" {
			return fmt.Errorf("MEDIA_BUCKET is required")
		}
		if c.NotificationTopicARN == "" {
			return fmt.Errorf("NOTIFICATION_TOPIC_ARN is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
