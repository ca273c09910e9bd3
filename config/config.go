package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	BackendURL        string `mapstructure:"BACKEND_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	OperatorTokenTTL  int    `mapstructure:"OPERATOR_TOKEN_TTL_HOURS"`

	// Persistence.
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisJobQueueDB int    `mapstructure:"REDIS_JOB_QUEUE_DB"`
	FeatureCacheTTL int    `mapstructure:"FEATURE_CACHE_TTL_SECONDS"`

	// Scheduled jobs.
	JobsEnabled           bool   `mapstructure:"JOBS_ENABLED"`
	JobsTimezone          string `mapstructure:"JOBS_TIMEZONE"`
	CronProcessBookings   string `mapstructure:"CRON_PROCESS_BOOKINGS"`
	CronConfirmNotify     string `mapstructure:"CRON_CONFIRM_NOTIFY"`
	CronCancelBookings    string `mapstructure:"CRON_CANCEL_BOOKINGS"`
	CronSurveys           string `mapstructure:"CRON_SURVEYS"`
	CronCancelAttentions  string `mapstructure:"CRON_CANCEL_ATTENTIONS"`
	BatchMinSpacingMillis int    `mapstructure:"BATCH_MIN_SPACING_MS"`
	BatchMaxConcurrent    int    `mapstructure:"BATCH_MAX_CONCURRENT"`

	// Domain events.
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE"`

	// Notification providers.
	WhatsappProvider    string `mapstructure:"WHATSAPP_NOTIFICATION_PROVIDER"`
	WhatsappProviderURL string `mapstructure:"WHATSAPP_PROVIDER_URL"`
	WhatsappProviderKey string `mapstructure:"WHATSAPP_PROVIDER_KEY"`
	EmailProvider       string `mapstructure:"EMAIL_NOTIFICATION_PROVIDER"`
	EmailProviderURL    string `mapstructure:"EMAIL_PROVIDER_URL"`
	EmailProviderKey    string `mapstructure:"EMAIL_PROVIDER_KEY"`
	EmailSource         string `mapstructure:"EMAIL_SOURCE"`

	// Document storage.
	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DocumentsBucket    string `mapstructure:"AWS_S3_DOCUMENTS_BUCKET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("BACKEND_URL", "http://localhost:8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("OPERATOR_TOKEN_TTL_HOURS", 12)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "queuedesk")
	viper.SetDefault("STORAGE_DRIVER", "mongo")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_JOB_QUEUE_DB", 3)
	viper.SetDefault("FEATURE_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("JOBS_ENABLED", true)
	viper.SetDefault("JOBS_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("CRON_PROCESS_BOOKINGS", "0 6 * * *")
	viper.SetDefault("CRON_CONFIRM_NOTIFY", "0 9 * * *")
	viper.SetDefault("CRON_CANCEL_BOOKINGS", "0 2 * * *")
	viper.SetDefault("CRON_SURVEYS", "0 10 * * *")
	viper.SetDefault("CRON_CANCEL_ATTENTIONS", "0 1 * * *")
	viper.SetDefault("BATCH_MIN_SPACING_MS", 1000)
	viper.SetDefault("BATCH_MAX_CONCURRENT", 10)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("RABBITMQ_EXCHANGE", "queuedesk.events")
	viper.SetDefault("WHATSAPP_NOTIFICATION_PROVIDER", "log")
	viper.SetDefault("WHATSAPP_PROVIDER_URL", "")
	viper.SetDefault("WHATSAPP_PROVIDER_KEY", "")
	viper.SetDefault("EMAIL_NOTIFICATION_PROVIDER", "log")
	viper.SetDefault("EMAIL_PROVIDER_URL", "")
	viper.SetDefault("EMAIL_PROVIDER_KEY", "")
	viper.SetDefault("EMAIL_SOURCE", "no-reply@queuedesk.local")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("AWS_S3_DOCUMENTS_BUCKET", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BatchSpacing is the minimum interval between two batch dispatches.
func BatchSpacing() time.Duration {
	if AppConfig.BatchMinSpacingMillis <= 0 {
		return time.Second
	}
	return time.Duration(AppConfig.BatchMinSpacingMillis) * time.Millisecond
}

// BatchConcurrency is the maximum number of in-flight batch items.
func BatchConcurrency() int {
	if AppConfig.BatchMaxConcurrent <= 0 {
		return 10
	}
	return AppConfig.BatchMaxConcurrent
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS. An empty list or "*" means any origin.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o == "*" {
			return nil
		} else if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// OperatorTokenDuration is the default lifetime of an issued operator token.
func OperatorTokenDuration() time.Duration {
	if AppConfig.OperatorTokenTTL <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(AppConfig.OperatorTokenTTL) * time.Hour
}
