package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	Analyzer AnalyzerConfig
	CORS     CORSConfig
	Queue    QueueConfig
	Email    EmailConfig
	Portal   PortalConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AnalyzerProviderConfig holds settings for a single AI analyzer provider.
type AnalyzerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalyzerConfig holds AI inspection analyzer settings with a primary
// provider and an optional secondary fallback.
type AnalyzerConfig struct {
	Primary   AnalyzerProviderConfig `mapstructure:"primary"`
	Secondary AnalyzerProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary analyzer config, or nil if not configured.
func (a *AnalyzerConfig) SecondaryConfig() *AnalyzerProviderConfig {
	if a.Secondary.Provider != "" {
		return &a.Secondary
	}
	return nil
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds report generation queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// PortalConfig holds client portal settings.
type PortalConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// Load reads configuration from environment variables with the RUGOPS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RUGOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rugops")
	v.SetDefault("db.password", "rugops_secret")
	v.SetDefault("db.name", "rugops_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "rugops")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "rugops-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Analyzer defaults
	v.SetDefault("analyzer.primary.provider", "claude")
	v.SetDefault("analyzer.primary.api_key", "")
	v.SetDefault("analyzer.primary.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("analyzer.primary.timeout_secs", 120)
	v.SetDefault("analyzer.secondary.provider", "")
	v.SetDefault("analyzer.secondary.api_key", "")
	v.SetDefault("analyzer.secondary.default_model", "")
	v.SetDefault("analyzer.secondary.timeout_secs", 120)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 3)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@rugops.app")
	v.SetDefault("email.from_name", "RugOps")

	// Portal defaults
	v.SetDefault("portal.base_url", "http://localhost:3000/portal")
	v.SetDefault("portal.token_expiry", "720h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "RUGOPS_SERVER_PORT",
		"server.read_timeout":              "RUGOPS_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "RUGOPS_SERVER_WRITE_TIMEOUT",
		"server.environment":               "RUGOPS_SERVER_ENVIRONMENT",
		"db.host":                          "RUGOPS_DB_HOST",
		"db.port":                          "RUGOPS_DB_PORT",
		"db.user":                          "RUGOPS_DB_USER",
		"db.password":                      "RUGOPS_DB_PASSWORD",
		"db.name":                          "RUGOPS_DB_NAME",
		"db.sslmode":                       "RUGOPS_DB_SSLMODE",
		"db.max_open":                      "RUGOPS_DB_MAX_OPEN",
		"db.max_idle":                      "RUGOPS_DB_MAX_IDLE",
		"jwt.secret":                       "RUGOPS_JWT_SECRET",
		"jwt.access_expiry":                "RUGOPS_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":               "RUGOPS_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                       "RUGOPS_JWT_ISSUER",
		"s3.region":                        "RUGOPS_S3_REGION",
		"s3.bucket":                        "RUGOPS_S3_BUCKET",
		"s3.endpoint":                      "RUGOPS_S3_ENDPOINT",
		"s3.access_key":                    "RUGOPS_S3_ACCESS_KEY",
		"s3.secret_key":                    "RUGOPS_S3_SECRET_KEY",
		"s3.max_file_size_mb":              "RUGOPS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                "RUGOPS_S3_PRESIGN_EXPIRY",
		"log.level":                        "RUGOPS_LOG_LEVEL",
		"log.format":                       "RUGOPS_LOG_FORMAT",
		"analyzer.primary.provider":        "RUGOPS_ANALYZER_PRIMARY_PROVIDER",
		"analyzer.primary.api_key":         "RUGOPS_ANALYZER_PRIMARY_API_KEY",
		"analyzer.primary.default_model":   "RUGOPS_ANALYZER_PRIMARY_DEFAULT_MODEL",
		"analyzer.primary.timeout_secs":    "RUGOPS_ANALYZER_PRIMARY_TIMEOUT_SECS",
		"analyzer.secondary.provider":      "RUGOPS_ANALYZER_SECONDARY_PROVIDER",
		"analyzer.secondary.api_key":       "RUGOPS_ANALYZER_SECONDARY_API_KEY",
		"analyzer.secondary.default_model": "RUGOPS_ANALYZER_SECONDARY_DEFAULT_MODEL",
		"analyzer.secondary.timeout_secs":  "RUGOPS_ANALYZER_SECONDARY_TIMEOUT_SECS",
		"cors.allowed_origins":             "RUGOPS_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":         "RUGOPS_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":                "RUGOPS_QUEUE_MAX_RETRIES",
		"queue.concurrency":                "RUGOPS_QUEUE_CONCURRENCY",
		"email.provider":                   "RUGOPS_EMAIL_PROVIDER",
		"email.region":                     "RUGOPS_EMAIL_REGION",
		"email.from_address":               "RUGOPS_EMAIL_FROM_ADDRESS",
		"email.from_name":                  "RUGOPS_EMAIL_FROM_NAME",
		"portal.base_url":                  "RUGOPS_PORTAL_BASE_URL",
		"portal.token_expiry":              "RUGOPS_PORTAL_TOKEN_EXPIRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if RUGOPS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RUGOPS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Analyzer = AnalyzerConfig{
		Primary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.primary.provider"),
			APIKey:       v.GetString("analyzer.primary.api_key"),
			DefaultModel: v.GetString("analyzer.primary.default_model"),
			TimeoutSecs:  v.GetInt("analyzer.primary.timeout_secs"),
		},
		Secondary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.secondary.provider"),
			APIKey:       v.GetString("analyzer.secondary.api_key"),
			DefaultModel: v.GetString("analyzer.secondary.default_model"),
			TimeoutSecs:  v.GetInt("analyzer.secondary.timeout_secs"),
		},
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Portal = PortalConfig{
		BaseURL:     v.GetString("portal.base_url"),
		TokenExpiry: v.GetDuration("portal.token_expiry"),
	}

	return cfg, nil
}
