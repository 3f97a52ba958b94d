package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/yungbote/newsroom-backend/internal/data/db"
	types "github.com/yungbote/newsroom-backend/internal/domain"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
	LogMode string `envconfig:"LOG_MODE" default:"development"`

	LogLevel     string `envconfig:"LOG_LEVEL"`
	LogRedaction bool   `envconfig:"LOG_REDACTION_ENABLED" default:"true"`
	LogHashSalt  string `envconfig:"LOG_HASH_SALT"`

	DBDriver         string `envconfig:"DB_DRIVER" default:"postgres"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresName     string `envconfig:"POSTGRES_NAME" default:"newsroom"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	SQLitePath       string `envconfig:"SQLITE_PATH" default:"newsroom.db"`

	JWTSecretKey string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	JWTIssuer    string        `envconfig:"JWT_ISSUER" default:"newsroom"`
	JWTAudience  string        `envconfig:"JWT_AUDIENCE" default:"newsroom"`
	JWTTTL       time.Duration `envconfig:"JWT_TTL" default:"168h"`

	AdminName     string `envconfig:"ADMIN_ACCOUNT_NAME" default:"Administrator"`
	AdminEmail    string `envconfig:"ADMIN_ACCOUNT_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_ACCOUNT_PASSWORD"`
	AdminRole     int    `envconfig:"ADMIN_ACCOUNT_ROLE" default:"0"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	LoginRatePerSec    float64  `envconfig:"LOGIN_RATE_PER_SEC" default:"1"`
	LoginBurst         int      `envconfig:"LOGIN_BURST" default:"5"`

	MetricsEnabled bool    `envconfig:"METRICS_ENABLED" default:"true"`
	OtelEnabled    bool    `envconfig:"OTEL_ENABLED" default:"false"`
	OtelEndpoint   string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelHeaders    string  `envconfig:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelInsecure   bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"false"`
	OtelSampler    float64 `envconfig:"OTEL_SAMPLER_RATIO" default:"1"`
	ServiceName    string  `envconfig:"OTEL_SERVICE_NAME" default:"newsroom-backend"`
	Environment    string  `envconfig:"APP_ENV" default:"development"`
	Version        string  `envconfig:"APP_VERSION" default:"dev"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if !types.Role(c.AdminRole).Valid() {
		return fmt.Errorf("ADMIN_ACCOUNT_ROLE %d is not a known role", c.AdminRole)
	}
	if strings.TrimSpace(c.AdminEmail) != "" && c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_ACCOUNT_PASSWORD is required when ADMIN_ACCOUNT_EMAIL is set")
	}
	return nil
}

// NewLogger builds the process logger from the LOG_* settings.
func (c Config) NewLogger() (*logger.Logger, error) {
	return logger.New(c.LogMode,
		logger.WithLevel(c.LogLevel),
		logger.WithRedaction(c.LogRedaction, c.LogHashSalt),
	)
}

func (c Config) DBOptions() db.Options {
	return db.Options{
		Driver:           c.DBDriver,
		PostgresHost:     c.PostgresHost,
		PostgresPort:     c.PostgresPort,
		PostgresUser:     c.PostgresUser,
		PostgresPassword: c.PostgresPassword,
		PostgresName:     c.PostgresName,
		PostgresSSLMode:  c.PostgresSSLMode,
		SQLitePath:       c.SQLitePath,
	}
}

func (c Config) AuthConfig() services.AuthConfig {
	return services.AuthConfig{
		SecretKey: c.JWTSecretKey,
		Issuer:    c.JWTIssuer,
		Audience:  c.JWTAudience,
		TTL:       c.JWTTTL,
	}
}

func (c Config) AdminAccount() services.AdminAccount {
	return services.AdminAccount{
		Name:     c.AdminName,
		Email:    c.AdminEmail,
		Password: c.AdminPassword,
		Role:     types.Role(c.AdminRole),
	}
}

func (c Config) OtelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OtelEnabled,
		ServiceName: c.ServiceName,
		Environment: c.Environment,
		Version:     c.Version,
		Endpoint:    c.OtelEndpoint,
		Headers:     observability.ParseHeaders(c.OtelHeaders),
		Insecure:    c.OtelInsecure,
		SampleRatio: c.OtelSampler,
	}
}
