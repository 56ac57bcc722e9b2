package app

import (
	"strings"
	"time"

	"github.com/cybertech-18/lakshpath-backend/internal/data/db"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/envutil"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/gemini"
	"github.com/cybertech-18/lakshpath-backend/internal/realtime/bus"
	"github.com/cybertech-18/lakshpath-backend/internal/services"
)

type Config struct {
	Port        string
	LogMode     string
	ServiceName string
	Version     string
	CORSOrigins []string

	DB      db.Config
	Gemini  gemini.Config
	AI      services.AIGatewayConfig
	Redis   bus.RedisConfig

	CareerMatchLimit int
	ShutdownTimeout  time.Duration
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "lakshpath-backend"),
		Version:     envutil.String("APP_VERSION", "dev"),
		CORSOrigins: splitList(envutil.String("CORS_ALLOW_ORIGINS", "")),
		DB: db.Config{
			Driver:     envutil.String("DATABASE_DRIVER", "postgres"),
			Host:       envutil.String("POSTGRES_HOST", "localhost"),
			Port:       envutil.String("POSTGRES_PORT", "5432"),
			User:       envutil.String("POSTGRES_USER", "postgres"),
			Password:   envutil.String("POSTGRES_PASSWORD", ""),
			Name:       envutil.String("POSTGRES_NAME", "lakshpath"),
			SSLMode:    envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath: envutil.String("SQLITE_PATH", "lakshpath.db"),
		},
		Gemini:           gemini.ConfigFromEnv(),
		AI:               services.AIGatewayConfigFromEnv(),
		Redis:            bus.RedisConfigFromEnv(),
		CareerMatchLimit: services.ClampMatchLimit(envutil.Int("CAREER_MATCH_LIMIT", services.DefaultCareerMatchLimit)),
		ShutdownTimeout:  envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
	}
}

func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
