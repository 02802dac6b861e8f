package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds the settings read from the environment at startup.
type AppConfig struct {
	Port              string
	GinMode           string
	Environment       string
	JWTSecret         string
	JWTExpire         time.Duration
	AllowedOrigins    []string
	LogLevel          string
	LogFormat         string
	AutoMigrate       bool
	ReminderLookahead time.Duration
}

func LoadAppConfig() AppConfig {
	return AppConfig{
		Port:              getEnv("SERVER_PORT", "8080"),
		GinMode:           os.Getenv("GIN_MODE"),
		Environment:       strings.ToLower(os.Getenv("ENVIRONMENT")),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpire:         time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 24)) * time.Hour,
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		AutoMigrate:       strings.EqualFold(os.Getenv("DB_AUTO_MIGRATE"), "true"),
		ReminderLookahead: time.Duration(getEnvInt("REMINDER_LOOKAHEAD_HOURS", 24)) * time.Hour,
	}
}

func (c AppConfig) IsProduction() bool {
	return c.GinMode == "release" || c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
