package config

import (
	"os"
	"strconv"
)

// Config is the planner server's environment-driven configuration,
// following the same flat getEnv-with-fallback pattern as the original.
type Config struct {
	Port           string
	LogLevel       string
	DefaultSamples string
	DatabaseDSN    string // optional: enables the audit log when set
	OpenAIKey      string // optional: enables OpenAIPhraser when set
	JWTSecret      string // optional: enables bearer-token auth when set
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DefaultSamples: getEnv("DEFAULT_SAMPLES", "400"),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func (c *Config) GetPortInt() int {
	p, _ := strconv.Atoi(c.Port)
	return p
}

func (c *Config) GetDefaultSamples() int {
	n, err := strconv.Atoi(c.DefaultSamples)
	if err != nil || n < 4 {
		return 400
	}
	return n
}
