package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Discord    DiscordConfig
	Cloudflare CloudflareConfig
	Cache      CacheConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// DiscordConfig holds the bot credentials. PublicKey is the hex-encoded
// ed25519 key Discord signs interaction payloads with.
type DiscordConfig struct {
	BotToken  string
	PublicKey string
	AppID     string
}

// CloudflareConfig holds the Cloudflare Images upload credentials.
type CloudflareConfig struct {
	AccountID string
	APIToken  string
	BaseURL   string
}

// CacheConfig holds cache freshness settings
type CacheConfig struct {
	OwnerTTL time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "bingo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Discord: DiscordConfig{
			BotToken:  getEnv("DISCORD_BOT_TOKEN", ""),
			PublicKey: getEnv("DISCORD_PUBLIC_KEY", ""),
			AppID:     getEnv("DISCORD_APP_ID", ""),
		},
		Cloudflare: CloudflareConfig{
			AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
			APIToken:  getEnv("CLOUDFLARE_API_TOKEN", ""),
			BaseURL:   getEnv("CLOUDFLARE_API_BASE", "https://api.cloudflare.com/client/v4"),
		},
		Cache: CacheConfig{
			OwnerTTL: getEnvAsDuration("OWNER_CACHE_TTL", 24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
