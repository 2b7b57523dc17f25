package environments

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Hostify   HostifyConfig
	Chekin    ChekinConfig
	Broadcast BroadcastConfig
	Auth      AuthConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// HostifyConfig configures the property-management API client.
type HostifyConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ChekinConfig configures the check-in link API client.
type ChekinConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// BroadcastConfig holds the campaign tuning knobs. Defaults match the
// values campaigns have always run with; they are overridable per
// deployment to respect different downstream rate limits.
type BroadcastConfig struct {
	PageSize        int
	MaxChannelPages int
	PacingDelay     time.Duration
	ProgressFile    string
	LinkCacheTTL    time.Duration
}

type AuthConfig struct {
	BroadcastAPIKey string
	MessagesAPIKey  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: GetEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", ""),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "hostify"),
			Password: GetEnv("DB_PASSWORD", ""),
			DBName:   GetEnv("DB_NAME", "hostify_broadcast"),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", ""),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		Hostify: HostifyConfig{
			BaseURL: GetEnv("HOSTIFY_BASE_URL", "https://api-rms.hostify.com"),
			APIKey:  GetEnv("HOSTIFY_API_KEY", ""),
			Timeout: time.Duration(GetEnvAsInt("HOSTIFY_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Chekin: ChekinConfig{
			BaseURL: GetEnv("CHEKIN_BASE_URL", "https://a.chekin.io/public/api/v1"),
			APIKey:  GetEnv("CHEKIN_API_KEY", ""),
			Timeout: time.Duration(GetEnvAsInt("CHEKIN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Broadcast: BroadcastConfig{
			PageSize:        GetEnvAsInt("BROADCAST_PAGE_SIZE", 50),
			MaxChannelPages: GetEnvAsInt("BROADCAST_MAX_CHANNEL_PAGES", 20),
			PacingDelay:     GetEnvAsDuration("BROADCAST_PACING_DELAY", 2*time.Second),
			ProgressFile:    GetEnv("BROADCAST_PROGRESS_FILE", "broadcast_progress.json"),
			LinkCacheTTL:    GetEnvAsDuration("CHEKIN_LINK_CACHE_TTL", 6*time.Hour),
		},
		Auth: AuthConfig{
			BroadcastAPIKey: GetEnv("BROADCAST_API_KEY", ""),
			MessagesAPIKey:  GetEnv("MESSAGES_API_KEY", ""),
		},
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
