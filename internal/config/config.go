package config

import (
	"strings" // String manipulation
	"time"    // Token and cache lifetimes

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/viper"   // Defaults and environment lookup
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBDriver        string        // mysql or sqlite
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	DBPath          string        // SQLite database file
	DBLog           bool          // Log every SQL statement
	JWTSecret       string        // JWT secret key
	AccessTokenTTL  time.Duration // Access token lifetime
	RefreshTokenTTL time.Duration // Refresh token lifetime
	RedisAddr       string        // Redis server address, empty disables Redis
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	CacheTTL        time.Duration // Lifetime of cached reports
	IsProd          bool          // Is production environment
	LogLevel        string        // logrus level name
	CORSOrigins     []string      // Allowed browser origins
	PageSize        int           // Default transactions page size
	MaxPageSize     int           // Upper bound for page_size
}

// DSN returns the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_PATH", "data/finance.db")
	v.SetDefault("ACCESS_TOKEN_TTL", "60m")
	v.SetDefault("REFRESH_TOKEN_TTL", "24h")
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("MAX_PAGE_SIZE", 100)

	return &Config{
		AppPort:         v.GetString("APP_PORT"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBName:          v.GetString("DB_NAME"),
		DBPath:          v.GetString("DB_PATH"),
		DBLog:           v.GetBool("DB_LOG"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPass:       v.GetString("REDIS_PASS"),
		RedisDB:         v.GetInt("REDIS_DB"),
		CacheTTL:        v.GetDuration("CACHE_TTL"),
		IsProd:          v.GetBool("IS_PROD"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		PageSize:        v.GetInt("PAGE_SIZE"),
		MaxPageSize:     v.GetInt("MAX_PAGE_SIZE"),
	}
}

// splitList turns a comma separated value into trimmed, non-empty items
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
