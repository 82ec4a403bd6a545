package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	FRED  FREDConfig
	Quote QuoteConfig
	KGX   KGXConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds persistence gateway configuration.
// Primary is PostgreSQL; Embedded is the SQLite fallback file.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Fallback
	ForceEmbedded bool   // 임베디드 백엔드만 사용 (primary 연결 시도 안 함)
	EmbeddedPath  string // SQLite 파일 경로

	// Connection
	ConnectTimeout time.Duration
	MaxConns       int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// FREDConfig holds FRED (St. Louis Fed) API configuration.
// APIKey may be empty; macro collection then degrades to "no data".
type FREDConfig struct {
	APIKey  string
	BaseURL string
}

// QuoteConfig holds the market quote provider configuration
type QuoteConfig struct {
	BaseURL string
}

// KGXConfig holds the domestic gold exchange scraping configuration
type KGXConfig struct {
	BaseURL    string
	UseMock    bool // 스크래핑 대신 수동/목 값 사용
	MockBuyKRW float64
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			Name:           getEnv("DB_NAME", "aurum"),
			User:           getEnv("DB_USER", "aurum"),
			Password:       getEnv("DB_PASSWORD", ""),
			URL:            getEnv("DATABASE_URL", ""),
			ForceEmbedded:  getEnvAsBool("DB_FORCE_EMBEDDED", false),
			EmbeddedPath:   getEnv("DB_EMBEDDED_PATH", "aurum.db"),
			ConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", "5s"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 10),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External APIs
		FRED: FREDConfig{
			APIKey:  getEnv("FRED_API_KEY", ""),
			BaseURL: getEnv("FRED_BASE_URL", "https://api.stlouisfed.org/fred"),
		},

		Quote: QuoteConfig{
			BaseURL: getEnv("QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
		},

		KGX: KGXConfig{
			BaseURL:    getEnv("KGX_BASE_URL", "https://www.koreagoldx.co.kr"),
			UseMock:    getEnvAsBool("KGX_USE_MOCK", true),
			MockBuyKRW: getEnvAsFloat("KGX_MOCK_BUY_KRW", 520000.0),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Primary connection info is only required when the embedded backend is not forced
	if !c.Database.ForceEmbedded && c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required unless DB_FORCE_EMBEDDED=true")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

// PrimaryDSN returns the PostgreSQL connection string for the primary backend
func (c *DatabaseConfig) PrimaryDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
