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
	Env string // development, staging, production, test

	// Storage
	DataDir           string // 리그별 스테이지 파일 위치
	ScoringConfigPath string // 비어있으면 내장 기본값 사용

	// CurrentYear pins the placement-scoring year. 0 means "derive once at the CLI boundary".
	CurrentYear int

	// External sources
	VLR VLRConfig

	// HTTP
	HTTP HTTPConfig

	// Redis (page cache / shared limiter, optional)
	Redis RedisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// VLRConfig holds stats site configuration
type VLRConfig struct {
	BaseURL       string
	StatsTimespan string
	PageCacheTTL  time.Duration

	// 사이트 마크업 변경 대응용 셀렉터 (비어있으면 기본값)
	AgentTableSelector string
	TeamLinkSelector   string
}

// HTTPConfig holds fetch behaviour
type HTTPConfig struct {
	Timeout            time.Duration
	MaxRetries         int
	RetryDelay         time.Duration
	RequestDelay       time.Duration // politeness throttle between requests
	Workers            int
	BreakerMaxFailures int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		DataDir:           getEnv("DATA_DIR", "data"),
		ScoringConfigPath: getEnv("SCORING_CONFIG", ""),
		CurrentYear:       getEnvAsInt("CURRENT_YEAR", 0),

		VLR: VLRConfig{
			BaseURL:       getEnv("VLR_BASE_URL", "https://www.vlr.gg"),
			StatsTimespan: getEnv("VLR_STATS_TIMESPAN", "all"),
			PageCacheTTL:  getEnvAsDuration("PAGE_CACHE_TTL", "6h"),

			AgentTableSelector: getEnv("VLR_AGENT_TABLE_SELECTOR", ""),
			TeamLinkSelector:   getEnv("VLR_TEAM_LINK_SELECTOR", ""),
		},

		HTTP: HTTPConfig{
			Timeout:            getEnvAsDuration("HTTP_TIMEOUT", "15s"),
			MaxRetries:         getEnvAsInt("HTTP_MAX_RETRIES", 2),
			RetryDelay:         getEnvAsDuration("HTTP_RETRY_DELAY", "500ms"),
			RequestDelay:       getEnvAsDuration("REQUEST_DELAY", "100ms"),
			Workers:            getEnvAsInt("FETCH_WORKERS", 1),
			BreakerMaxFailures: getEnvAsInt("BREAKER_MAX_FAILURES", 5),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Year returns the configured scoring year, falling back to now.
// Only the CLI layer should call this; everything below receives the year explicitly.
func (c *Config) Year(now time.Time) int {
	if c.CurrentYear != 0 {
		return c.CurrentYear
	}
	return now.Year()
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	switch c.Env {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("ENV must be one of: development, staging, production, test")
	}

	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}

	if c.HTTP.RequestDelay <= 0 {
		return fmt.Errorf("REQUEST_DELAY must be > 0")
	}

	if c.HTTP.Workers < 1 {
		return fmt.Errorf("FETCH_WORKERS must be >= 1")
	}

	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("HTTP_MAX_RETRIES must be >= 0")
	}

	if c.CurrentYear != 0 && (c.CurrentYear < 2000 || c.CurrentYear > 2100) {
		return fmt.Errorf("CURRENT_YEAR must be 0 or within 2000-2100, got %d", c.CurrentYear)
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
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
