package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

// DSN ưu tiên DATABASE_URL, nếu không thì ghép từ các biến DB_*
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type RateLimitConfig struct {
	Capacity    int
	RefillEvery time.Duration
	IdleTTL     time.Duration
}

type Config struct {
	Env                   string
	Port                  string
	LogLevel              string
	DB                    DBConfig
	Redis                 RedisConfig
	SMTP                  SMTPConfig
	JWTSecret             string
	JWTExpiration         time.Duration
	AppBaseURL            string
	CloudinaryURL         string
	GoogleClientID        string
	NATSURL               string
	AdminRegistrationKey  string
	AvailabilitySweepSpec string
	CacheTTL              time.Duration
	CORSOrigins           []string
	RateLimit             RateLimitConfig
}

// LoadEnv nạp file .env nếu có
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not loaded, using process environment: %v", err)
	}
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load đọc cấu hình từ biến môi trường
func Load() (*Config, error) {
	cfg := &Config{
		Env:      GetEnv("ENV", "dev"),
		Port:     GetEnv("PORT", "9090"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			URL:      GetEnv("DATABASE_URL", ""),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "5432"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", ""),
			Name:     GetEnv("DB_NAME", "bimber"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
			TimeZone: GetEnv("DB_TIMEZONE", "UTC"),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			Username: GetEnv("REDIS_USER", ""),
			Password: GetEnv("REDIS_PASSWORD", ""),
		},
		SMTP: SMTPConfig{
			Host:     GetEnv("SMTP_HOST", ""),
			Username: GetEnv("SMTP_USER", ""),
			Password: GetEnv("SMTP_PASSWORD", ""),
			From:     GetEnv("MAIL_FROM", "no-reply@bimber.ng"),
		},
		JWTSecret:             GetEnv("JWT_SECRET", ""),
		AppBaseURL:            strings.TrimRight(GetEnv("APP_BASE_URL", "http://localhost:9090"), "/"),
		CloudinaryURL:         GetEnv("CLOUDINARY_URL", ""),
		GoogleClientID:        GetEnv("GOOGLE_CLIENT_ID", ""),
		NATSURL:               GetEnv("NATS_URL", ""),
		AdminRegistrationKey:  GetEnv("ADMIN_REGISTRATION_KEY", ""),
		AvailabilitySweepSpec: GetEnv("AVAILABILITY_SWEEP_SPEC", "*/5 * * * *"),
		CORSOrigins:           splitList(GetEnv("CORS_ORIGINS", "")),
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.JWTExpiration, err = getDuration("JWT_EXPIRATION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Capacity, err = getInt("RATE_LIMIT_CAPACITY", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimit.RefillEvery, err = getDuration("RATE_LIMIT_REFILL_EVERY", 12*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimit.IdleTTL, err = getDuration("RATE_LIMIT_IDLE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate kiểm tra các giá trị bắt buộc
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 && c.Env == "prod" {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in prod")
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.RefillEvery <= 0 {
		return fmt.Errorf("rate limit capacity and refill interval must be positive")
	}
	return nil
}
